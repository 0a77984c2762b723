package ollama

import "regexp"

// Personally identifying fragments are scrubbed before text leaves the
// process, even toward a local model.
var (
	reEmailAddr = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	rePhoneNum  = regexp.MustCompile(`\+?\d[\d\s().-]{7,}\d`)
	reNamePair  = regexp.MustCompile(`\b[A-Z][a-z]+\s+[A-Z][a-z]+\b`)
)

func anonymize(text string) string {
	out := reEmailAddr.ReplaceAllString(text, "[EMAIL]")
	out = rePhoneNum.ReplaceAllString(out, "[PHONE]")
	out = reNamePair.ReplaceAllString(out, "[NAME]")
	return out
}
