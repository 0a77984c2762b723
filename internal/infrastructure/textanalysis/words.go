package textanalysis

var (
	stopWords     = buildStopWords()
	positiveWords = buildPositiveWords()
	negativeWords = buildNegativeWords()
)

func buildStopWords() map[string]bool {
	words := []string{
		"a", "about", "above", "after", "again", "against", "all", "am", "an",
		"and", "any", "are", "as", "at", "be", "because", "been", "before",
		"being", "below", "between", "both", "but", "by", "can", "cannot",
		"could", "did", "do", "does", "doing", "down", "during", "each", "few",
		"for", "from", "further", "had", "has", "have", "having", "he", "her",
		"here", "hers", "herself", "him", "himself", "his", "how", "i", "if",
		"in", "into", "is", "it", "its", "itself", "just", "me", "more", "most",
		"my", "myself", "no", "nor", "not", "now", "of", "off", "on", "once",
		"only", "or", "other", "our", "ours", "ourselves", "out", "over", "own",
		"s", "same", "she", "should", "so", "some", "such", "t", "than", "that",
		"the", "their", "theirs", "them", "themselves", "then", "there",
		"these", "they", "this", "those", "through", "to", "too", "under",
		"until", "up", "very", "was", "we", "were", "what", "when", "where",
		"which", "while", "who", "whom", "why", "will", "with", "would", "you",
		"your", "yours", "yourself", "yourselves",
	}
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func buildPositiveWords() map[string]bool {
	words := []string{
		"accurate", "achievement", "admirable", "advantage", "beneficial",
		"best", "better", "brilliant", "clear", "coherent", "compelling",
		"comprehensive", "concise", "confident", "consistent", "convincing",
		"creative", "effective", "efficient", "elegant", "engaging",
		"excellent", "exceptional", "fascinating", "good", "great", "helpful",
		"impressive", "improved", "innovative", "insightful", "interesting",
		"logical", "meaningful", "notable", "original", "outstanding",
		"persuasive", "positive", "precise", "productive", "promising",
		"relevant", "remarkable", "rigorous", "robust", "significant",
		"skillful", "solid", "strong", "succeed", "successful", "thorough",
		"thoughtful", "useful", "valuable", "vivid", "well",
	}
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func buildNegativeWords() map[string]bool {
	words := []string{
		"ambiguous", "awkward", "bad", "biased", "boring", "careless",
		"confusing", "contradictory", "deficient", "difficult", "disappointing",
		"disorganized", "dull", "erroneous", "fail", "failed", "failure",
		"flawed", "fragmented", "inaccurate", "inadequate", "incoherent",
		"incomplete", "inconsistent", "incorrect", "ineffective", "inferior",
		"insufficient", "irrelevant", "lacking", "limited", "messy",
		"misleading", "missing", "mistake", "muddled", "negative", "obscure",
		"poor", "problem", "problematic", "redundant", "repetitive", "shallow",
		"sloppy", "superficial", "unclear", "unconvincing", "underdeveloped",
		"unfocused", "unsupported", "vague", "weak", "worse", "worst", "wrong",
	}
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
