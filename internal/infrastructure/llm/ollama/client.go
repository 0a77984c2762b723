package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/metadoclabs/insights/internal/core/domain"
	"github.com/metadoclabs/insights/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

func New(baseURL, model string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

func (c *Client) generateJSON(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]any{
		"model":  c.model,
		"prompt": prompt,
		"stream": false,
		"format": "json",
	}
	var response struct {
		Response string `json:"response"`
	}
	if err := c.postJSON(ctx, "/api/generate", reqBody, &response, "generate"); err != nil {
		return "", err
	}
	return strings.TrimSpace(response.Response), nil
}

type ReviewerOptions struct {
	Timeout           time.Duration
	RequestsPerMinute int
	MaxPromptChars    int
	Executor          *resilience.Executor
}

// Reviewer asks a local model for a qualitative assessment of extracted
// text. It is rate-limited, bounded by its own timeout, and any failure
// surfaces as ErrCapabilityUnavailable so the pipeline degrades instead
// of failing the run.
type Reviewer struct {
	client         *Client
	executor       *resilience.Executor
	limiter        *rate.Limiter
	timeout        time.Duration
	maxPromptChars int
}

func NewReviewer(client *Client, options ReviewerOptions) *Reviewer {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	rpm := options.RequestsPerMinute
	if rpm <= 0 {
		rpm = 6
	}
	maxPromptChars := options.MaxPromptChars
	if maxPromptChars <= 0 {
		maxPromptChars = 8000
	}
	return &Reviewer{
		client:         client,
		executor:       options.Executor,
		limiter:        rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
		timeout:        timeout,
		maxPromptChars: maxPromptChars,
	}
}

func (r *Reviewer) Review(ctx context.Context, text string, rubric *domain.Rubric) (*domain.QualitativeReview, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	reviewCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	snippet := truncateForPrompt(anonymize(text), r.maxPromptChars)
	var prompt string
	if rubric != nil {
		prompt = buildRubricReviewPrompt(snippet, rubric)
	} else {
		prompt = buildFreeReviewPrompt(snippet)
	}

	var raw string
	call := func(callCtx context.Context) error {
		response, err := r.client.generateJSON(callCtx, prompt)
		if err != nil {
			return err
		}
		raw = response
		return nil
	}

	var err error
	if r.executor != nil {
		err = r.executor.Execute(reviewCtx, "reviewer.generate", call, classifyOllamaError)
	} else {
		err = call(reviewCtx)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil, err
		}
		return nil, domain.WrapError(domain.ErrCapabilityUnavailable, "qualitative review", err)
	}

	review := parseReview(raw)
	if rubric != nil {
		normalizeCriteria(review, rubric)
	}
	return review, nil
}

// parseReview decodes the expected JSON shape; when the model answered in
// prose anyway, the raw text becomes the summary.
func parseReview(raw string) *domain.QualitativeReview {
	var review domain.QualitativeReview
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &review); err != nil {
		return &domain.QualitativeReview{Summary: strings.TrimSpace(raw)}
	}
	return &review
}

// normalizeCriteria clamps ratings to the known scale and fills in rubric
// criteria the model skipped.
func normalizeCriteria(review *domain.QualitativeReview, rubric *domain.Rubric) {
	rated := make(map[string]int, len(review.Criteria))
	for i := range review.Criteria {
		review.Criteria[i].Rating = normalizeRating(review.Criteria[i].Rating)
		rated[strings.ToLower(strings.TrimSpace(review.Criteria[i].Name))] = i
	}
	for _, criterion := range rubric.Criteria {
		if _, ok := rated[strings.ToLower(strings.TrimSpace(criterion.Name))]; ok {
			continue
		}
		review.Criteria = append(review.Criteria, domain.CriterionRating{
			Name:     criterion.Name,
			Rating:   "low",
			Feedback: "Not addressed in the submission",
		})
	}
}

func normalizeRating(rating string) string {
	switch strings.ToLower(strings.TrimSpace(rating)) {
	case "low":
		return "low"
	case "high":
		return "high"
	default:
		return "medium"
	}
}

func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
