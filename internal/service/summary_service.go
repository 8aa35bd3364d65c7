package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/developerzohaib786/redsent-ai/internal/domain"
	"github.com/developerzohaib786/redsent-ai/internal/metrics"

	"go.uber.org/zap"
)

const (
	maxSummaryReviews   = 50
	maxReviewCommentLen = 300
	maxParseDetailLen   = 500
)

var (
	ErrReviewsRequired = domain.InvalidArgument("Reviews array is required and must not be empty")
	codeFencePattern   = regexp.MustCompile("```json\\n?|```\\n?")
)

// Generator produces free-form text for a prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// LikeDislikePoint is one heading with its supporting points
type LikeDislikePoint struct {
	Heading string   `json:"heading"`
	Points  []string `json:"points"`
}

// LikesDislikes is the structured summary of a set of reviews
type LikesDislikes struct {
	Likes    []LikeDislikePoint `json:"likes"`
	Dislikes []LikeDislikePoint `json:"dislikes"`
}

// SummaryService defines the interface for review summarization
type SummaryService interface {
	Summarize(ctx context.Context, reviews []domain.RedditReview, productTitle string) (*LikesDislikes, error)
}

type summaryService struct {
	generator Generator
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewSummaryService creates a new instance of SummaryService. A nil generator
// means no credentials are configured and every call fails with ErrMissingCredentials.
func NewSummaryService(generator Generator, m *metrics.Metrics, logger *zap.Logger) SummaryService {
	return &summaryService{generator: generator, metrics: m, logger: logger}
}

func (s *summaryService) Summarize(ctx context.Context, reviews []domain.RedditReview, productTitle string) (*LikesDislikes, error) {
	if len(reviews) == 0 {
		return nil, ErrReviewsRequired
	}
	if s.generator == nil {
		s.metrics.ObserveAIRequest("unconfigured")
		return nil, domain.ErrMissingCredentials
	}

	text, err := s.generator.Generate(ctx, BuildSummaryPrompt(reviews, productTitle))
	if err != nil {
		s.metrics.ObserveAIRequest("upstream_error")
		return nil, &domain.Error{
			Kind:    domain.KindInternal,
			Message: "An error occurred while generating likes and dislikes",
			Details: err.Error(),
			Err:     err,
		}
	}

	result, err := ParseLikesDislikes(text)
	if err != nil {
		s.metrics.ObserveAIRequest("parse_error")
		s.logger.Warn("Failed to parse AI response", zap.Error(err))
		return nil, err
	}

	s.metrics.ObserveAIRequest("success")
	s.logger.Info("Likes and dislikes generated",
		zap.Int("reviews", len(reviews)),
		zap.Int("likes", len(result.Likes)),
		zap.Int("dislikes", len(result.Dislikes)),
	)
	return result, nil
}

// BuildSummaryPrompt renders at most 50 reviews, each comment cut to 300 characters
func BuildSummaryPrompt(reviews []domain.RedditReview, productTitle string) string {
	if len(reviews) > maxSummaryReviews {
		reviews = reviews[:maxSummaryReviews]
	}

	blocks := make([]string, len(reviews))
	for i, review := range reviews {
		blocks[i] = fmt.Sprintf("Review %d (%s):\n%s\n", i+1, review.Tag, truncateRunes(review.Comment, maxReviewCommentLen))
	}

	subject := "a product"
	if productTitle != "" {
		subject = fmt.Sprintf("a product called %q", productTitle)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are analyzing Reddit reviews for %s. Based on these reviews, generate a comprehensive list of likes and dislikes.\n\n", subject)
	b.WriteString("Reddit Reviews:\n")
	b.WriteString(strings.Join(blocks, "\n"))
	b.WriteString(`
Please analyze these reviews and provide:
1. A list of LIKES (positive aspects) - organized by category with headings
2. A list of DISLIKES (negative aspects) - organized by category with headings

For each category (heading), provide 2-4 specific points based on the reviews.

Return the response in the following JSON format ONLY (no markdown, no code blocks):
{
  "likes": [
    {
      "heading": "Category name for positive aspect",
      "points": ["Point 1", "Point 2", "Point 3"]
    }
  ],
  "dislikes": [
    {
      "heading": "Category name for negative aspect",
      "points": ["Point 1", "Point 2", "Point 3"]
    }
  ]
}

Important:
- Create 3-5 categories for likes and 3-5 categories for dislikes
- Each category should have 2-4 specific points
- Base your analysis strictly on the provided reviews
- Use clear, concise headings
- Make points specific and actionable
- Return ONLY the JSON object, no additional text or formatting`)
	return b.String()
}

// ParseLikesDislikes strips markdown fences from model output and decodes the summary
func ParseLikesDislikes(text string) (*LikesDislikes, error) {
	cleaned := strings.TrimSpace(codeFencePattern.ReplaceAllString(text, ""))

	if !json.Valid([]byte(cleaned)) {
		return nil, &domain.Error{
			Kind:    domain.KindUpstreamParse,
			Message: "Failed to parse AI response. Please try again.",
			Details: truncateRunes(cleaned, maxParseDetailLen),
		}
	}

	// Valid JSON that is not an object has no keys at all.
	var raw map[string]json.RawMessage
	_ = json.Unmarshal([]byte(cleaned), &raw)

	likes, dislikes := raw["likes"], raw["dislikes"]
	if isAbsent(likes) || isAbsent(dislikes) {
		return nil, &domain.Error{
			Kind:    domain.KindUpstreamParse,
			Message: "Invalid response structure from AI (missing likes/dislikes keys)",
			Details: json.RawMessage(cleaned),
		}
	}

	var result LikesDislikes
	if json.Unmarshal(likes, &result.Likes) != nil || json.Unmarshal(dislikes, &result.Dislikes) != nil {
		return nil, &domain.Error{
			Kind:    domain.KindUpstreamParse,
			Message: "Likes and dislikes must be arrays",
			Details: json.RawMessage(cleaned),
		}
	}

	return &result, nil
}

func isAbsent(value json.RawMessage) bool {
	return len(value) == 0 || bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
