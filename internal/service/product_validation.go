package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/developerzohaib786/redsent-ai/internal/domain"

	"github.com/go-playground/validator/v10"
)

var pricePattern = regexp.MustCompile(`^\$?\d+(\.\d{2})?$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		return pricePattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	return v
}

// RedditReviewInput is a review as submitted by the editor form
type RedditReviewInput struct {
	Comment   string `json:"comment"`
	Tag       string `json:"tag"`
	Link      string `json:"link"`
	Author    string `json:"author"`
	Subreddit string `json:"subreddit"`
}

// ProductInput is the full editable content of a product
type ProductInput struct {
	Title             string              `json:"productTitle"`
	Description       string              `json:"productDescription"`
	Photos            []string            `json:"productPhotos"`
	Price             string              `json:"productPrice"`
	AffiliateLink     string              `json:"affiliateLink"`
	AffiliateLinkText string              `json:"affiliateLinkText"`
	Pros              []string            `json:"pros"`
	Cons              []string            `json:"cons"`
	RedditReviews     []RedditReviewInput `json:"redditReviews"`
	Score             *int                `json:"productScore"`
}

// productDocument carries the schema rules checked after normalisation
type productDocument struct {
	Title             string                `validate:"min=3,max=100"`
	Description       string                `validate:"min=10,max=2000"`
	Photos            []string              `validate:"max=5"`
	Price             string                `validate:"price"`
	AffiliateLink     string                `validate:"url"`
	AffiliateLinkText string                `validate:"max=50"`
	RedditReviews     []domain.RedditReview `validate:"max=10"`
	Score             int                   `validate:"min=0,max=100"`
}

var schemaMessages = map[string]string{
	"Title":             "Product title must be between 3 and 100 characters",
	"Description":       "Product description must be between 10 and 2000 characters",
	"Photos":            "Maximum 5 photos allowed",
	"Price":             "Invalid price format",
	"AffiliateLink":     "Invalid URL format",
	"AffiliateLinkText": "Affiliate link text must be at most 50 characters",
	"RedditReviews":     "Maximum 10 Reddit reviews allowed",
	"Score":             "Product score must be between 0 and 100",
}

var schemaFields = map[string]string{
	"Title":             "productTitle",
	"Description":       "productDescription",
	"Photos":            "productPhotos",
	"Price":             "productPrice",
	"AffiliateLink":     "affiliateLink",
	"AffiliateLinkText": "affiliateLinkText",
	"RedditReviews":     "redditReviews",
	"Score":             "productScore",
}

// schemaError reports a document rule violation the way the store reports it
func schemaError(field, message string) *domain.Error {
	return &domain.Error{
		Kind:    domain.KindValidation,
		Field:   field,
		Message: "Validation failed",
		Details: message,
	}
}

// BuildProduct validates input and returns the normalised product content.
// Checks run in order: required fields, pros, cons, review links, then the
// document rules.
func BuildProduct(input ProductInput) (*domain.Product, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	price := strings.TrimSpace(input.Price)
	link := strings.TrimSpace(input.AffiliateLink)
	linkText := strings.TrimSpace(input.AffiliateLinkText)

	if title == "" || description == "" || price == "" || link == "" || linkText == "" {
		return nil, domain.ValidationError("", "Missing required fields")
	}

	pros := nonBlank(input.Pros)
	if len(pros) == 0 {
		return nil, domain.ValidationError("pros", "At least one pro is required")
	}
	cons := nonBlank(input.Cons)
	if len(cons) == 0 {
		return nil, domain.ValidationError("cons", "At least one con is required")
	}

	reviews := validReviews(input.RedditReviews)
	for _, review := range reviews {
		if validate.Var(strings.TrimSpace(review.Link), "url") != nil {
			return nil, domain.ValidationError("redditReviews", "Invalid Reddit review URL format")
		}
	}

	score := domain.DefaultScore
	if input.Score != nil {
		score = *input.Score
	}

	doc := productDocument{
		Title:             title,
		Description:       description,
		Photos:            nonBlank(input.Photos),
		Price:             price,
		AffiliateLink:     link,
		AffiliateLinkText: linkText,
		RedditReviews:     reviews,
		Score:             score,
	}
	if err := validate.Struct(doc); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			name := fieldErrors[0].StructField()
			return nil, schemaError(schemaFields[name], schemaMessages[name])
		}
		return nil, domain.Internal("Failed to validate product", err)
	}

	return &domain.Product{
		Title:             doc.Title,
		Description:       doc.Description,
		Photos:            doc.Photos,
		Price:             doc.Price,
		AffiliateLink:     doc.AffiliateLink,
		AffiliateLinkText: doc.AffiliateLinkText,
		Pros:              pros,
		Cons:              cons,
		RedditReviews:     doc.RedditReviews,
		Score:             doc.Score,
	}, nil
}

// nonBlank drops empty and whitespace-only entries and never returns nil
func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

// validReviews keeps reviews whose fields are all present and whose tag is known
func validReviews(reviews []RedditReviewInput) []domain.RedditReview {
	out := make([]domain.RedditReview, 0, len(reviews))
	for _, r := range reviews {
		if strings.TrimSpace(r.Comment) == "" ||
			strings.TrimSpace(r.Link) == "" ||
			strings.TrimSpace(r.Author) == "" ||
			strings.TrimSpace(r.Subreddit) == "" {
			continue
		}
		switch r.Tag {
		case domain.TagPositive, domain.TagNegative, domain.TagNeutral:
		default:
			continue
		}
		out = append(out, domain.RedditReview{
			Comment:   r.Comment,
			Tag:       r.Tag,
			Link:      r.Link,
			Author:    r.Author,
			Subreddit: r.Subreddit,
		})
	}
	return out
}
