package service

import (
	"context"

	"github.com/developerzohaib786/redsent-ai/internal/domain"
	"github.com/developerzohaib786/redsent-ai/internal/metrics"
	"github.com/developerzohaib786/redsent-ai/internal/repository"

	"go.uber.org/zap"
)

// ToggleResult is the outcome of a like toggle
type ToggleResult struct {
	Liked           bool
	LikeCount       int
	IsAuthenticated bool
}

// LikeStatus is the like state of a product as seen by one caller
type LikeStatus struct {
	LikeCount          int
	UserHasLiked       bool
	IsAuthenticated    bool
	AuthenticatedLikes int
	AnonymousLikes     int
}

// LikeService defines the interface for like accounting
type LikeService interface {
	Toggle(ctx context.Context, productID string, who domain.Identity) (*ToggleResult, error)
	Status(ctx context.Context, productID string, who domain.Identity) (*LikeStatus, error)
}

type likeService struct {
	repo    repository.ProductRepository
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewLikeService creates a new instance of LikeService. m may be nil.
func NewLikeService(repo repository.ProductRepository, m *metrics.Metrics, logger *zap.Logger) LikeService {
	return &likeService{repo: repo, metrics: m, logger: logger}
}

// Toggle flips the caller's membership in the like set matching its identity.
// The read and the write are separate round trips, so two concurrent toggles
// by the same identity on the same product can both apply.
func (s *likeService) Toggle(ctx context.Context, productID string, who domain.Identity) (*ToggleResult, error) {
	if !who.Valid() {
		return nil, domain.InvalidArgument("Unable to identify caller")
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	likes := product.Likes
	likes.Normalize()
	liked := likes.Toggle(who)

	if err := s.repo.SaveLikes(ctx, productID, likes); err != nil {
		return nil, err
	}

	s.metrics.ObserveLikeToggle(who.IsAuthenticated(), liked)
	s.logger.Debug("Like toggled",
		zap.String("product_id", productID),
		zap.Bool("authenticated", who.IsAuthenticated()),
		zap.Bool("liked", liked),
		zap.Int("like_count", likes.Total()),
	)

	return &ToggleResult{
		Liked:           liked,
		LikeCount:       likes.Total(),
		IsAuthenticated: who.IsAuthenticated(),
	}, nil
}

// Status reports counts and whether the caller currently likes the product
func (s *likeService) Status(ctx context.Context, productID string, who domain.Identity) (*LikeStatus, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	likes := product.Likes
	likes.Normalize()

	return &LikeStatus{
		LikeCount:          likes.Total(),
		UserHasLiked:       likes.Has(who),
		IsAuthenticated:    who.IsAuthenticated(),
		AuthenticatedLikes: likes.LikeCount,
		AnonymousLikes:     likes.AnonymousLikeCount,
	}, nil
}
