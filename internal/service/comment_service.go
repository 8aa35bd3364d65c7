package service

import (
	"context"
	"strings"

	"github.com/developerzohaib786/redsent-ai/internal/domain"
	"github.com/developerzohaib786/redsent-ai/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrVideoIDRequired      = domain.InvalidArgument("videoId query parameter is required")
	ErrInvalidVideoIDFormat = domain.InvalidArgument("Invalid videoId format")
	ErrInvalidUserIDFormat  = domain.InvalidArgument("Invalid userId format")
	ErrCommentFieldsMissing = domain.ValidationError("", "Missing required fields")
)

// CommentInput is a new comment as posted by a signed-in reader
type CommentInput struct {
	Review  string `json:"review"`
	VideoID string `json:"videoId"`
	UserID  string `json:"userId"`
}

// CommentService defines the interface for comment business logic
type CommentService interface {
	Create(ctx context.Context, input CommentInput) (*domain.Comment, error)
	ListByVideo(ctx context.Context, videoID string) ([]*domain.Comment, error)
}

type commentService struct {
	repo repository.CommentRepository
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(repo repository.CommentRepository) CommentService {
	return &commentService{repo: repo}
}

func (s *commentService) Create(ctx context.Context, input CommentInput) (*domain.Comment, error) {
	if strings.TrimSpace(input.Review) == "" || input.VideoID == "" || input.UserID == "" {
		return nil, ErrCommentFieldsMissing
	}

	videoID, err := primitive.ObjectIDFromHex(input.VideoID)
	if err != nil {
		return nil, ErrInvalidVideoIDFormat
	}
	userID, err := primitive.ObjectIDFromHex(input.UserID)
	if err != nil {
		return nil, ErrInvalidUserIDFormat
	}

	comment := &domain.Comment{
		VideoID: videoID,
		UserID:  userID,
		Review:  input.Review,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByVideo returns the comments on a product, newest first. An unknown
// product yields an empty list.
func (s *commentService) ListByVideo(ctx context.Context, videoID string) ([]*domain.Comment, error) {
	if videoID == "" {
		return nil, ErrVideoIDRequired
	}
	oid, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return nil, ErrInvalidVideoIDFormat
	}
	return s.repo.FindByVideoID(ctx, oid)
}
