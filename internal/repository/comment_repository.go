package repository

import (
	"context"
	"time"

	"github.com/developerzohaib786/redsent-ai/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByVideoID(ctx context.Context, videoID primitive.ObjectID) ([]*domain.Comment, error)
}

type commentRepository struct {
	collection *mongo.Collection
}

// NewCommentRepository creates a new instance of CommentRepository
func NewCommentRepository(db *mongo.Database) CommentRepository {
	return &commentRepository{collection: db.Collection(commentsCollection)}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, comment)
	if err != nil {
		return domain.Internal("Failed to create comment", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		comment.ID = oid
	}
	return nil
}

// FindByVideoID lists the comments on a product, newest first
func (r *commentRepository) FindByVideoID(ctx context.Context, videoID primitive.ObjectID) ([]*domain.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"videoId": videoID}, opts)
	if err != nil {
		return nil, domain.Internal("Failed to fetch comments", err)
	}
	defer cursor.Close(ctx)

	comments := []*domain.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, domain.Internal("Failed to fetch comments", err)
	}
	return comments, nil
}
