package repository

import (
	"context"
	"errors"

	"github.com/developerzohaib786/redsent-ai/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// RefreshTokenRepository defines the interface for refresh token data access
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, token string) error
}

type refreshTokenRepository struct {
	collection *mongo.Collection
}

// NewRefreshTokenRepository creates a new instance of RefreshTokenRepository
func NewRefreshTokenRepository(db *mongo.Database) RefreshTokenRepository {
	return &refreshTokenRepository{collection: db.Collection(refreshTokensCollection)}
}

// Create stores a new refresh token
func (r *refreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	result, err := r.collection.InsertOne(ctx, token)
	if err != nil {
		return domain.Internal("Failed to create refresh token", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		token.ID = oid
	}
	return nil
}

// FindByToken retrieves a live refresh token. Revoked tokens yield ErrTokenRevoked.
func (r *refreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var refreshToken domain.RefreshToken
	err := r.collection.FindOne(ctx, bson.M{"token": token}).Decode(&refreshToken)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, domain.Internal("Failed to fetch refresh token", err)
	}

	if refreshToken.Revoked {
		return nil, domain.ErrTokenRevoked
	}
	return &refreshToken, nil
}

// Revoke marks a refresh token as revoked
func (r *refreshTokenRepository) Revoke(ctx context.Context, token string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"token": token},
		bson.M{"$set": bson.M{"revoked": true}},
	)
	if err != nil {
		return domain.Internal("Failed to revoke refresh token", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrTokenNotFound
	}
	return nil
}
