package repository

import (
	"context"
	"testing"

	"github.com/developerzohaib786/redsent-ai/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestProduct(title string) *domain.Product {
	return &domain.Product{
		Title:         title,
		Description:   "A product used by repository tests",
		Photos:        []string{"https://img.example.com/1.jpg"},
		Price:         "$19.99",
		AffiliateLink: "https://shop.example.com/item",
		Pros:          []string{"cheap"},
		Cons:          []string{"loud"},
		RedditReviews: []domain.RedditReview{},
		Score:         domain.DefaultScore,
	}
}

func TestProperty_ProductCreationPreservesAttributes(t *testing.T) {
	db := requireDB(t)
	repo := NewProductRepository(db)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 25
	properties := gopter.NewProperties(parameters)

	properties.Property("creating and retrieving a product preserves all attributes", prop.ForAll(
		func(title, description, price string, score int) bool {
			ctx := context.Background()

			product := newTestProduct(title)
			product.Description = description
			product.Price = price
			product.Score = score

			if err := repo.Create(ctx, product); err != nil {
				t.Logf("FAIL: Failed to create product: %v", err)
				return false
			}
			defer func() { _, _ = repo.Delete(ctx, product.ID.Hex()) }()

			retrieved, err := repo.FindByID(ctx, product.ID.Hex())
			if err != nil {
				t.Logf("FAIL: Failed to retrieve product: %v", err)
				return false
			}

			if retrieved.Title != title || retrieved.Description != description ||
				retrieved.Price != price || retrieved.Score != score {
				t.Logf("FAIL: attribute mismatch: %+v", retrieved)
				return false
			}

			if retrieved.LikedBy == nil || retrieved.AnonymousLikedBy == nil || retrieved.Total() != 0 {
				t.Logf("FAIL: like sets not initialised: %+v", retrieved.Likes)
				return false
			}

			return !retrieved.CreatedAt.IsZero() && !retrieved.UpdatedAt.IsZero()
		},
		gen.RegexMatch(`[A-Za-z0-9 ]{3,50}`),
		gen.RegexMatch(`[A-Za-z0-9 .,!?]{10,200}`),
		gen.RegexMatch(`\$[1-9][0-9]{0,3}\.[0-9]{2}`),
		gen.IntRange(domain.MinScore, domain.MaxScore),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProductRepository_ReplaceKeepsLikes(t *testing.T) {
	db := requireDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	product := newTestProduct("Original title")
	require.NoError(t, repo.Create(ctx, product))
	id := product.ID.Hex()

	likes := product.Likes
	likes.Toggle(domain.AnonymousIdentity("abcdef0123456789"))
	require.NoError(t, repo.SaveLikes(ctx, id, likes))

	replacement := newTestProduct("Replaced title")
	replacement.Pros = []string{"quiet", "small"}
	updated, err := repo.Replace(ctx, id, replacement)
	require.NoError(t, err)

	assert.Equal(t, "Replaced title", updated.Title)
	assert.Equal(t, []string{"quiet", "small"}, updated.Pros)
	assert.Equal(t, 1, updated.AnonymousLikeCount)
	assert.Equal(t, []string{"abcdef0123456789"}, updated.AnonymousLikedBy)

	deleted, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, product.ID, deleted.ID)

	_, err = repo.FindByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductRepository_FindAllNewestFirst(t *testing.T) {
	db := requireDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	first := newTestProduct("Older product")
	require.NoError(t, repo.Create(ctx, first))
	second := newTestProduct("Newer product")
	require.NoError(t, repo.Create(ctx, second))
	defer func() {
		_, _ = repo.Delete(ctx, first.ID.Hex())
		_, _ = repo.Delete(ctx, second.ID.Hex())
	}()

	products, err := repo.FindAll(ctx)
	require.NoError(t, err)

	positions := map[primitive.ObjectID]int{}
	for i, p := range products {
		positions[p.ID] = i
	}
	assert.Less(t, positions[second.ID], positions[first.ID])
}

func TestProductRepository_MissingAndMalformedIDs(t *testing.T) {
	db := requireDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, domain.ErrInvalidProductID)

	missing := primitive.NewObjectID().Hex()
	_, err = repo.FindByID(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = repo.Delete(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	err = repo.SaveLikes(ctx, missing, domain.Likes{})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductRepository_SaveLikesRoundTrip(t *testing.T) {
	db := requireDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	product := newTestProduct("Liked product")
	require.NoError(t, repo.Create(ctx, product))
	id := product.ID.Hex()
	defer func() { _, _ = repo.Delete(ctx, id) }()

	userID := primitive.NewObjectID().Hex()
	likes := product.Likes
	likes.Toggle(domain.AuthenticatedIdentity(userID))
	likes.Toggle(domain.AnonymousIdentity("0123456789abcdef"))
	likes.Toggle(domain.AnonymousIdentity("fedcba9876543210"))
	require.NoError(t, repo.SaveLikes(ctx, id, likes))

	stored, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.LikeCount)
	assert.Equal(t, []string{userID}, stored.LikedBy)
	assert.Equal(t, 2, stored.AnonymousLikeCount)
	assert.ElementsMatch(t, []string{"0123456789abcdef", "fedcba9876543210"}, stored.AnonymousLikedBy)
	assert.Equal(t, 3, stored.Total())

	likes.Toggle(domain.AuthenticatedIdentity(userID))
	require.NoError(t, repo.SaveLikes(ctx, id, likes))

	stored, err = repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.LikeCount)
	assert.Empty(t, stored.LikedBy)
	assert.Equal(t, 2, stored.AnonymousLikeCount)

	err = repo.SaveLikes(ctx, primitive.NewObjectID().Hex(), likes)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
