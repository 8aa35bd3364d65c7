package repository

import (
	"context"
	"errors"
	"time"

	"github.com/developerzohaib786/redsent-ai/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindAll(ctx context.Context) ([]*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Replace(ctx context.Context, id string, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) (*domain.Product, error)
	SaveLikes(ctx context.Context, id string, likes domain.Likes) error
}

type productRepository struct {
	collection *mongo.Collection
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *mongo.Database) ProductRepository {
	return &productRepository{collection: db.Collection(productsCollection)}
}

// Create inserts a new product with empty like sets
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	product.Likes.Normalize()

	result, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return domain.Internal("Failed to create product", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return nil
}

// FindAll returns every product, newest first
func (r *productRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, domain.Internal("Failed to fetch products", err)
	}
	defer cursor.Close(ctx)

	products := []*domain.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, domain.Internal("Failed to fetch products", err)
	}

	for _, p := range products {
		p.Likes.Normalize()
	}
	return products, nil
}

// FindByID retrieves a product by its hex id
func (r *productRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := parseID(id, domain.ErrInvalidProductID)
	if err != nil {
		return nil, err
	}

	var product domain.Product
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal("Failed to fetch product", err)
	}

	product.Likes.Normalize()
	return &product, nil
}

// Replace overwrites every editable field of a product. Like accounting is left untouched.
func (r *productRepository) Replace(ctx context.Context, id string, product *domain.Product) (*domain.Product, error) {
	oid, err := parseID(id, domain.ErrInvalidProductID)
	if err != nil {
		return nil, err
	}

	update := bson.M{
		"$set": bson.M{
			"productTitle":       product.Title,
			"productDescription": product.Description,
			"productPhotos":      product.Photos,
			"productPrice":       product.Price,
			"affiliateLink":      product.AffiliateLink,
			"affiliateLinkText":  product.AffiliateLinkText,
			"pros":               product.Pros,
			"cons":               product.Cons,
			"redditReviews":      product.RedditReviews,
			"productScore":       product.Score,
			"updatedAt":          time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated domain.Product
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal("Failed to update product", err)
	}

	updated.Likes.Normalize()
	return &updated, nil
}

// Delete removes a product and returns the deleted document
func (r *productRepository) Delete(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := parseID(id, domain.ErrInvalidProductID)
	if err != nil {
		return nil, err
	}

	var deleted domain.Product
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&deleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal("Failed to delete product", err)
	}

	deleted.Likes.Normalize()
	return &deleted, nil
}

// SaveLikes writes the four like fields in a single document update
func (r *productRepository) SaveLikes(ctx context.Context, id string, likes domain.Likes) error {
	oid, err := parseID(id, domain.ErrInvalidProductID)
	if err != nil {
		return err
	}

	likes.Normalize()
	update := bson.M{
		"$set": bson.M{
			"likeCount":          likes.LikeCount,
			"likedBy":            likes.LikedBy,
			"anonymousLikeCount": likes.AnonymousLikeCount,
			"anonymousLikedBy":   likes.AnonymousLikedBy,
			"updatedAt":          time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return domain.Internal("Failed to toggle like", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
