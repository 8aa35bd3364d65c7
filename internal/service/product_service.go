package service

import (
	"context"
	"strings"

	"github.com/developerzohaib786/redsent-ai/internal/domain"
	"github.com/developerzohaib786/redsent-ai/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	ErrProductIDRequired      = domain.InvalidArgument("Product ID is required")
	ErrInvalidProductIDFormat = domain.InvalidArgument("Invalid product ID format")
)

// ProductService defines the interface for product business logic
type ProductService interface {
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
}

type productService struct {
	repo   repository.ProductRepository
	logger *zap.Logger
}

// NewProductService creates a new instance of ProductService
func NewProductService(repo repository.ProductRepository, logger *zap.Logger) ProductService {
	return &productService{repo: repo, logger: logger}
}

// Create validates input and stores a new product with no likes
func (s *productService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	product, err := BuildProduct(input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.Hex()),
		zap.String("title", product.Title),
	)
	return product, nil
}

// Update replaces every editable field of a product. Partial updates are not supported.
func (s *productService) Update(ctx context.Context, id string, input ProductInput) (*domain.Product, error) {
	if err := checkProductID(id); err != nil {
		return nil, err
	}

	product, err := BuildProduct(input)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Replace(ctx, id, product)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product updated", zap.String("product_id", id))
	return updated, nil
}

// Delete removes a product and returns it
func (s *productService) Delete(ctx context.Context, id string) (*domain.Product, error) {
	if err := checkProductID(id); err != nil {
		return nil, err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product deleted", zap.String("product_id", id))
	return deleted, nil
}

func (s *productService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns all products, newest first
func (s *productService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.FindAll(ctx)
}

func checkProductID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrProductIDRequired
	}
	if !primitive.IsValidObjectID(id) {
		return ErrInvalidProductIDFormat
	}
	return nil
}
