package repository

import (
	"context"

	"github.com/developerzohaib786/redsent-ai/internal/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("product-repository")

// productRepositoryWithTracing wraps a ProductRepository with a span per call
type productRepositoryWithTracing struct {
	next ProductRepository
}

// NewProductRepositoryWithTracing decorates repo with OpenTelemetry spans
func NewProductRepositoryWithTracing(repo ProductRepository) ProductRepository {
	return &productRepositoryWithTracing{next: repo}
}

func (r *productRepositoryWithTracing) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(attribute.String("product.title", product.Title)),
	)
	defer span.End()

	if err := r.next.Create(ctx, product); err != nil {
		recordError(span, err)
		return err
	}

	span.SetAttributes(attribute.String("product.id", product.ID.Hex()))
	return nil
}

func (r *productRepositoryWithTracing) FindAll(ctx context.Context) ([]*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindAll")
	defer span.End()

	products, err := r.next.FindAll(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	return products, nil
}

func (r *productRepositoryWithTracing) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(attribute.String("product.id", id)),
	)
	defer span.End()

	product, err := r.next.FindByID(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("product.likes", product.Total()))
	return product, nil
}

func (r *productRepositoryWithTracing) Replace(ctx context.Context, id string, product *domain.Product) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.Replace",
		trace.WithAttributes(attribute.String("product.id", id)),
	)
	defer span.End()

	updated, err := r.next.Replace(ctx, id, product)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return updated, nil
}

func (r *productRepositoryWithTracing) Delete(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.Delete",
		trace.WithAttributes(attribute.String("product.id", id)),
	)
	defer span.End()

	deleted, err := r.next.Delete(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return deleted, nil
}

func (r *productRepositoryWithTracing) SaveLikes(ctx context.Context, id string, likes domain.Likes) error {
	ctx, span := tracer.Start(ctx, "repository.SaveLikes",
		trace.WithAttributes(
			attribute.String("product.id", id),
			attribute.Int("product.like_count", likes.LikeCount),
			attribute.Int("product.anonymous_like_count", likes.AnonymousLikeCount),
		),
	)
	defer span.End()

	if err := r.next.SaveLikes(ctx, id, likes); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
