package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/developerzohaib786/redsent-ai/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repositories shared by the service tests

type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.Email]; exists {
		return domain.ErrUserAlreadyExists
	}
	user.ID = primitive.NewObjectID()
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, exists := m.users[email]
	if !exists {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidUserID
	}
	for _, user := range m.users {
		if user.ID == oid {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type mockRefreshTokenRepository struct {
	tokens map[string]*domain.RefreshToken
}

func newMockRefreshTokenRepository() *mockRefreshTokenRepository {
	return &mockRefreshTokenRepository{tokens: make(map[string]*domain.RefreshToken)}
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	m.tokens[token.Token] = token
	return nil
}

func (m *mockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	refreshToken, exists := m.tokens[token]
	if !exists {
		return nil, domain.ErrTokenNotFound
	}
	if refreshToken.Revoked {
		return nil, domain.ErrTokenRevoked
	}
	return refreshToken, nil
}

func (m *mockRefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	refreshToken, exists := m.tokens[token]
	if !exists {
		return domain.ErrTokenNotFound
	}
	refreshToken.Revoked = true
	return nil
}

type mockProductRepository struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]*domain.Product
	err      error
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[primitive.ObjectID]*domain.Product)}
}

func (m *mockProductRepository) lookup(id string) (primitive.ObjectID, *domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return oid, nil, domain.ErrInvalidProductID
	}
	product, ok := m.products[oid]
	if !ok {
		return oid, nil, domain.ErrProductNotFound
	}
	return oid, product, nil
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	product.Likes.Normalize()
	stored := *product
	m.products[product.ID] = &stored
	return nil
}

func (m *mockProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	products := []*domain.Product{}
	for _, p := range m.products {
		copied := *p
		products = append(products, &copied)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	return products, nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, product, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	copied := *product
	copied.LikedBy = append([]string(nil), product.LikedBy...)
	copied.AnonymousLikedBy = append([]string(nil), product.AnonymousLikedBy...)
	copied.Likes.Normalize()
	return &copied, nil
}

func (m *mockProductRepository) Replace(ctx context.Context, id string, product *domain.Product) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	oid, existing, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	updated := *product
	updated.ID = oid
	updated.Likes = existing.Likes
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	m.products[oid] = &updated
	copied := updated
	return &copied, nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	oid, existing, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	delete(m.products, oid)
	return existing, nil
}

func (m *mockProductRepository) SaveLikes(ctx context.Context, id string, likes domain.Likes) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, existing, err := m.lookup(id)
	if err != nil {
		return err
	}
	existing.Likes = likes
	return nil
}

type mockCommentRepository struct {
	comments []*domain.Comment
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now().Add(time.Duration(len(m.comments)) * time.Millisecond)
	comment.UpdatedAt = comment.CreatedAt
	m.comments = append(m.comments, comment)
	return nil
}

func (m *mockCommentRepository) FindByVideoID(ctx context.Context, videoID primitive.ObjectID) ([]*domain.Comment, error) {
	out := []*domain.Comment{}
	for _, c := range m.comments {
		if c.VideoID == videoID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
