package transport

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/developerzohaib786/redsent-ai/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryStore backs every repository interface the handlers reach
type memoryStore struct {
	mu       sync.Mutex
	users    map[string]*domain.User
	tokens   map[string]*domain.RefreshToken
	products map[primitive.ObjectID]*domain.Product
	comments []*domain.Comment
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    make(map[string]*domain.User),
		tokens:   make(map[string]*domain.RefreshToken),
		products: make(map[primitive.ObjectID]*domain.Product),
	}
}

type userRepo struct{ *memoryStore }

func (s userRepo) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.Email = strings.ToLower(user.Email)
	if _, exists := s.users[user.Email]; exists {
		return domain.ErrUserAlreadyExists
	}
	user.ID = primitive.NewObjectID()
	s.users[user.Email] = user
	return nil
}

func (s userRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s userRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidUserID
	}
	for _, user := range s.users {
		if user.ID == oid {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type tokenRepo struct{ *memoryStore }

func (s tokenRepo) Create(ctx context.Context, token *domain.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token.Token] = token
	return nil
}

func (s tokenRepo) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.tokens[token]
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	if stored.Revoked {
		return nil, domain.ErrTokenRevoked
	}
	return stored, nil
}

func (s tokenRepo) Revoke(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.tokens[token]
	if !ok {
		return domain.ErrTokenNotFound
	}
	stored.Revoked = true
	return nil
}

type productRepo struct{ *memoryStore }

func (s productRepo) find(id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidProductID
	}
	product, ok := s.products[oid]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

func (s productRepo) Create(ctx context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now().Add(time.Duration(len(s.products)) * time.Millisecond)
	product.UpdatedAt = product.CreatedAt
	product.Likes.Normalize()
	stored := *product
	s.products[product.ID] = &stored
	return nil
}

func (s productRepo) FindAll(ctx context.Context) ([]*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := []*domain.Product{}
	for _, p := range s.products {
		copied := *p
		products = append(products, &copied)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	return products, nil
}

func (s productRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, err := s.find(id)
	if err != nil {
		return nil, err
	}
	copied := *product
	copied.LikedBy = append([]string{}, product.LikedBy...)
	copied.AnonymousLikedBy = append([]string{}, product.AnonymousLikedBy...)
	return &copied, nil
}

func (s productRepo) Replace(ctx context.Context, id string, product *domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, err := s.find(id)
	if err != nil {
		return nil, err
	}
	updated := *product
	updated.ID = existing.ID
	updated.Likes = existing.Likes
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	s.products[existing.ID] = &updated
	copied := updated
	return &copied, nil
}

func (s productRepo) Delete(ctx context.Context, id string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, err := s.find(id)
	if err != nil {
		return nil, err
	}
	delete(s.products, existing.ID)
	return existing, nil
}

func (s productRepo) SaveLikes(ctx context.Context, id string, likes domain.Likes) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, err := s.find(id)
	if err != nil {
		return err
	}
	existing.Likes = likes
	return nil
}

type commentRepo struct{ *memoryStore }

func (s commentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now().Add(time.Duration(len(s.comments)) * time.Millisecond)
	comment.UpdatedAt = comment.CreatedAt
	s.comments = append(s.comments, comment)
	return nil
}

func (s commentRepo) FindByVideoID(ctx context.Context, videoID primitive.ObjectID) ([]*domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*domain.Comment{}
	for _, c := range s.comments {
		if c.VideoID == videoID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
