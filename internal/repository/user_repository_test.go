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
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

func TestProperty_RegistrationStoresHashedPasswords(t *testing.T) {
	db := requireDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	properties.Property("passwords are hashed with bcrypt and not stored as plaintext", prop.ForAll(
		func(email string, password string, name string) bool {
			_, _ = db.Collection(usersCollection).DeleteMany(ctx, bson.M{"email": email})
			defer func() { _, _ = db.Collection(usersCollection).DeleteMany(ctx, bson.M{"email": email}) }()

			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
			if err != nil {
				t.Logf("Failed to hash password: %v", err)
				return false
			}

			user := &domain.User{Email: email, Password: string(hashedPassword), Name: name}
			if err := repo.Create(ctx, user); err != nil {
				t.Logf("Failed to create user: %v", err)
				return false
			}

			retrieved, err := repo.FindByEmail(ctx, email)
			if err != nil {
				t.Logf("Failed to find user: %v", err)
				return false
			}

			if retrieved.Password == password {
				t.Logf("Password was stored as plaintext!")
				return false
			}

			if err := bcrypt.CompareHashAndPassword([]byte(retrieved.Password), []byte(password)); err != nil {
				t.Logf("Stored password is not a valid bcrypt hash: %v", err)
				return false
			}

			return retrieved.Role == domain.RoleUser && retrieved.ID == user.ID
		},
		gen.RegexMatch(`[a-z]{5,10}@[a-z]{3,8}\.(com|org|net)`),
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{8,20}`),
		gen.RegexMatch(`[A-Z][a-z]{2,15}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := requireDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	email := "duplicate@example.com"
	defer func() { _, _ = db.Collection(usersCollection).DeleteMany(ctx, bson.M{"email": email}) }()

	require.NoError(t, repo.Create(ctx, &domain.User{Email: email, Password: "hash"}))

	err := repo.Create(ctx, &domain.User{Email: "Duplicate@Example.com ", Password: "hash"})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestUserRepository_FindByID(t *testing.T) {
	db := requireDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{Email: "findbyid@example.com", Password: "hash", Name: "Finder"}
	require.NoError(t, repo.Create(ctx, user))
	defer func() { _, _ = db.Collection(usersCollection).DeleteOne(ctx, bson.M{"_id": user.ID}) }()

	found, err := repo.FindByID(ctx, user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Finder", found.Name)

	_, err = repo.FindByID(ctx, "xyz")
	assert.ErrorIs(t, err, domain.ErrInvalidUserID)
}
