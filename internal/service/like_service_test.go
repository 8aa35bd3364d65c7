package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/developerzohaib786/redsent-ai/internal/domain"
	"github.com/developerzohaib786/redsent-ai/internal/metrics"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedProduct(t *testing.T, repo *mockProductRepository) string {
	t.Helper()
	product, err := BuildProduct(validInput())
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), product))
	return product.ID.Hex()
}

func TestLikeService_AnonymousToggleTwice(t *testing.T) {
	repo := newMockProductRepository()
	m := metrics.New()
	service := NewLikeService(repo, m, zap.NewNop())
	ctx := context.Background()
	id := seedProduct(t, repo)
	visitor := domain.AnonymousIdentity("abcdef0123456789")

	first, err := service.Toggle(ctx, id, visitor)
	require.NoError(t, err)
	assert.True(t, first.Liked)
	assert.Equal(t, 1, first.LikeCount)
	assert.False(t, first.IsAuthenticated)

	second, err := service.Toggle(ctx, id, visitor)
	require.NoError(t, err)
	assert.False(t, second.Liked)
	assert.Equal(t, 0, second.LikeCount)

	stored, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, stored.AnonymousLikedBy)
	assert.Equal(t, 0, stored.AnonymousLikeCount)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LikeToggles.WithLabelValues("anonymous", "like")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LikeToggles.WithLabelValues("anonymous", "unlike")))
}

func TestLikeService_StatusSeesBothSets(t *testing.T) {
	repo := newMockProductRepository()
	service := NewLikeService(repo, nil, zap.NewNop())
	ctx := context.Background()
	id := seedProduct(t, repo)

	user := domain.AuthenticatedIdentity("507f1f77bcf86cd799439011")
	_, err := service.Toggle(ctx, id, user)
	require.NoError(t, err)
	_, err = service.Toggle(ctx, id, domain.AnonymousIdentity("fp-1"))
	require.NoError(t, err)

	status, err := service.Status(ctx, id, user)
	require.NoError(t, err)
	assert.Equal(t, &LikeStatus{
		LikeCount:          2,
		UserHasLiked:       true,
		IsAuthenticated:    true,
		AuthenticatedLikes: 1,
		AnonymousLikes:     1,
	}, status)

	status, err = service.Status(ctx, id, domain.AnonymousIdentity("fp-2"))
	require.NoError(t, err)
	assert.False(t, status.UserHasLiked)
	assert.False(t, status.IsAuthenticated)
}

func TestLikeService_Errors(t *testing.T) {
	service := NewLikeService(newMockProductRepository(), nil, zap.NewNop())
	ctx := context.Background()
	who := domain.AnonymousIdentity("fp")

	_, err := service.Toggle(ctx, "nope", who)
	assert.Equal(t, domain.KindInvalidArgument, domain.KindOf(err))

	_, err = service.Toggle(ctx, "507f1f77bcf86cd799439011", who)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = service.Status(ctx, "507f1f77bcf86cd799439011", who)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProperty_PersistedCountsMatchSets(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("stored counts equal stored set sizes after any toggle sequence", prop.ForAll(
		func(sequence []int) bool {
			repo := newMockProductRepository()
			service := NewLikeService(repo, nil, zap.NewNop())
			ctx := context.Background()
			id := seedProduct(t, repo)

			var last *ToggleResult
			for _, n := range sequence {
				who := domain.AnonymousIdentity(fmt.Sprintf("fp-%d", n))
				if n%2 == 0 {
					who = domain.AuthenticatedIdentity(fmt.Sprintf("user-%d", n))
				}
				result, err := service.Toggle(ctx, id, who)
				if err != nil {
					t.Logf("FAIL: toggle: %v", err)
					return false
				}
				last = result
			}

			stored, err := repo.FindByID(ctx, id)
			if err != nil {
				return false
			}
			if stored.LikeCount != len(stored.LikedBy) || stored.AnonymousLikeCount != len(stored.AnonymousLikedBy) {
				t.Logf("FAIL: counts drifted: %+v", stored.Likes)
				return false
			}
			return last == nil || last.LikeCount == stored.Total()
		},
		gen.SliceOf(gen.IntRange(0, 9)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
