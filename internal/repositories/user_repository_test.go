package repositories

import (
	"context"
	"testing"

	"github.com/bistroboss/bistro-api/internal/models"
	"github.com/bistroboss/bistro-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// setupUserRepository creates a user repository backed by an in-memory store
func setupUserRepository(t *testing.T) (*UserRepository, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	return NewUserRepository(s, zap.NewNop()), s
}

func TestUserRepository_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("first registration inserts", func(t *testing.T) {
		repo, s := setupUserRepository(t)

		result, existed, err := repo.Register(ctx, map[string]any{"email": "a@x.com", "name": "Alice"})
		require.NoError(t, err)
		assert.False(t, existed)
		assert.NotNil(t, result.InsertedID)
		assert.Equal(t, 1, s.Count(store.UsersCollection, store.Filter{"email": "a@x.com"}))
	})

	t.Run("repeat registration is a no-op", func(t *testing.T) {
		repo, s := setupUserRepository(t)

		_, _, err := repo.Register(ctx, map[string]any{"email": "a@x.com"})
		require.NoError(t, err)

		result, existed, err := repo.Register(ctx, map[string]any{"email": "a@x.com", "name": "imposter"})
		require.NoError(t, err)
		assert.True(t, existed)
		assert.Equal(t, true, result.InsertedID)
		assert.Equal(t, 1, s.Count(store.UsersCollection, store.Filter{"email": "a@x.com"}))
	})

	t.Run("store failure", func(t *testing.T) {
		repo, s := setupUserRepository(t)
		s.FailNext = true

		_, _, err := repo.Register(ctx, map[string]any{"email": "a@x.com"})
		assert.ErrorIs(t, err, store.ErrUnavailable)
	})
}

func TestUserRepository_LookupRole(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		seed     map[string]any
		email    string
		wantRole models.Role
	}{
		{
			name:     "admin role",
			seed:     map[string]any{"email": "a@x.com", "role": "admin"},
			email:    "a@x.com",
			wantRole: models.RoleAdmin,
		},
		{
			name:     "no role field",
			seed:     map[string]any{"email": "b@x.com"},
			email:    "b@x.com",
			wantRole: models.RoleStandard,
		},
		{
			name:     "unknown user",
			email:    "ghost@x.com",
			wantRole: models.RoleStandard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, s := setupUserRepository(t)
			if tt.seed != nil {
				_, err := s.Collection(store.UsersCollection).InsertOne(ctx, tt.seed)
				require.NoError(t, err)
			}

			role, err := repo.LookupRole(ctx, tt.email)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, role)
		})
	}

	t.Run("store failure is not a missing role", func(t *testing.T) {
		repo, s := setupUserRepository(t)
		s.FailNext = true

		_, err := repo.LookupRole(ctx, "a@x.com")
		assert.ErrorIs(t, err, store.ErrUnavailable)
	})
}

func TestUserRepository_PromoteToAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("promotes existing user", func(t *testing.T) {
		repo, s := setupUserRepository(t)
		res, err := s.Collection(store.UsersCollection).InsertOne(ctx, map[string]any{"email": "a@x.com"})
		require.NoError(t, err)
		id := res.InsertedID.(primitive.ObjectID).Hex()

		result, err := repo.PromoteToAdmin(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.MatchedCount)

		role, err := repo.LookupRole(ctx, "a@x.com")
		require.NoError(t, err)
		assert.True(t, role.IsAdmin())
	})

	t.Run("unknown id matches nothing", func(t *testing.T) {
		repo, _ := setupUserRepository(t)

		result, err := repo.PromoteToAdmin(ctx, primitive.NewObjectID().Hex())
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.MatchedCount)
	})

	t.Run("malformed id", func(t *testing.T) {
		repo, _ := setupUserRepository(t)

		_, err := repo.PromoteToAdmin(ctx, "not-an-object-id")
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

func TestUserRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes existing user", func(t *testing.T) {
		repo, s := setupUserRepository(t)
		res, err := s.Collection(store.UsersCollection).InsertOne(ctx, map[string]any{"email": "a@x.com"})
		require.NoError(t, err)
		id := res.InsertedID.(primitive.ObjectID).Hex()

		result, err := repo.Delete(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.DeletedCount)
		assert.Equal(t, 0, s.Count(store.UsersCollection, nil))
	})

	t.Run("unknown id deletes nothing", func(t *testing.T) {
		repo, _ := setupUserRepository(t)

		result, err := repo.Delete(ctx, primitive.NewObjectID().Hex())
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.DeletedCount)
	})

	t.Run("malformed id", func(t *testing.T) {
		repo, _ := setupUserRepository(t)

		_, err := repo.Delete(ctx, "nope")
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

func TestUserRepository_List(t *testing.T) {
	ctx := context.Background()
	repo, s := setupUserRepository(t)

	_, err := s.Collection(store.UsersCollection).InsertOne(ctx, map[string]any{"email": "a@x.com"})
	require.NoError(t, err)
	_, err = s.Collection(store.UsersCollection).InsertOne(ctx, map[string]any{"email": "b@x.com", "role": "admin"})
	require.NoError(t, err)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
