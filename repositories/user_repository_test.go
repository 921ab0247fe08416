package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkup/apperrors"
	"linkup/models"
	"linkup/repositories"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		Name:     "Alice",
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hashed",
	}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, models.DefaultAvatar, user.Photo)

	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
	assert.Empty(t, byID.Followers)
	assert.Empty(t, byID.Following)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice")

	err := repo.Create(ctx, &models.User{
		Name:     "Other Alice",
		Username: "alice",
		Email:    "other@example.com",
		Password: "hashed",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice")

	err := repo.Create(ctx, &models.User{
		Name:     "Impostor",
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "hashed",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestUserRepository_FindNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.FindByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = repo.FindByID(ctx, "no-such-id")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserRepository_FollowSymmetry(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewUserRepository(db)
	ctx := context.Background()

	bob := seedUser(t, db, "bob")
	alice := seedUser(t, db, "alice")

	require.NoError(t, repo.Follow(ctx, bob.ID, alice.ID))

	gotAlice, err := repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, gotAlice.Followers, 1)
	assert.Equal(t, bob.ID, gotAlice.Followers[0].ID)
	assert.Empty(t, gotAlice.Following)

	gotBob, err := repo.FindByID(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, gotBob.Following, 1)
	assert.Equal(t, alice.ID, gotBob.Following[0].ID)
	assert.Empty(t, gotBob.Followers)
}

func TestUserRepository_FollowUnfollowRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewUserRepository(db)
	ctx := context.Background()

	bob := seedUser(t, db, "bob")
	alice := seedUser(t, db, "alice")

	require.NoError(t, repo.Follow(ctx, bob.ID, alice.ID))
	require.NoError(t, repo.Unfollow(ctx, bob.ID, alice.ID))

	gotAlice, err := repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, gotAlice.Followers)

	gotBob, err := repo.FindByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, gotBob.Following)
}

func TestUserRepository_DuplicateFollowRejected(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewUserRepository(db)
	ctx := context.Background()

	bob := seedUser(t, db, "bob")
	alice := seedUser(t, db, "alice")

	require.NoError(t, repo.Follow(ctx, bob.ID, alice.ID))

	err := repo.Follow(ctx, bob.ID, alice.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// the duplicate attempt must not create a second edge
	gotAlice, err := repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, gotAlice.Followers, 1)
}

func TestUserRepository_SelfFollowRejected(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewUserRepository(db)
	ctx := context.Background()

	bob := seedUser(t, db, "bob")

	err := repo.Follow(ctx, bob.ID, bob.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUserRepository_FollowMissingTarget(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewUserRepository(db)
	ctx := context.Background()

	bob := seedUser(t, db, "bob")

	err := repo.Follow(ctx, bob.ID, "no-such-id")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserRepository_UnfollowAbsentEdgeIsNoop(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewUserRepository(db)
	ctx := context.Background()

	bob := seedUser(t, db, "bob")
	alice := seedUser(t, db, "alice")

	assert.NoError(t, repo.Unfollow(ctx, bob.ID, alice.ID))
}

func TestUserRepository_UnfollowMissingTarget(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewUserRepository(db)
	ctx := context.Background()

	bob := seedUser(t, db, "bob")

	err := repo.Unfollow(ctx, bob.ID, "no-such-id")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
