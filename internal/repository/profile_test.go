package repository

import (
	"context"
	"testing"

	"chirp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository_FollowIdempotent(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	_, alice := seedUser(t, db, "alice")
	_, bob := seedUser(t, db, "bob")

	require.NoError(t, repo.CreateFollow(ctx, alice.ID, bob.ID))
	// second follow must be a silent no-op
	require.NoError(t, repo.CreateFollow(ctx, alice.ID, bob.ID))

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	following, err := repo.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)
}

func TestProfileRepository_UnfollowIdempotent(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	_, alice := seedUser(t, db, "alice")
	_, bob := seedUser(t, db, "bob")

	require.NoError(t, repo.CreateFollow(ctx, alice.ID, bob.ID))
	require.NoError(t, repo.DeleteFollow(ctx, alice.ID, bob.ID))
	// deleting a missing edge is not an error
	require.NoError(t, repo.DeleteFollow(ctx, alice.ID, bob.ID))

	following, err := repo.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestProfileRepository_Counts(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	aliceUser, alice := seedUser(t, db, "alice")
	_, bob := seedUser(t, db, "bob")
	_, carol := seedUser(t, db, "carol")

	require.NoError(t, repo.CreateFollow(ctx, bob.ID, alice.ID))
	require.NoError(t, repo.CreateFollow(ctx, carol.ID, alice.ID))
	require.NoError(t, repo.CreateFollow(ctx, alice.ID, bob.ID))

	got, err := repo.GetByUserID(ctx, aliceUser.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.FollowersCount)
	assert.Equal(t, 1, got.FollowingCount)
	assert.True(t, got.Following, "bob follows alice")
	assert.Equal(t, "alice", got.User.Username)
}

func TestProfileRepository_FollowersAndFollowing(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	_, alice := seedUser(t, db, "alice")
	_, bob := seedUser(t, db, "bob")
	_, carol := seedUser(t, db, "carol")

	require.NoError(t, repo.CreateFollow(ctx, bob.ID, alice.ID))
	require.NoError(t, repo.CreateFollow(ctx, carol.ID, alice.ID))
	require.NoError(t, repo.CreateFollow(ctx, alice.ID, carol.ID))

	followers, err := repo.Followers(ctx, alice.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, followers, 2)

	following, err := repo.Following(ctx, alice.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, carol.ID, following[0].ID)
	// the edge alice→carol must be reflected in the computed flag
	assert.True(t, following[0].Following)
}

func TestProfileRepository_Suggestions(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	_, alice := seedUser(t, db, "alice")
	_, bob := seedUser(t, db, "bob")
	_, carol := seedUser(t, db, "carol")
	_, dave := seedUser(t, db, "dave")

	require.NoError(t, repo.CreateFollow(ctx, alice.ID, bob.ID))

	got, err := repo.Suggestions(ctx, alice.ID, 5)
	require.NoError(t, err)
	require.Len(t, got, 2, "self and followed profiles are excluded")
	assert.Equal(t, carol.ID, got[0].ID)
	assert.Equal(t, dave.ID, got[1].ID)
	for _, p := range got {
		assert.False(t, p.Following)
	}
}

func TestProfileRepository_SuggestionsLimit(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	_, alice := seedUser(t, db, "alice")
	for _, name := range []string{"u1", "u2", "u3", "u4", "u5", "u6", "u7"} {
		seedUser(t, db, name)
	}

	got, err := repo.Suggestions(ctx, alice.ID, 5)
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestProfileRepository_GetByUserID_NotFound(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewProfileRepository(db)

	_, err := repo.GetByUserID(context.Background(), 9999, 0)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestProfileRepository_IDForUser(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	user, profile := seedUser(t, db, "alice")

	id, err := repo.IDForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, id)

	_, err = repo.IDForUser(ctx, 9999)
	assert.Error(t, err)
}
