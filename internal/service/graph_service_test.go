package service

import (
	"context"
	"testing"

	"chirp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphService_Follow_Self(t *testing.T) {
	t.Parallel()
	svc := NewGraphService(noopProfileRepo())

	err := svc.Follow(context.Background(), 5, 5)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SELF_FOLLOW", appErr.Code)
}

func TestGraphService_Follow_ResolvesProfileIDs(t *testing.T) {
	t.Parallel()
	var gotFollower, gotFollowee uint
	repo := noopProfileRepo()
	repo.createFollowFn = func(_ context.Context, followerID, followeeID uint) error {
		gotFollower, gotFollowee = followerID, followeeID
		return nil
	}
	svc := NewGraphService(repo)

	require.NoError(t, svc.Follow(context.Background(), 1, 2))
	// the stub maps user N to profile N+100
	assert.Equal(t, uint(101), gotFollower)
	assert.Equal(t, uint(102), gotFollowee)
}

func TestGraphService_Follow_MissingTarget(t *testing.T) {
	t.Parallel()
	repo := noopProfileRepo()
	repo.idForUserFn = func(_ context.Context, userID uint) (uint, error) {
		if userID == 999 {
			return 0, models.NewNotFoundError("Profile", userID)
		}
		return userID + 100, nil
	}
	svc := NewGraphService(repo)

	err := svc.Follow(context.Background(), 1, 999)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestGraphService_Unfollow_SelfIsNoOp(t *testing.T) {
	t.Parallel()
	var gotFollower, gotFollowee uint
	repo := noopProfileRepo()
	repo.deleteFollowFn = func(_ context.Context, followerID, followeeID uint) error {
		gotFollower, gotFollowee = followerID, followeeID
		return nil
	}
	svc := NewGraphService(repo)

	// a self-edge can never exist, so this deletes nothing and succeeds
	require.NoError(t, svc.Unfollow(context.Background(), 5, 5))
	assert.Equal(t, uint(105), gotFollower)
	assert.Equal(t, uint(105), gotFollowee)
}

func TestGraphService_Unfollow_NotFollowedIsNoOp(t *testing.T) {
	t.Parallel()
	svc := NewGraphService(noopProfileRepo())

	require.NoError(t, svc.Unfollow(context.Background(), 1, 2))
}

func TestGraphService_Followers_OwnerOnly(t *testing.T) {
	t.Parallel()
	repo := noopProfileRepo()
	repo.followersFn = func(_ context.Context, _ uint, _, _ int) ([]*models.Profile, error) {
		return []*models.Profile{{ID: 1}}, nil
	}
	svc := NewGraphService(repo)
	ctx := context.Background()

	_, err := svc.Followers(ctx, 2, 1, 50, 0)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	got, err := svc.Followers(ctx, 1, 1, 50, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestGraphService_Following_OwnerOnly(t *testing.T) {
	t.Parallel()
	svc := NewGraphService(noopProfileRepo())

	_, err := svc.Following(context.Background(), 2, 1, 50, 0)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}

func TestGraphService_Profiles_AnonymousViewer(t *testing.T) {
	t.Parallel()
	var gotViewer uint = 42
	repo := noopProfileRepo()
	repo.listFn = func(_ context.Context, _, _ int, viewerProfileID uint) ([]*models.Profile, error) {
		gotViewer = viewerProfileID
		return nil, nil
	}
	svc := NewGraphService(repo)

	_, err := svc.Profiles(context.Background(), 0, 50, 0)
	require.NoError(t, err)
	assert.Zero(t, gotViewer, "anonymous viewers get no follow state")
}
