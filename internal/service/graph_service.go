package service

import (
	"context"

	"chirp/internal/models"
	"chirp/internal/repository"
)

// GraphService manages the directed follow graph between profiles.
type GraphService struct {
	profileRepo repository.ProfileRepository
}

func NewGraphService(profileRepo repository.ProfileRepository) *GraphService {
	return &GraphService{profileRepo: profileRepo}
}

// Follow creates the edge viewer → target. Following an already-followed
// profile is a no-op; following yourself is rejected.
func (s *GraphService) Follow(ctx context.Context, viewerUserID, targetUserID uint) error {
	if viewerUserID == targetUserID {
		return models.NewSelfFollowError()
	}
	viewerProfileID, err := s.profileRepo.IDForUser(ctx, viewerUserID)
	if err != nil {
		return err
	}
	targetProfileID, err := s.profileRepo.IDForUser(ctx, targetUserID)
	if err != nil {
		return err
	}
	return s.profileRepo.CreateFollow(ctx, viewerProfileID, targetProfileID)
}

// Unfollow removes the edge viewer → target. Removing a missing edge is a
// no-op, and since a self-edge can never exist, unfollowing yourself is too.
func (s *GraphService) Unfollow(ctx context.Context, viewerUserID, targetUserID uint) error {
	viewerProfileID, err := s.profileRepo.IDForUser(ctx, viewerUserID)
	if err != nil {
		return err
	}
	targetProfileID, err := s.profileRepo.IDForUser(ctx, targetUserID)
	if err != nil {
		return err
	}
	return s.profileRepo.DeleteFollow(ctx, viewerProfileID, targetProfileID)
}

func (s *GraphService) IsFollowing(ctx context.Context, viewerUserID, targetUserID uint) (bool, error) {
	viewerProfileID, err := s.profileRepo.IDForUser(ctx, viewerUserID)
	if err != nil {
		return false, err
	}
	targetProfileID, err := s.profileRepo.IDForUser(ctx, targetUserID)
	if err != nil {
		return false, err
	}
	return s.profileRepo.IsFollowing(ctx, viewerProfileID, targetProfileID)
}

// Followers lists who follows the owner. The page is private: only the
// owner may read it.
func (s *GraphService) Followers(ctx context.Context, viewerUserID, ownerUserID uint, limit, offset int) ([]*models.Profile, error) {
	if viewerUserID != ownerUserID {
		return nil, models.NewForbiddenError("Follower lists are only visible to their owner")
	}
	ownerProfileID, err := s.profileRepo.IDForUser(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	return s.profileRepo.Followers(ctx, ownerProfileID, limit, offset)
}

// Following lists who the owner follows. Private to the owner, same as Followers.
func (s *GraphService) Following(ctx context.Context, viewerUserID, ownerUserID uint, limit, offset int) ([]*models.Profile, error) {
	if viewerUserID != ownerUserID {
		return nil, models.NewForbiddenError("Follow lists are only visible to their owner")
	}
	ownerProfileID, err := s.profileRepo.IDForUser(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	return s.profileRepo.Following(ctx, ownerProfileID, limit, offset)
}

// Profiles lists all profiles with follow state computed for the viewer.
func (s *GraphService) Profiles(ctx context.Context, viewerUserID uint, limit, offset int) ([]*models.Profile, error) {
	var viewerProfileID uint
	if viewerUserID != 0 {
		id, err := s.profileRepo.IDForUser(ctx, viewerUserID)
		if err != nil {
			return nil, err
		}
		viewerProfileID = id
	}
	return s.profileRepo.List(ctx, limit, offset, viewerProfileID)
}

// ProfileOf returns a single user's profile with follow state for the viewer.
func (s *GraphService) ProfileOf(ctx context.Context, targetUserID, viewerUserID uint) (*models.Profile, error) {
	var viewerProfileID uint
	if viewerUserID != 0 {
		id, err := s.profileRepo.IDForUser(ctx, viewerUserID)
		if err != nil {
			return nil, err
		}
		viewerProfileID = id
	}
	return s.profileRepo.GetByUserID(ctx, targetUserID, viewerProfileID)
}
