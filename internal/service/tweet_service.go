package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"chirp/internal/models"
	"chirp/internal/repository"
)

// TweetService handles authoring, editing and liking tweets.
type TweetService struct {
	tweetRepo repository.TweetRepository
}

type CreateTweetInput struct {
	UserID uint
	Body   string
}

type UpdateTweetInput struct {
	UserID  uint
	TweetID uint
	Body    string
}

type DeleteTweetInput struct {
	UserID  uint
	TweetID uint
}

func NewTweetService(tweetRepo repository.TweetRepository) *TweetService {
	return &TweetService{tweetRepo: tweetRepo}
}

func validateTweetBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return models.NewValidationError("Tweet body is required")
	}
	if utf8.RuneCountInString(body) > models.MaxTweetBodyLen {
		return models.NewValidationError("Tweet too long (max 280 characters)")
	}
	return nil
}

func (s *TweetService) CreateTweet(ctx context.Context, in CreateTweetInput) (*models.Tweet, error) {
	if err := validateTweetBody(in.Body); err != nil {
		return nil, err
	}
	tweet := &models.Tweet{UserID: in.UserID, Body: in.Body}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, err
	}
	return s.tweetRepo.GetByID(ctx, tweet.ID, in.UserID)
}

func (s *TweetService) GetTweet(ctx context.Context, id, viewerUserID uint) (*models.Tweet, error) {
	return s.tweetRepo.GetByID(ctx, id, viewerUserID)
}

func (s *TweetService) ListByUser(ctx context.Context, userID uint, limit, offset int, viewerUserID uint) ([]*models.Tweet, error) {
	return s.tweetRepo.GetByUserID(ctx, userID, limit, offset, viewerUserID)
}

// UpdateTweet replaces the body. Only the author may edit; the author and
// created-at timestamp never change.
func (s *TweetService) UpdateTweet(ctx context.Context, in UpdateTweetInput) (*models.Tweet, error) {
	tweet, err := s.tweetRepo.GetByID(ctx, in.TweetID, in.UserID)
	if err != nil {
		return nil, err
	}
	if tweet.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own tweets")
	}
	if err := validateTweetBody(in.Body); err != nil {
		return nil, err
	}

	tweet.Body = in.Body
	if err := s.tweetRepo.Update(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *TweetService) DeleteTweet(ctx context.Context, in DeleteTweetInput) error {
	tweet, err := s.tweetRepo.GetByID(ctx, in.TweetID, in.UserID)
	if err != nil {
		return err
	}
	if tweet.UserID != in.UserID {
		return models.NewForbiddenError("You can only delete your own tweets")
	}
	return s.tweetRepo.Delete(ctx, in.TweetID)
}

// ToggleLike flips the viewer's like on a tweet and reports the new state.
// Toggling twice always lands back where it started.
func (s *TweetService) ToggleLike(ctx context.Context, userID, tweetID uint) (bool, error) {
	if _, err := s.tweetRepo.GetByID(ctx, tweetID, userID); err != nil {
		return false, err
	}

	liked, err := s.tweetRepo.IsLiked(ctx, userID, tweetID)
	if err != nil {
		return false, err
	}
	if liked {
		if err := s.tweetRepo.Unlike(ctx, userID, tweetID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.tweetRepo.Like(ctx, userID, tweetID); err != nil {
		return false, err
	}
	return true, nil
}
