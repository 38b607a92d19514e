package service

import (
	"context"

	"chirp/internal/models"
	"chirp/internal/observability"
	"chirp/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// MaxSuggestions caps how many follow suggestions ride along with a feed.
const MaxSuggestions = 5

// Feed is a personalized home timeline plus follow suggestions.
type Feed struct {
	Tweets      []*models.Tweet   `json:"tweets"`
	Suggestions []*models.Profile `json:"suggestions"`
}

// FeedService assembles home feeds and the public timeline.
type FeedService struct {
	tweetRepo   repository.TweetRepository
	profileRepo repository.ProfileRepository
}

func NewFeedService(tweetRepo repository.TweetRepository, profileRepo repository.ProfileRepository) *FeedService {
	return &FeedService{tweetRepo: tweetRepo, profileRepo: profileRepo}
}

// BuildFeed returns the viewer's home timeline: tweets by followed authors
// plus the viewer's own, newest first, with up to MaxSuggestions profiles
// the viewer does not follow yet.
func (s *FeedService) BuildFeed(ctx context.Context, viewerUserID uint, limit, offset int) (*Feed, error) {
	span, ctx := observability.NewSpan(ctx, "feed.build")
	defer span.End()
	span.AddAttributes(
		attribute.Int("feed.limit", limit),
		attribute.Int("feed.offset", offset),
	)
	defer observability.TrackFeedAssembly()()

	viewerProfileID, err := s.profileRepo.IDForUser(ctx, viewerUserID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	tweets, err := s.tweetRepo.Feed(ctx, viewerUserID, viewerProfileID, limit, offset)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	suggestions, err := s.profileRepo.Suggestions(ctx, viewerProfileID, MaxSuggestions)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	span.AddAttributes(attribute.Int("feed.tweets", len(tweets)))
	return &Feed{Tweets: tweets, Suggestions: suggestions}, nil
}

// PublicTimeline returns the newest tweets across all users. Available to
// anonymous viewers.
func (s *FeedService) PublicTimeline(ctx context.Context, viewerUserID uint, limit, offset int) ([]*models.Tweet, error) {
	return s.tweetRepo.PublicTimeline(ctx, limit, offset, viewerUserID)
}
