package server

import (
	"chirp/internal/cache"
	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed. The response carries the personalized
// timeline plus up to five follow suggestions.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	userID := s.currentUserID(c)
	p := parsePagination(c, 20)

	feed, err := s.feedService.BuildFeed(c.UserContext(), userID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(feed)
}

// GetTimeline handles GET /api/timeline, the public firehose. Anonymous
// viewers are welcome; authenticated ones get liked flags.
func (s *Server) GetTimeline(c *fiber.Ctx) error {
	p := parsePagination(c, cache.TimelinePageLimit)

	tweets, err := s.feedService.PublicTimeline(c.UserContext(), s.viewerID(c), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(tweets)
}
