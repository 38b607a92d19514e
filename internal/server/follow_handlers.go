package server

import (
	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/users/:id/follow
func (s *Server) FollowUser(c *fiber.Ctx) error {
	userID := s.currentUserID(c)
	targetID, err := s.parseID(c, "id", "user ID")
	if err != nil {
		return nil
	}

	if err := s.graphService.Follow(c.UserContext(), userID, targetID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"following": true})
}

// UnfollowUser handles DELETE /api/users/:id/follow
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	userID := s.currentUserID(c)
	targetID, err := s.parseID(c, "id", "user ID")
	if err != nil {
		return nil
	}

	if err := s.graphService.Unfollow(c.UserContext(), userID, targetID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"following": false})
}

// GetFollowers handles GET /api/users/:id/followers. Owner-only.
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	userID := s.currentUserID(c)
	ownerID, err := s.parseID(c, "id", "user ID")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 50)

	profiles, err := s.graphService.Followers(c.UserContext(), userID, ownerID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(profiles)
}

// GetFollowing handles GET /api/users/:id/follows. Owner-only.
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	userID := s.currentUserID(c)
	ownerID, err := s.parseID(c, "id", "user ID")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 50)

	profiles, err := s.graphService.Following(c.UserContext(), userID, ownerID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(profiles)
}
