package server

import (
	"chirp/internal/models"
	"chirp/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateTweet handles POST /api/tweets
func (s *Server) CreateTweet(c *fiber.Ctx) error {
	userID := s.currentUserID(c)

	var req struct {
		Body string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tweet, err := s.tweetService.CreateTweet(c.UserContext(), service.CreateTweetInput{
		UserID: userID,
		Body:   req.Body,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tweet)
}

// GetTweet handles GET /api/tweets/:id
func (s *Server) GetTweet(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "tweet ID")
	if err != nil {
		return nil
	}

	tweet, err := s.tweetService.GetTweet(c.UserContext(), id, s.viewerID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(tweet)
}

// UpdateTweet handles PUT /api/tweets/:id
func (s *Server) UpdateTweet(c *fiber.Ctx) error {
	userID := s.currentUserID(c)
	id, err := s.parseID(c, "id", "tweet ID")
	if err != nil {
		return nil
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tweet, err := s.tweetService.UpdateTweet(c.UserContext(), service.UpdateTweetInput{
		UserID:  userID,
		TweetID: id,
		Body:    req.Body,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(tweet)
}

// DeleteTweet handles DELETE /api/tweets/:id
func (s *Server) DeleteTweet(c *fiber.Ctx) error {
	userID := s.currentUserID(c)
	id, err := s.parseID(c, "id", "tweet ID")
	if err != nil {
		return nil
	}

	if err := s.tweetService.DeleteTweet(c.UserContext(), service.DeleteTweetInput{
		UserID:  userID,
		TweetID: id,
	}); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Tweet deleted"})
}

// ToggleLike handles POST /api/tweets/:id/like. Likes toggle: the first
// call likes, the second unlikes.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	userID := s.currentUserID(c)
	id, err := s.parseID(c, "id", "tweet ID")
	if err != nil {
		return nil
	}

	liked, err := s.tweetService.ToggleLike(c.UserContext(), userID, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}

// CreateComment handles POST /api/tweets/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := s.currentUserID(c)
	id, err := s.parseID(c, "id", "tweet ID")
	if err != nil {
		return nil
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.AddComment(c.UserContext(), service.AddCommentInput{
		UserID:  userID,
		TweetID: id,
		Body:    req.Body,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments handles GET /api/tweets/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "tweet ID")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 50)

	comments, err := s.commentService.ListComments(c.UserContext(), id, p.Limit, p.Offset, s.viewerID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(comments)
}
