package server

import (
	"io"

	"chirp/internal/models"
	"chirp/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMe handles GET /api/users/me
func (s *Server) GetMe(c *fiber.Ctx) error {
	userID := s.currentUserID(c)

	profile, err := s.graphService.ProfileOf(c.UserContext(), userID, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(profile)
}

// UpdateMe handles PUT /api/users/me (account fields)
func (s *Server) UpdateMe(c *fiber.Ctx) error {
	userID := s.currentUserID(c)

	var req struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.accountService.UpdateAccount(c.UserContext(), service.UpdateAccountInput{
		UserID:    userID,
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me/profile (bio and links)
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := s.currentUserID(c)

	var req struct {
		Bio           *string `json:"bio"`
		HomepageLink  *string `json:"homepage_link"`
		FacebookLink  *string `json:"facebook_link"`
		InstagramLink *string `json:"instagram_link"`
		LinkedinLink  *string `json:"linkedin_link"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.accountService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:        userID,
		Bio:           req.Bio,
		HomepageLink:  req.HomepageLink,
		FacebookLink:  req.FacebookLink,
		InstagramLink: req.InstagramLink,
		LinkedinLink:  req.LinkedinLink,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(profile)
}

// ChangePassword handles PUT /api/users/me/password
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	userID := s.currentUserID(c)

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Current and new password are required"))
	}

	if err := s.accountService.ChangePassword(c.UserContext(), service.ChangePasswordInput{
		UserID:          userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated"})
}

// UploadAvatar handles POST /api/users/me/avatar (multipart form, field "avatar")
func (s *Server) UploadAvatar(c *fiber.Ctx) error {
	userID := s.currentUserID(c)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Avatar file is required"))
	}

	f, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(f)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	profile, err := s.avatarService.Upload(c.UserContext(), service.UploadAvatarInput{
		UserID:      userID,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(profile)
}

// GetAvatar handles GET /media/avatars/:file
func (s *Server) GetAvatar(c *fiber.Ctx) error {
	file := c.Params("file")
	// hash.webp on disk; the route param carries the extension
	const suffix = ".webp"
	if len(file) <= len(suffix) || file[len(file)-len(suffix):] != suffix {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid avatar name"))
	}

	path, err := s.avatarService.ResolvePath(file[:len(file)-len(suffix)])
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendFile(path)
}

// GetProfiles handles GET /api/profiles
func (s *Server) GetProfiles(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	profiles, err := s.graphService.Profiles(c.UserContext(), s.viewerID(c), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(profiles)
}

// GetUserProfile handles GET /api/users/:id. The literal "me" falls
// through to the authenticated /users/me route registered later.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	if c.Params("id") == "me" {
		return c.Next()
	}
	id, err := s.parseID(c, "id", "user ID")
	if err != nil {
		return nil
	}

	profile, err := s.graphService.ProfileOf(c.UserContext(), id, s.viewerID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(profile)
}

// GetUserTweets handles GET /api/users/:id/tweets
func (s *Server) GetUserTweets(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "user ID")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	tweets, err := s.tweetService.ListByUser(c.UserContext(), id, p.Limit, p.Offset, s.viewerID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(tweets)
}
