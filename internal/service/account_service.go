// Package service contains the application's business logic layer.
package service

import (
	"context"
	"net/url"
	"strings"

	"chirp/internal/models"
	"chirp/internal/repository"
	"chirp/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

const maxBioLen = 500

// AccountService handles registration, authentication and account updates.
type AccountService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type UpdateAccountInput struct {
	UserID    uint
	Username  string
	Email     string
	FirstName string
	LastName  string
}

type UpdateProfileInput struct {
	UserID        uint
	Bio           *string
	HomepageLink  *string
	FacebookLink  *string
	InstagramLink *string
	LinkedinLink  *string
}

type ChangePasswordInput struct {
	UserID          uint
	CurrentPassword string
	NewPassword     string
}

func NewAccountService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository) *AccountService {
	return &AccountService{userRepo: userRepo, profileRepo: profileRepo}
}

// Register creates a user and its empty profile in one transaction and
// returns the new user ready for an immediate session.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Username already taken")
	}
	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:  in.Username,
		Email:     strings.ToLower(in.Email),
		Password:  string(hashed),
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	if err := s.userRepo.CreateWithProfile(ctx, user, &models.Profile{}); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials against the stored bcrypt hash. The
// login may be a username or an email address.
func (s *AccountService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	var user *models.User
	var err error
	if strings.Contains(login, "@") {
		user, err = s.userRepo.GetByEmail(ctx, strings.ToLower(login))
	} else {
		user, err = s.userRepo.GetByUsername(ctx, login)
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Run a dummy compare so missing users cost the same as bad passwords.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"), []byte(password))
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

func (s *AccountService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateAccount changes the user's own account fields. Empty fields are
// left untouched.
func (s *AccountService) UpdateAccount(ctx context.Context, in UpdateAccountInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != "" && in.Username != user.Username {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, models.NewValidationError("Username already taken")
		}
		user.Username = in.Username
	}
	if in.Email != "" && !strings.EqualFold(in.Email, user.Email) {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if existing, err := s.userRepo.GetByEmail(ctx, strings.ToLower(in.Email)); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, models.NewValidationError("Email already registered")
		}
		user.Email = strings.ToLower(in.Email)
	}
	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes the user's own profile fields. Nil fields are left
// untouched; empty strings clear the field.
func (s *AccountService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.Profile, error) {
	profileID, err := s.profileRepo.IDForUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.GetByID(ctx, profileID, 0)
	if err != nil {
		return nil, err
	}

	if in.Bio != nil {
		if len(*in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		profile.Bio = *in.Bio
	}
	links := []struct {
		value *string
		dst   *string
		name  string
	}{
		{in.HomepageLink, &profile.HomepageLink, "homepage_link"},
		{in.FacebookLink, &profile.FacebookLink, "facebook_link"},
		{in.InstagramLink, &profile.InstagramLink, "instagram_link"},
		{in.LinkedinLink, &profile.LinkedinLink, "linkedin_link"},
	}
	for _, l := range links {
		if l.value == nil {
			continue
		}
		if *l.value != "" && !isValidHTTPURL(*l.value) {
			return nil, models.NewValidationError("Invalid URL for " + l.name)
		}
		*l.dst = *l.value
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ChangePassword verifies the current password before setting a new hash.
// Issued tokens stay valid; sessions are stateless.
func (s *AccountService) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)); err != nil {
		return models.NewUnauthorizedError("Current password is incorrect")
	}
	if err := validation.ValidatePassword(in.NewPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.Password = string(hashed)
	return s.userRepo.Update(ctx, user)
}

func isValidHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
