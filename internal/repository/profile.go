package repository

import (
	"context"
	"errors"

	"chirp/internal/cache"
	"chirp/internal/models"
	"chirp/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository defines persistence operations for profiles and the
// follow graph. Follow edges are keyed by profile IDs, not user IDs.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint, viewerProfileID uint) (*models.Profile, error)
	GetByID(ctx context.Context, id uint, viewerProfileID uint) (*models.Profile, error)
	IDForUser(ctx context.Context, userID uint) (uint, error)
	Update(ctx context.Context, profile *models.Profile) error
	List(ctx context.Context, limit, offset int, viewerProfileID uint) ([]*models.Profile, error)

	CreateFollow(ctx context.Context, followerID, followeeID uint) error
	DeleteFollow(ctx context.Context, followerID, followeeID uint) error
	IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error)
	Followers(ctx context.Context, profileID uint, limit, offset int) ([]*models.Profile, error)
	Following(ctx context.Context, profileID uint, limit, offset int) ([]*models.Profile, error)
	Suggestions(ctx context.Context, profileID uint, limit int) ([]*models.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// applyProfileDetails adds subqueries to fetch follower counts and the
// viewer's follow status in a single query.
func (r *profileRepository) applyProfileDetails(db *gorm.DB, viewerProfileID uint) *gorm.DB {
	selectQuery := "profiles.*, " +
		"(SELECT COUNT(*) FROM follows WHERE follows.followee_id = profiles.id) as followers_count, " +
		"(SELECT COUNT(*) FROM follows WHERE follows.follower_id = profiles.id) as following_count"

	if viewerProfileID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM follows WHERE follows.follower_id = ? AND follows.followee_id = profiles.id) as following", viewerProfileID)
	}

	return db.Select(selectQuery + ", false as following")
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint, viewerProfileID uint) (*models.Profile, error) {
	var profile models.Profile

	fetch := func() error {
		return r.applyProfileDetails(r.db.WithContext(ctx), viewerProfileID).
			Preload("User").
			Where("user_id = ?", userID).
			First(&profile).Error
	}

	var err error
	if viewerProfileID == 0 {
		err = cache.Aside(ctx, cache.ProfileKey(userID), &profile, cache.ProfileTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Profile", userID)
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) GetByID(ctx context.Context, id uint, viewerProfileID uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.applyProfileDetails(r.db.WithContext(ctx), viewerProfileID).
		Preload("User").
		First(&profile, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Profile", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) IDForUser(ctx context.Context, userID uint) (uint, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).
		Select("id", "user_id").
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, models.NewNotFoundError("Profile", userID)
		}
		return 0, models.NewInternalError(err)
	}
	return profile.ID, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(profile).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.ProfileKey(profile.UserID))
	return nil
}

func (r *profileRepository) List(ctx context.Context, limit, offset int, viewerProfileID uint) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := r.applyProfileDetails(r.db.WithContext(ctx), viewerProfileID).
		Preload("User").
		Order("profiles.id ASC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

func (r *profileRepository) CreateFollow(ctx context.Context, followerID, followeeID uint) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "CreateFollow", "follows")
	defer span.End()
	defer observability.TrackQuery("insert", "follows")()

	follow := models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	// ON CONFLICT DO NOTHING keeps repeat follows idempotent under races.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&follow).Error
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return models.NewInternalError(err)
	}
	observability.FollowMutations.WithLabelValues("follow").Inc()
	r.invalidateProfilePair(ctx, followerID, followeeID)
	return nil
}

func (r *profileRepository) DeleteFollow(ctx context.Context, followerID, followeeID uint) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "DeleteFollow", "follows")
	defer span.End()
	defer observability.TrackQuery("delete", "follows")()

	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return models.NewInternalError(err)
	}
	observability.FollowMutations.WithLabelValues("unfollow").Inc()
	r.invalidateProfilePair(ctx, followerID, followeeID)
	return nil
}

// invalidateProfilePair drops cached profiles whose follower counts the
// mutation changed. Best-effort.
func (r *profileRepository) invalidateProfilePair(ctx context.Context, followerID, followeeID uint) {
	var userIDs []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id IN ?", []uint{followerID, followeeID}).
		Pluck("user_id", &userIDs).Error; err != nil {
		return
	}
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, cache.ProfileKey(id))
	}
	cache.Invalidate(ctx, keys...)
}

func (r *profileRepository) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *profileRepository) Followers(ctx context.Context, profileID uint, limit, offset int) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := r.applyProfileDetails(r.db.WithContext(ctx), profileID).
		Preload("User").
		Joins("JOIN follows ON follows.follower_id = profiles.id").
		Where("follows.followee_id = ?", profileID).
		Order("follows.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

func (r *profileRepository) Following(ctx context.Context, profileID uint, limit, offset int) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := r.applyProfileDetails(r.db.WithContext(ctx), profileID).
		Preload("User").
		Joins("JOIN follows ON follows.followee_id = profiles.id").
		Where("follows.follower_id = ?", profileID).
		Order("follows.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

// Suggestions returns profiles the given profile does not follow yet,
// excluding itself, in stable ID order.
func (r *profileRepository) Suggestions(ctx context.Context, profileID uint, limit int) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := r.applyProfileDetails(r.db.WithContext(ctx), profileID).
		Preload("User").
		Where("profiles.id <> ?", profileID).
		Where("profiles.id NOT IN (SELECT followee_id FROM follows WHERE follower_id = ?)", profileID).
		Order("profiles.id ASC").
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}
