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

// TweetRepository defines the interface for tweet data operations
type TweetRepository interface {
	Create(ctx context.Context, tweet *models.Tweet) error
	GetByID(ctx context.Context, id uint, viewerUserID uint) (*models.Tweet, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int, viewerUserID uint) ([]*models.Tweet, error)
	Feed(ctx context.Context, viewerUserID, viewerProfileID uint, limit, offset int) ([]*models.Tweet, error)
	PublicTimeline(ctx context.Context, limit, offset int, viewerUserID uint) ([]*models.Tweet, error)
	Update(ctx context.Context, tweet *models.Tweet) error
	Delete(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, userID, tweetID uint) (bool, error)
	Like(ctx context.Context, userID, tweetID uint) error
	Unlike(ctx context.Context, userID, tweetID uint) error
}

// tweetRepository implements TweetRepository
type tweetRepository struct {
	db      *gorm.DB
	repoLog *observability.RepoLogger
}

// NewTweetRepository creates a new tweet repository
func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db, repoLog: observability.NewRepoLogger("tweets")}
}

// applyTweetDetails adds subqueries to fetch counts and liked status in a single query.
func (r *tweetRepository) applyTweetDetails(db *gorm.DB, viewerUserID uint) *gorm.DB {
	selectQuery := "tweets.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.tweet_id = tweets.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.tweet_id = tweets.id) as likes_count"

	if viewerUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.tweet_id = tweets.id AND likes.user_id = ?) as liked", viewerUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	if err := r.db.WithContext(ctx).Create(tweet).Error; err != nil {
		r.repoLog.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.repoLog.LogMutation(ctx, "create", map[string]interface{}{
		"tweet_id": tweet.ID,
		"user_id":  tweet.UserID,
	})
	cache.Invalidate(ctx, cache.TimelineKey)
	return nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id uint, viewerUserID uint) (*models.Tweet, error) {
	var tweet models.Tweet

	fetch := func() error {
		return r.applyTweetDetails(r.db.WithContext(ctx), viewerUserID).
			Preload("User").
			First(&tweet, id).Error
	}

	var err error
	if viewerUserID == 0 {
		err = cache.Aside(ctx, cache.TweetKey(id), &tweet, cache.TweetTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Tweet", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &tweet, nil
}

func (r *tweetRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, viewerUserID uint) ([]*models.Tweet, error) {
	var tweets []*models.Tweet
	err := r.applyTweetDetails(r.db.WithContext(ctx), viewerUserID).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&tweets).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tweets, nil
}

// Feed returns tweets authored by users the viewer follows plus the
// viewer's own, newest first. Edges live on profile IDs, so the inner
// join resolves followee profiles back to their owning users.
func (r *tweetRepository) Feed(ctx context.Context, viewerUserID, viewerProfileID uint, limit, offset int) ([]*models.Tweet, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "Feed", "tweets")
	defer span.End()

	var tweets []*models.Tweet
	err := r.applyTweetDetails(r.db.WithContext(ctx), viewerUserID).
		Preload("User").
		Where(
			"user_id IN (SELECT p.user_id FROM profiles p JOIN follows f ON f.followee_id = p.id WHERE f.follower_id = ?) OR user_id = ?",
			viewerProfileID, viewerUserID,
		).
		Order("created_at DESC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&tweets).Error
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return nil, models.NewInternalError(err)
	}
	return tweets, nil
}

func (r *tweetRepository) PublicTimeline(ctx context.Context, limit, offset int, viewerUserID uint) ([]*models.Tweet, error) {
	var tweets []*models.Tweet

	fetch := func() error {
		return r.applyTweetDetails(r.db.WithContext(ctx), viewerUserID).
			Preload("User").
			Order("created_at DESC, id ASC").
			Limit(limit).
			Offset(offset).
			Find(&tweets).Error
	}

	// Only the anonymous default-size first page is cache-friendly;
	// everything else is viewer-specific, deep pagination, or a page size
	// the shared key cannot represent.
	if viewerUserID == 0 && offset == 0 && limit == cache.TimelinePageLimit {
		if err := cache.Aside(ctx, cache.TimelineKey, &tweets, cache.TimelineTTL, fetch); err != nil {
			return nil, models.NewInternalError(err)
		}
		return tweets, nil
	}

	if err := fetch(); err != nil {
		return nil, models.NewInternalError(err)
	}
	return tweets, nil
}

func (r *tweetRepository) Update(ctx context.Context, tweet *models.Tweet) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(tweet).Error; err != nil {
		r.repoLog.LogError(ctx, err, "update")
		return models.NewInternalError(err)
	}
	r.repoLog.LogMutation(ctx, "update", map[string]interface{}{"tweet_id": tweet.ID})
	cache.Invalidate(ctx, cache.TweetKey(tweet.ID), cache.TimelineKey)
	return nil
}

func (r *tweetRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Tweet{}, id).Error; err != nil {
		r.repoLog.LogError(ctx, err, "delete")
		return models.NewInternalError(err)
	}
	r.repoLog.LogMutation(ctx, "delete", map[string]interface{}{"tweet_id": id})
	cache.Invalidate(ctx, cache.TweetKey(id), cache.TimelineKey)
	return nil
}

func (r *tweetRepository) IsLiked(ctx context.Context, userID, tweetID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *tweetRepository) Like(ctx context.Context, userID, tweetID uint) error {
	like := models.Like{UserID: userID, TweetID: tweetID}
	// ON CONFLICT DO NOTHING is atomic and prevents duplicate key errors under races.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.TweetKey(tweetID))
	return nil
}

func (r *tweetRepository) Unlike(ctx context.Context, userID, tweetID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Delete(&models.Like{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.TweetKey(tweetID))
	return nil
}
