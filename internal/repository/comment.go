package repository

import (
	"context"

	"chirp/internal/cache"
	"chirp/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations. Comments are
// append-only; there is no edit or delete surface.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByTweet(ctx context.Context, tweetID uint, limit, offset int) ([]*models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.TweetKey(comment.TweetID))
	return nil
}

// ListByTweet returns comments oldest first, the order a conversation reads in.
func (r *commentRepository) ListByTweet(ctx context.Context, tweetID uint, limit, offset int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("tweet_id = ?", tweetID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}
