package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"chirp/internal/models"
	"chirp/internal/repository"
)

const maxCommentLen = 1000

// CommentService handles replies under tweets. Comments are append-only.
type CommentService struct {
	commentRepo repository.CommentRepository
	tweetRepo   repository.TweetRepository
}

type AddCommentInput struct {
	UserID  uint
	TweetID uint
	Body    string
}

func NewCommentService(commentRepo repository.CommentRepository, tweetRepo repository.TweetRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, tweetRepo: tweetRepo}
}

func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(in.Body) == "" {
		return nil, models.NewValidationError("Comment body is required")
	}
	if utf8.RuneCountInString(in.Body) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 1000 characters)")
	}

	// Commenting on a missing or deleted tweet is a 404, not an FK error.
	if _, err := s.tweetRepo.GetByID(ctx, in.TweetID, in.UserID); err != nil {
		return nil, err
	}

	comment := &models.Comment{UserID: in.UserID, TweetID: in.TweetID, Body: in.Body}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListComments(ctx context.Context, tweetID uint, limit, offset int, viewerUserID uint) ([]*models.Comment, error) {
	if _, err := s.tweetRepo.GetByID(ctx, tweetID, viewerUserID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByTweet(ctx, tweetID, limit, offset)
}
