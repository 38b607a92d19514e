package service

import (
	"context"

	"chirp/internal/models"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn           func(context.Context, uint) (*models.User, error)
	getByEmailFn        func(context.Context, string) (*models.User, error)
	getByUsernameFn     func(context.Context, string) (*models.User, error)
	createFn            func(context.Context, *models.User) error
	createWithProfileFn func(context.Context, *models.User, *models.Profile) error
	updateFn            func(context.Context, *models.User) error
	deleteFn            func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) CreateWithProfile(ctx context.Context, user *models.User, profile *models.Profile) error {
	return s.createWithProfileFn(ctx, user, profile)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:           func(_ context.Context, _ uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:        func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn:     func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:            func(_ context.Context, _ *models.User) error { return nil },
		createWithProfileFn: func(_ context.Context, _ *models.User, _ *models.Profile) error { return nil },
		updateFn:            func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:            func(_ context.Context, _ uint) error { return nil },
	}
}

// profileRepoStub is a stub for repository.ProfileRepository.
type profileRepoStub struct {
	getByUserIDFn  func(context.Context, uint, uint) (*models.Profile, error)
	getByIDFn      func(context.Context, uint, uint) (*models.Profile, error)
	idForUserFn    func(context.Context, uint) (uint, error)
	updateFn       func(context.Context, *models.Profile) error
	listFn         func(context.Context, int, int, uint) ([]*models.Profile, error)
	createFollowFn func(context.Context, uint, uint) error
	deleteFollowFn func(context.Context, uint, uint) error
	isFollowingFn  func(context.Context, uint, uint) (bool, error)
	followersFn    func(context.Context, uint, int, int) ([]*models.Profile, error)
	followingFn    func(context.Context, uint, int, int) ([]*models.Profile, error)
	suggestionsFn  func(context.Context, uint, int) ([]*models.Profile, error)
}

func (s *profileRepoStub) GetByUserID(ctx context.Context, userID, viewerProfileID uint) (*models.Profile, error) {
	return s.getByUserIDFn(ctx, userID, viewerProfileID)
}
func (s *profileRepoStub) GetByID(ctx context.Context, id, viewerProfileID uint) (*models.Profile, error) {
	return s.getByIDFn(ctx, id, viewerProfileID)
}
func (s *profileRepoStub) IDForUser(ctx context.Context, userID uint) (uint, error) {
	return s.idForUserFn(ctx, userID)
}
func (s *profileRepoStub) Update(ctx context.Context, profile *models.Profile) error {
	return s.updateFn(ctx, profile)
}
func (s *profileRepoStub) List(ctx context.Context, limit, offset int, viewerProfileID uint) ([]*models.Profile, error) {
	return s.listFn(ctx, limit, offset, viewerProfileID)
}
func (s *profileRepoStub) CreateFollow(ctx context.Context, followerID, followeeID uint) error {
	return s.createFollowFn(ctx, followerID, followeeID)
}
func (s *profileRepoStub) DeleteFollow(ctx context.Context, followerID, followeeID uint) error {
	return s.deleteFollowFn(ctx, followerID, followeeID)
}
func (s *profileRepoStub) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followeeID)
}
func (s *profileRepoStub) Followers(ctx context.Context, profileID uint, limit, offset int) ([]*models.Profile, error) {
	return s.followersFn(ctx, profileID, limit, offset)
}
func (s *profileRepoStub) Following(ctx context.Context, profileID uint, limit, offset int) ([]*models.Profile, error) {
	return s.followingFn(ctx, profileID, limit, offset)
}
func (s *profileRepoStub) Suggestions(ctx context.Context, profileID uint, limit int) ([]*models.Profile, error) {
	return s.suggestionsFn(ctx, profileID, limit)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getByUserIDFn: func(_ context.Context, _, _ uint) (*models.Profile, error) { return &models.Profile{}, nil },
		getByIDFn:     func(_ context.Context, _, _ uint) (*models.Profile, error) { return &models.Profile{}, nil },
		idForUserFn:   func(_ context.Context, userID uint) (uint, error) { return userID + 100, nil },
		updateFn:      func(_ context.Context, _ *models.Profile) error { return nil },
		listFn: func(_ context.Context, _, _ int, _ uint) ([]*models.Profile, error) {
			return nil, nil
		},
		createFollowFn: func(_ context.Context, _, _ uint) error { return nil },
		deleteFollowFn: func(_ context.Context, _, _ uint) error { return nil },
		isFollowingFn:  func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		followersFn:    func(_ context.Context, _ uint, _, _ int) ([]*models.Profile, error) { return nil, nil },
		followingFn:    func(_ context.Context, _ uint, _, _ int) ([]*models.Profile, error) { return nil, nil },
		suggestionsFn:  func(_ context.Context, _ uint, _ int) ([]*models.Profile, error) { return nil, nil },
	}
}

// tweetRepoStub is a stub for repository.TweetRepository.
type tweetRepoStub struct {
	createFn         func(context.Context, *models.Tweet) error
	getByIDFn        func(context.Context, uint, uint) (*models.Tweet, error)
	getByUserIDFn    func(context.Context, uint, int, int, uint) ([]*models.Tweet, error)
	feedFn           func(context.Context, uint, uint, int, int) ([]*models.Tweet, error)
	publicTimelineFn func(context.Context, int, int, uint) ([]*models.Tweet, error)
	updateFn         func(context.Context, *models.Tweet) error
	deleteFn         func(context.Context, uint) error
	isLikedFn        func(context.Context, uint, uint) (bool, error)
	likeFn           func(context.Context, uint, uint) error
	unlikeFn         func(context.Context, uint, uint) error
}

func (s *tweetRepoStub) Create(ctx context.Context, tweet *models.Tweet) error {
	return s.createFn(ctx, tweet)
}
func (s *tweetRepoStub) GetByID(ctx context.Context, id, viewerUserID uint) (*models.Tweet, error) {
	return s.getByIDFn(ctx, id, viewerUserID)
}
func (s *tweetRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, viewerUserID uint) ([]*models.Tweet, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, viewerUserID)
}
func (s *tweetRepoStub) Feed(ctx context.Context, viewerUserID, viewerProfileID uint, limit, offset int) ([]*models.Tweet, error) {
	return s.feedFn(ctx, viewerUserID, viewerProfileID, limit, offset)
}
func (s *tweetRepoStub) PublicTimeline(ctx context.Context, limit, offset int, viewerUserID uint) ([]*models.Tweet, error) {
	return s.publicTimelineFn(ctx, limit, offset, viewerUserID)
}
func (s *tweetRepoStub) Update(ctx context.Context, tweet *models.Tweet) error {
	return s.updateFn(ctx, tweet)
}
func (s *tweetRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *tweetRepoStub) IsLiked(ctx context.Context, userID, tweetID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, tweetID)
}
func (s *tweetRepoStub) Like(ctx context.Context, userID, tweetID uint) error {
	return s.likeFn(ctx, userID, tweetID)
}
func (s *tweetRepoStub) Unlike(ctx context.Context, userID, tweetID uint) error {
	return s.unlikeFn(ctx, userID, tweetID)
}

func noopTweetRepo() *tweetRepoStub {
	return &tweetRepoStub{
		createFn:  func(_ context.Context, _ *models.Tweet) error { return nil },
		getByIDFn: func(_ context.Context, _, _ uint) (*models.Tweet, error) { return &models.Tweet{}, nil },
		getByUserIDFn: func(_ context.Context, _ uint, _, _ int, _ uint) ([]*models.Tweet, error) {
			return nil, nil
		},
		feedFn: func(_ context.Context, _, _ uint, _, _ int) ([]*models.Tweet, error) {
			return nil, nil
		},
		publicTimelineFn: func(_ context.Context, _, _ int, _ uint) ([]*models.Tweet, error) {
			return nil, nil
		},
		updateFn:  func(_ context.Context, _ *models.Tweet) error { return nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
		isLikedFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:    func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:  func(_ context.Context, _, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	listByTweetFn func(context.Context, uint, int, int) ([]*models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) ListByTweet(ctx context.Context, tweetID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listByTweetFn(ctx, tweetID, limit, offset)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:      func(_ context.Context, _ *models.Comment) error { return nil },
		listByTweetFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, error) { return nil, nil },
	}
}
