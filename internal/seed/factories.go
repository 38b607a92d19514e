package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"chirp/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	// all generated users share one hash so seeding stays fast
	passwordHash string
}

// NewFactory creates a Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	return &Factory{db: db, passwordHash: string(hash)}
}

// CreateUser persists a user together with its profile. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:  strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:     gofakeit.Email(),
		Password:  f.passwordHash,
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
	}
	for _, override := range overrides {
		override(user)
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := &models.Profile{
			UserID:       user.ID,
			Bio:          gofakeit.Sentence(10),
			HomepageLink: gofakeit.URL(),
		}
		return tx.Create(profile).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateTweet persists a tweet for the given author with a realistic
// created_at spread over the last 30 days.
func (f *Factory) CreateTweet(author *models.User, overrides ...func(*models.Tweet)) (*models.Tweet, error) {
	body := gofakeit.Sentence(gofakeit.Number(4, 20))
	for utf8.RuneCountInString(body) > models.MaxTweetBodyLen {
		body = gofakeit.Sentence(gofakeit.Number(4, 10))
	}

	tweet := &models.Tweet{
		Body:      body,
		UserID:    author.ID,
		CreatedAt: time.Now().Add(-time.Duration(rand.Intn(30*24*60)) * time.Minute),
	}
	for _, override := range overrides {
		override(tweet)
	}

	if err := f.db.Create(tweet).Error; err != nil {
		return nil, err
	}
	return tweet, nil
}

// CreateFollowMesh wires a random follow graph: each user follows roughly
// a third of the others.
func (f *Factory) CreateFollowMesh(users []*models.User) error {
	ids := make(map[uint]uint, len(users)) // user ID -> profile ID
	for _, u := range users {
		var profile models.Profile
		if err := f.db.Select("id", "user_id").Where("user_id = ?", u.ID).First(&profile).Error; err != nil {
			return err
		}
		ids[u.ID] = profile.ID
	}

	for _, follower := range users {
		for _, followee := range users {
			if follower.ID == followee.ID || rand.Intn(3) != 0 {
				continue
			}
			follow := &models.Follow{
				FollowerID: ids[follower.ID],
				FolloweeID: ids[followee.ID],
			}
			if err := f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(follow).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// CreateEngagement scatters likes and comments over the given tweets.
func (f *Factory) CreateEngagement(users []*models.User, tweets []*models.Tweet) error {
	for _, tweet := range tweets {
		for _, user := range users {
			if rand.Intn(4) != 0 {
				continue
			}
			like := &models.Like{UserID: user.ID, TweetID: tweet.ID}
			if err := f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
				return err
			}
		}

		for i := 0; i < rand.Intn(4); i++ {
			comment := &models.Comment{
				Body:      gofakeit.Sentence(gofakeit.Number(3, 15)),
				UserID:    users[rand.Intn(len(users))].ID,
				TweetID:   tweet.ID,
				CreatedAt: tweet.CreatedAt.Add(time.Duration(rand.Intn(600)) * time.Minute),
			}
			if err := f.db.Create(comment).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
