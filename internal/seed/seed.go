// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development only.
package seed

import (
	"log"
	"math/rand"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// Options controls how much data the seeder generates.
type Options struct {
	NumUsers    int
	NumTweets   int
	ShouldClean bool
}

// Seed populates the database with users, a follow mesh, tweets, likes
// and comments. All generated users share the password "password123".
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("seeding %d users and %d tweets", opts.NumUsers, opts.NumTweets)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return err
		}
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)
	}
	log.Printf("created %d users", len(users))

	if err := f.CreateFollowMesh(users); err != nil {
		return err
	}

	tweets := make([]*models.Tweet, 0, opts.NumTweets)
	for i := 0; i < opts.NumTweets; i++ {
		author := users[rand.Intn(len(users))]
		tweet, err := f.CreateTweet(author)
		if err != nil {
			return err
		}
		tweets = append(tweets, tweet)
	}
	log.Printf("created %d tweets", len(tweets))

	if err := f.CreateEngagement(users, tweets); err != nil {
		return err
	}

	log.Println("seeding complete")
	return nil
}

// clearData truncates all seeded tables. Order matters because of
// foreign keys.
func clearData(db *gorm.DB) error {
	tables := []any{
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.Tweet{},
		&models.Profile{},
		&models.User{},
	}
	for _, table := range tables {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}
