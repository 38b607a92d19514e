package repository

import (
	"testing"

	"chirp/internal/database"
	"chirp/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database per test so tests stay
// independent and parallel-safe.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedUser inserts a user and its profile, returning both.
func seedUser(t *testing.T, db *gorm.DB, username string) (*models.User, *models.Profile) {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	profile := &models.Profile{UserID: user.ID}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("seed profile for %s: %v", username, err)
	}
	return user, profile
}

func seedTweet(t *testing.T, db *gorm.DB, userID uint, body string) *models.Tweet {
	t.Helper()
	tweet := &models.Tweet{UserID: userID, Body: body}
	if err := db.Create(tweet).Error; err != nil {
		t.Fatalf("seed tweet: %v", err)
	}
	return tweet
}
