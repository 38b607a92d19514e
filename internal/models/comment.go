package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a reply to a tweet.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Body      string         `gorm:"not null" json:"body"`
	UserID    uint           `gorm:"not null" json:"user_id"`
	TweetID   uint           `gorm:"not null" json:"tweet_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	Tweet     Tweet          `gorm:"foreignKey:TweetID" json:"tweet,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
