package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxTweetBodyLen is the maximum length of a tweet body in characters.
const MaxTweetBodyLen = 280

// Tweet represents a post in the Chirp application. The owning user and the
// creation timestamp are immutable after creation; only the body may change.
type Tweet struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Body      string         `gorm:"not null" json:"body"`
	UserID    uint           `gorm:"not null" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// LikesCount is not persisted; computed at query time from like membership
	LikesCount int `gorm:"->;-:migration" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->;-:migration" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this tweet (computed)
	Liked bool `gorm:"->;-:migration" json:"liked"`
}

// Like represents a user's like on a tweet.
// The combination of UserID and TweetID must be unique; membership is the
// only persisted state, counts are always derived.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_tweet" json:"user_id"`
	TweetID   uint      `gorm:"not null;uniqueIndex:idx_user_tweet" json:"tweet_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Tweet Tweet `gorm:"foreignKey:TweetID" json:"tweet,omitempty"`
}
