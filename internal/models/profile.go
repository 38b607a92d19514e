package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile extends a User with public-facing fields. Every user owns exactly
// one profile, created at registration.
type Profile struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Bio           string         `json:"bio"`
	HomepageLink  string         `json:"homepage_link"`
	FacebookLink  string         `json:"facebook_link"`
	InstagramLink string         `json:"instagram_link"`
	LinkedinLink  string         `json:"linkedin_link"`
	Avatar        string         `json:"avatar"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	// FollowersCount and FollowingCount are not persisted; computed at query time.
	FollowersCount int `gorm:"->;-:migration" json:"followers_count"`
	FollowingCount int `gorm:"->;-:migration" json:"following_count"`
	// Following indicates whether the current requesting user follows this profile (computed)
	Following bool `gorm:"->;-:migration" json:"following"`
}

// Follow is a directed edge in the social graph: follower → followee.
// The relation is asymmetric; the combination of FollowerID and FolloweeID
// must be unique so repeated follows are no-ops.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follower_followee" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follower_followee" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Follower Profile `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followee Profile `gorm:"foreignKey:FolloweeID" json:"followee,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
