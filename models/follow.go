package models

import "time"

// Follow is one directed edge of the social graph. A single row backs both
// the follower's "following" set and the followee's "followers" set, so the
// two sides can never drift apart.
type Follow struct {
	FollowerID string    `gorm:"primaryKey;size:36;column:follower_id"`
	FolloweeID string    `gorm:"primaryKey;size:36;column:followee_id"`
	CreatedAt  time.Time
}

// TableName overrides the table name used by GORM
func (Follow) TableName() string {
	return "follows"
}
