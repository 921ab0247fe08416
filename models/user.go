package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultAvatar is assigned to users that register without a photo.
const DefaultAvatar = "https://i.ibb.co/4pDNDk1/avatar.png"

// User represents a registered identity. Password always holds the bcrypt
// hash, never plaintext; it is excluded from every JSON projection.
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Username  string    `gorm:"uniqueIndex;size:255;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Photo     string    `json:"photo"`
	Followers []*User   `gorm:"many2many:follows;joinForeignKey:FolloweeID;joinReferences:FollowerID" json:"-"`
	Following []*User   `gorm:"many2many:follows;joinForeignKey:FollowerID;joinReferences:FolloweeID" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName overrides the table name used by GORM
func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Photo == "" {
		u.Photo = DefaultAvatar
	}
	return nil
}
