package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is authored by exactly one user and carries optional media references.
type Post struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Photo     string    `json:"photo,omitempty"`
	Video     string    `json:"video,omitempty"`
	AuthorID  string    `gorm:"index;size:36;not null" json:"postedBy"`
	Likes     []*User   `gorm:"many2many:post_likes;joinForeignKey:PostID;joinReferences:UserID" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName overrides the table name used by GORM
func (Post) TableName() string {
	return "posts"
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PostLike records one like; the composite key doubles as the
// idempotency guard against liking a post twice.
type PostLike struct {
	PostID    string    `gorm:"primaryKey;size:36;column:post_id"`
	UserID    string    `gorm:"primaryKey;size:36;column:user_id"`
	CreatedAt time.Time
}

// TableName overrides the table name used by GORM
func (PostLike) TableName() string {
	return "post_likes"
}
