// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a feed post. Name and Avatar are snapshots of the author's values
// at creation time and never change afterwards.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Name      string         `json:"name"`
	Avatar    string         `json:"avatar"`
	Text      string         `gorm:"type:text;not null" json:"text"`
	Likes     []Like         `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"likes"`
	Comments  []Comment      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Like marks a user's like on a post. A user appears at most once per post.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_user" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_user" json:"user"`
	CreatedAt time.Time `json:"-"`
}

// Comment is a comment on a post. Name and Avatar are author snapshots,
// taken when the comment is created.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"-"`
	UserID    uint      `gorm:"not null" json:"user"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
