// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// SocialLinks is the fixed set of named social URIs embedded in a profile.
type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Profile is a user's public developer profile. Exactly one per user; the
// handle is a globally unique public slug.
type Profile struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	UserID         uint        `gorm:"uniqueIndex;not null" json:"user_id"`
	User           User        `gorm:"foreignKey:UserID" json:"user"`
	Handle         string      `gorm:"uniqueIndex;not null" json:"handle"`
	Company        string      `json:"company,omitempty"`
	Website        string      `json:"website,omitempty"`
	Location       string      `json:"location,omitempty"`
	Status         string      `gorm:"not null" json:"status"`
	Skills         []string    `gorm:"serializer:json" json:"skills"`
	Bio            string      `json:"bio,omitempty"`
	GithubUsername string      `json:"github_username,omitempty"`
	Social         SocialLinks `gorm:"embedded;embeddedPrefix:social_" json:"social"`
	// Experience and Education are ordered most-recent-first: a new entry is
	// prepended, which the store realizes as ORDER BY id DESC on preload.
	Experience []Experience   `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"experience"`
	Education  []Education    `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"education"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// Experience is a single work-history entry embedded in a profile.
type Experience struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProfileID   uint      `gorm:"not null;index" json:"-"`
	Title       string    `gorm:"not null" json:"title"`
	Company     string    `gorm:"not null" json:"company"`
	Location    string    `json:"location,omitempty"`
	From        string    `gorm:"not null" json:"from"`
	To          string    `json:"to,omitempty"`
	Current     bool      `json:"current"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Education is a single education entry embedded in a profile.
type Education struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ProfileID    uint      `gorm:"not null;index" json:"-"`
	School       string    `gorm:"not null" json:"school"`
	Degree       string    `gorm:"not null" json:"degree"`
	FieldOfStudy string    `gorm:"not null" json:"field_of_study"`
	From         string    `gorm:"not null" json:"from"`
	To           string    `json:"to,omitempty"`
	Current      bool      `json:"current"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
