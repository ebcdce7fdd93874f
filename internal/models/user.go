// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered account on the platform.
type User struct {
	ID        string       `gorm:"primaryKey;size:36" json:"id"`
	Email     string       `gorm:"unique;not null" json:"email"`
	Name      string       `json:"name"`
	Password  string       `gorm:"not null" json:"-"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Profile   *UserProfile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID when the store has not been given one.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserProfile carries display data for a user. At most one profile
// exists per user; plans reference it only through enrichment.
type UserProfile struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	UserID            string    `gorm:"uniqueIndex;not null;size:36" json:"user_id"`
	FullName          string    `json:"full_name"`
	ProfilePictureURL string    `json:"profile_picture_url"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (UserProfile) TableName() string {
	return "user_profiles"
}

// BeforeCreate assigns a UUID when the store has not been given one.
func (p *UserProfile) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
