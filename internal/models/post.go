// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// PostDateLayout is the calendar format stamped on a post at creation (MM-DD-YYYY).
const PostDateLayout = "01-02-2006"

// Post represents a blog post owned by a single user.
type Post struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"not null" json:"title"`
	Text  string `gorm:"type:text;not null" json:"text"`
	// Date is the creation date formatted with PostDateLayout; ordering
	// uses CreatedAt, this string exists for display.
	Date      string         `gorm:"not null" json:"date"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Likes     int            `gorm:"not null;default:0" json:"likes"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Comments  []Comment      `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}
