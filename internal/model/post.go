package model

import "time"

// Status is the closed set of post publication states.
type Status string

const (
	// StatusDraft hides a post from non-admin readers.
	StatusDraft Status = "draft"
	// StatusPublished makes a post publicly visible.
	StatusPublished Status = "published"
)

// Valid reports whether the status is one of the known states.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// DefaultPostImage is used when a post is created without an image.
const DefaultPostImage = "/uploads/default-post.jpg"

// Post is a blog article. Content is stored as HTML.
type Post struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Title      string `json:"title" gorm:"size:255;not null"`
	Slug       string `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Content    string `json:"content" gorm:"type:text;not null"`
	CategoryID uint   `json:"category_id" gorm:"not null;index"`
	AuthorID   uint   `json:"author_id" gorm:"not null;index"`
	Image      string `json:"image" gorm:"size:512;default:'/uploads/default-post.jpg'"`
	Status     Status `json:"status" gorm:"size:20;default:'draft';index"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Author   *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
