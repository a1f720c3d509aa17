package model

import "time"

// Comment is a user comment attached to a post.
type Comment struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	PostID  uint   `json:"post_id" gorm:"not null;index"`
	UserID  uint   `json:"user_id" gorm:"not null;index"`
	Content string `json:"content" gorm:"type:text;not null"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
