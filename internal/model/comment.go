package model

import "time"

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"postId"`
	AuthorID  string    `gorm:"size:128;not null;index" json:"authorId"`
	Content   string    `gorm:"size:500;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
