package model

import "time"

// User is keyed by its email identity rather than a surrogate id; the
// primary key doubles as the uniqueness guarantee for signup.
type User struct {
	ID           string    `gorm:"primaryKey;size:128" json:"id"`
	Username     string    `gorm:"size:64;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
