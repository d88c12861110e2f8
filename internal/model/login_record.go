package model

import "time"

// LoginRecord is append-only audit data; rows are never updated or deleted.
type LoginRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:128;not null;index" json:"userId"`
	IP        string    `gorm:"size:64;not null" json:"ip"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}
