package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Sandip75/backend-task/internal/model"
)

type LoginRecordRepository struct {
	db *gorm.DB
}

// LoginHistoryRow joins a record to the user's current username, not the
// value at login time.
type LoginHistoryRow struct {
	IP        string    `json:"ip"`
	CreatedAt time.Time `json:"createdAt"`
	Username  string    `json:"username"`
}

// UserLoginCount is one aggregate row of the weekly window query.
type UserLoginCount struct {
	UserID string
	Count  int64
}

func NewLoginRecordRepository(db *gorm.DB) *LoginRecordRepository {
	return &LoginRecordRepository{db: db}
}

func (r *LoginRecordRepository) Create(record *model.LoginRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("create login record failed: %w", err)
	}
	return nil
}

func (r *LoginRecordRepository) ListRecentByUserID(userID string, limit int) ([]LoginHistoryRow, error) {
	if limit <= 0 {
		limit = 30
	}

	var rows []LoginHistoryRow
	err := r.db.Table("login_records").
		Select("login_records.ip, login_records.created_at, users.username").
		Joins("JOIN users ON users.id = login_records.user_id").
		Where("login_records.user_id = ?", userID).
		Order("login_records.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list login records failed: %w", err)
	}
	return rows, nil
}

// CountInWindow aggregates per-user login counts between start and end,
// both ends inclusive, sorted by count descending.
func (r *LoginRecordRepository) CountInWindow(start, end time.Time) ([]UserLoginCount, error) {
	var rows []UserLoginCount
	err := r.db.Model(&model.LoginRecord{}).
		Select("user_id, COUNT(*) AS count").
		Where("created_at BETWEEN ? AND ?", start, end).
		Group("user_id").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count login records failed: %w", err)
	}
	return rows, nil
}
