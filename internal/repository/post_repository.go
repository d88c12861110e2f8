package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Sandip75/backend-task/internal/model"
)

type PostRepository struct {
	db *gorm.DB
}

// PostListRow carries the author's current username; it is nil when the
// author record no longer resolves.
type PostListRow struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Username  *string   `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

type PostDetailRow struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Username  *string   `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("create post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) List(offset, limit int) ([]PostListRow, int64, error) {
	var total int64
	if err := r.db.Model(&model.Post{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count posts failed: %w", err)
	}

	var rows []PostListRow
	err := r.db.Table("posts").
		Select("posts.id, posts.title, users.username, posts.created_at").
		Joins("LEFT JOIN users ON users.id = posts.author_id").
		Order("posts.created_at DESC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list posts failed: %w", err)
	}
	return rows, total, nil
}

func (r *PostRepository) GetByID(id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query post by id failed: %w", err)
	}
	return &post, nil
}

func (r *PostRepository) GetDetailByID(id uint) (*PostDetailRow, error) {
	var row PostDetailRow
	err := r.db.Table("posts").
		Select("posts.id, posts.title, posts.content, users.username, posts.created_at").
		Joins("LEFT JOIN users ON users.id = posts.author_id").
		Where("posts.id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query post detail failed: %w", err)
	}
	return &row, nil
}
