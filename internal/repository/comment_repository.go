package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Sandip75/backend-task/internal/model"
)

type CommentRepository struct {
	db *gorm.DB
}

type CommentListRow struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("create comment failed: %w", err)
	}
	return nil
}

func (r *CommentRepository) GetByID(id uint) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query comment by id failed: %w", err)
	}
	return &comment, nil
}

// ListByPostID pages newest-first. A non-nil cursor positions strictly
// after that comment in (created_at, id) descending order, so callers get
// the rows following the cursor row without re-reading it. Callers pass
// limit+1 to probe for a further page.
func (r *CommentRepository) ListByPostID(postID uint, after *model.Comment, limit int) ([]CommentListRow, error) {
	query := r.db.Table("comments").
		Select("comments.id, comments.content, users.username, comments.created_at").
		Joins("JOIN users ON users.id = comments.author_id").
		Where("comments.post_id = ?", postID)

	if after != nil {
		query = query.Where(
			"comments.created_at < ? OR (comments.created_at = ? AND comments.id < ?)",
			after.CreatedAt, after.CreatedAt, after.ID,
		)
	}

	var rows []CommentListRow
	err := query.
		Order("comments.created_at DESC, comments.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	return rows, nil
}

func (r *CommentRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Comment{}, id).Error; err != nil {
		return fmt.Errorf("delete comment failed: %w", err)
	}
	return nil
}
