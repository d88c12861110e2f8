package app

import (
	"errors"
	"unicode/utf8"

	"github.com/Sandip75/backend-task/internal/model"
	"github.com/Sandip75/backend-task/internal/repository"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrCommentTooLong  = errors.New("comment content must be 1-500 characters")
	ErrForbidden       = errors.New("you cannot delete this comment")
)

const commentPageSize = 10

type CommentService struct {
	commentRepo *repository.CommentRepository
	postRepo    *repository.PostRepository
}

type CreateCommentInput struct {
	AuthorID string
	PostID   uint
	Content  string
}

type CommentPage struct {
	Comments   []repository.CommentListRow `json:"comments"`
	NextCursor *uint                       `json:"nextCursor"`
}

func NewCommentService(commentRepo *repository.CommentRepository, postRepo *repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func (s *CommentService) CreateComment(input CreateCommentInput) (*model.Comment, error) {
	if input.AuthorID == "" || input.PostID == 0 {
		return nil, ErrInvalidInput
	}
	if n := utf8.RuneCountInString(input.Content); n < 1 || n > 500 {
		return nil, ErrCommentTooLong
	}

	post, err := s.postRepo.GetByID(input.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comment := &model.Comment{
		PostID:   input.PostID,
		AuthorID: input.AuthorID,
		Content:  input.Content,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments pages ten at a time, newest-first. The cursor is the id of
// the last comment of the previous page; results resume strictly after it.
// One extra row is fetched to decide whether a further page exists.
func (s *CommentService) ListComments(postID uint, cursor *uint) (*CommentPage, error) {
	if postID == 0 {
		return nil, ErrInvalidInput
	}

	var after *model.Comment
	if cursor != nil {
		row, err := s.commentRepo.GetByID(*cursor)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, ErrCommentNotFound
		}
		after = row
	}

	rows, err := s.commentRepo.ListByPostID(postID, after, commentPageSize+1)
	if err != nil {
		return nil, err
	}

	var nextCursor *uint
	if len(rows) > commentPageSize {
		rows = rows[:commentPageSize]
		last := rows[len(rows)-1].ID
		nextCursor = &last
	}
	if rows == nil {
		rows = []repository.CommentListRow{}
	}
	return &CommentPage{Comments: rows, NextCursor: nextCursor}, nil
}

// DeleteComment removes a comment for its author or for the author of the
// parent post; anyone else is refused.
func (s *CommentService) DeleteComment(commentID uint, requesterID string) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}

	if comment.AuthorID != requesterID {
		post, err := s.postRepo.GetByID(comment.PostID)
		if err != nil {
			return err
		}
		if post == nil || post.AuthorID != requesterID {
			return ErrForbidden
		}
	}

	return s.commentRepo.Delete(comment.ID)
}
