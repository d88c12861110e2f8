package app

import (
	"errors"
	"strings"

	"github.com/Sandip75/backend-task/internal/model"
	"github.com/Sandip75/backend-task/internal/repository"
)

var ErrPostNotFound = errors.New("post not found")

const postPageSize = 20

type PostService struct {
	postRepo *repository.PostRepository
}

type CreatePostInput struct {
	AuthorID string
	Title    string
	Content  string
}

type PostPage struct {
	Total int64
	Posts []repository.PostListRow
}

func NewPostService(postRepo *repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (s *PostService) CreatePost(input CreatePostInput) (*model.Post, error) {
	title := strings.TrimSpace(input.Title)
	if input.AuthorID == "" || title == "" || input.Content == "" {
		return nil, ErrInvalidInput
	}

	post := &model.Post{
		Title:    title,
		Content:  input.Content,
		AuthorID: input.AuthorID,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts pages newest-first, twenty per page. Pages below one collapse
// to the first page.
func (s *PostService) ListPosts(page int) (*PostPage, error) {
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * postPageSize
	rows, total, err := s.postRepo.List(offset, postPageSize)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []repository.PostListRow{}
	}
	return &PostPage{Total: total, Posts: rows}, nil
}

func (s *PostService) GetPostDetail(id uint) (*repository.PostDetailRow, error) {
	if id == 0 {
		return nil, ErrPostNotFound
	}
	detail, err := s.postRepo.GetDetailByID(id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrPostNotFound
	}
	return detail, nil
}
