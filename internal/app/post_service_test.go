package app

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Sandip75/backend-task/internal/model"
	"github.com/Sandip75/backend-task/internal/repository"
)

func newPostService(db *gorm.DB) *PostService {
	return NewPostService(repository.NewPostRepository(db))
}

func TestCreatePost(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)
	seedUser(t, db, "a@x.com", "홍길동")

	post, err := svc.CreatePost(CreatePostInput{
		AuthorID: "a@x.com",
		Title:    "Test Title",
		Content:  "Test Content",
	})
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Equal(t, "a@x.com", post.AuthorID)
	assert.False(t, post.CreatedAt.IsZero())

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := svc.CreatePost(CreatePostInput{AuthorID: "a@x.com", Title: "  ", Content: "x"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestListPosts(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)
	seedUser(t, db, "a@x.com", "홍길동")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		require.NoError(t, db.Create(&model.Post{
			Title:     fmt.Sprintf("post %02d", i),
			Content:   "content",
			AuthorID:  "a@x.com",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	t.Run("first page is twenty rows, newest first", func(t *testing.T) {
		page, err := svc.ListPosts(1)
		require.NoError(t, err)
		assert.Equal(t, int64(25), page.Total)
		require.Len(t, page.Posts, 20)
		assert.Equal(t, "post 24", page.Posts[0].Title)
		require.NotNil(t, page.Posts[0].Username)
		assert.Equal(t, "홍길동", *page.Posts[0].Username)
	})

	t.Run("second page holds the remainder", func(t *testing.T) {
		page, err := svc.ListPosts(2)
		require.NoError(t, err)
		assert.Equal(t, int64(25), page.Total)
		assert.Len(t, page.Posts, 5)
	})

	t.Run("page zero and below collapse to page one", func(t *testing.T) {
		first, err := svc.ListPosts(1)
		require.NoError(t, err)
		for _, page := range []int{0, -3} {
			got, err := svc.ListPosts(page)
			require.NoError(t, err)
			assert.Equal(t, first.Posts, got.Posts)
		}
	})

	t.Run("missing author yields a null username", func(t *testing.T) {
		require.NoError(t, db.Create(&model.Post{
			Title:     "orphaned",
			Content:   "content",
			AuthorID:  "gone@x.com",
			CreatedAt: base.Add(26 * time.Minute),
		}).Error)

		page, err := svc.ListPosts(1)
		require.NoError(t, err)
		assert.Equal(t, "orphaned", page.Posts[0].Title)
		assert.Nil(t, page.Posts[0].Username)
	})
}

func TestGetPostDetail(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)
	seedUser(t, db, "a@x.com", "홍길동")

	post, err := svc.CreatePost(CreatePostInput{
		AuthorID: "a@x.com",
		Title:    "Test Title",
		Content:  "Test Content",
	})
	require.NoError(t, err)

	t.Run("returns the full row with the author name", func(t *testing.T) {
		detail, err := svc.GetPostDetail(post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.ID, detail.ID)
		assert.Equal(t, "Test Content", detail.Content)
		require.NotNil(t, detail.Username)
		assert.Equal(t, "홍길동", *detail.Username)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := svc.GetPostDetail(post.ID + 999)
		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}
