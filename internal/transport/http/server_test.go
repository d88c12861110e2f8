package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Sandip75/backend-task/internal/bootstrap"
	"github.com/Sandip75/backend-task/internal/config"
	"github.com/Sandip75/backend-task/internal/model"
	"github.com/Sandip75/backend-task/internal/repository"
)

const testPassword = "Abcdef123456!"

// newTestRouter wires the full router against an in-memory database.
// Without a broker connection the login audit publish is skipped.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.LoginRecord{},
		&model.Post{},
		&model.Comment{},
	))

	cfg := &config.Config{}
	cfg.App.Name = "backend-task-test"
	cfg.App.GinMode = gin.TestMode
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.JWTExpireMinute = 60

	app := &bootstrap.App{
		Config:    cfg,
		MySQL:     db,
		StartedAt: time.Now(),
	}
	return NewRouter(app), db
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func signupAndLogin(t *testing.T, router *gin.Engine, id, username string) string {
	t.Helper()

	w := doJSON(router, "POST", "/auth/signup", "", gin.H{
		"id":       id,
		"password": testPassword,
		"username": username,
	})
	require.Equal(t, 201, w.Code, w.Body.String())

	w = doJSON(router, "POST", "/auth/login", "", gin.H{
		"id":       id,
		"password": testPassword,
	})
	require.Equal(t, 200, w.Code, w.Body.String())

	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.AccessToken)
	return login.AccessToken
}

func TestForumScenario(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, "POST", "/auth/signup", "", gin.H{
		"id":       "a@x.com",
		"password": testPassword,
		"username": "홍길동",
	})
	require.Equal(t, 201, w.Code, w.Body.String())

	var created struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "a@x.com", created.ID)
	assert.Equal(t, "홍길동", created.Username)

	t.Run("duplicate signup conflicts", func(t *testing.T) {
		w := doJSON(router, "POST", "/auth/signup", "", gin.H{
			"id":       "a@x.com",
			"password": "Other!Pass12345",
			"username": "김철수",
		})
		assert.Equal(t, 409, w.Code)
	})

	w = doJSON(router, "POST", "/auth/login", "", gin.H{
		"id":       "a@x.com",
		"password": testPassword,
	})
	require.Equal(t, 200, w.Code)
	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.AccessToken)

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		w := doJSON(router, "POST", "/auth/login", "", gin.H{
			"id":       "a@x.com",
			"password": "Wrong!Pass12345",
		})
		assert.Equal(t, 401, w.Code)
	})

	t.Run("post creation requires a bearer token", func(t *testing.T) {
		w := doJSON(router, "POST", "/posts", "", gin.H{"title": "t", "content": "c"})
		assert.Equal(t, 401, w.Code)
	})

	w = doJSON(router, "POST", "/posts", login.AccessToken, gin.H{
		"title":   "Test Title",
		"content": "Test Content",
	})
	require.Equal(t, 201, w.Code, w.Body.String())

	w = doJSON(router, "GET", "/posts?page=1", "", nil)
	require.Equal(t, 200, w.Code)
	var list struct {
		Total int64 `json:"total"`
		Posts []struct {
			ID       uint    `json:"id"`
			Title    string  `json:"title"`
			Username *string `json:"username"`
		} `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.GreaterOrEqual(t, list.Total, int64(1))
	require.NotEmpty(t, list.Posts)
	assert.Equal(t, "Test Title", list.Posts[0].Title)
	require.NotNil(t, list.Posts[0].Username)
	assert.Equal(t, "홍길동", *list.Posts[0].Username)

	t.Run("unknown post id is not found", func(t *testing.T) {
		w := doJSON(router, "GET", fmt.Sprintf("/posts/%d", list.Posts[0].ID+999), "", nil)
		assert.Equal(t, 404, w.Code)
	})

	t.Run("malformed post id is a bad request", func(t *testing.T) {
		w := doJSON(router, "GET", "/posts/abc", "", nil)
		assert.Equal(t, 400, w.Code)
	})
}

func TestCommentDeletionStatuses(t *testing.T) {
	router, _ := newTestRouter(t)
	authorToken := signupAndLogin(t, router, "owner@x.com", "주인")
	otherToken := signupAndLogin(t, router, "other@x.com", "남")

	w := doJSON(router, "POST", "/posts", authorToken, gin.H{
		"title":   "Test Title",
		"content": "Test Content",
	})
	require.Equal(t, 201, w.Code)
	var post struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))

	w = doJSON(router, "POST", "/comments", authorToken, gin.H{
		"postId":  post.ID,
		"content": "Nice post!",
	})
	require.Equal(t, 201, w.Code, w.Body.String())
	var comment struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))

	t.Run("third party delete is forbidden", func(t *testing.T) {
		w := doJSON(router, "DELETE", fmt.Sprintf("/comments/%d", comment.ID), otherToken, nil)
		assert.Equal(t, 403, w.Code)
	})

	t.Run("unknown comment is not found", func(t *testing.T) {
		w := doJSON(router, "DELETE", fmt.Sprintf("/comments/%d", comment.ID+999), authorToken, nil)
		assert.Equal(t, 404, w.Code)
	})

	t.Run("author delete confirms", func(t *testing.T) {
		w := doJSON(router, "DELETE", fmt.Sprintf("/comments/%d", comment.ID), authorToken, nil)
		require.Equal(t, 200, w.Code)
		assert.Contains(t, w.Body.String(), "Comment deleted successfully")
	})

	t.Run("listing requires auth and pages", func(t *testing.T) {
		w := doJSON(router, "GET", fmt.Sprintf("/comments?postId=%d", post.ID), "", nil)
		assert.Equal(t, 401, w.Code)

		w = doJSON(router, "GET", fmt.Sprintf("/comments?postId=%d", post.ID), authorToken, nil)
		require.Equal(t, 200, w.Code)
		assert.Contains(t, w.Body.String(), `"nextCursor":null`)
	})
}

func TestLoginRecordsWireFormat(t *testing.T) {
	router, db := newTestRouter(t)
	token := signupAndLogin(t, router, "a@x.com", "홍길동")

	recordRepo := repository.NewLoginRecordRepository(db)
	require.NoError(t, recordRepo.Create(&model.LoginRecord{
		UserID:    "a@x.com",
		IP:        "10.0.0.1",
		CreatedAt: time.Now(),
	}))

	w := doJSON(router, "GET", "/auth/login-records", token, nil)
	require.Equal(t, 200, w.Code)

	var records []struct {
		IP        string    `json:"ip"`
		LoginTime time.Time `json:"loginTime"`
		Username  string    `json:"username"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "10.0.0.1", records[0].IP)
	assert.Equal(t, "홍길동", records[0].Username)
	assert.False(t, records[0].LoginTime.IsZero())
	assert.Contains(t, w.Body.String(), `"loginTime"`)
}

func TestLoginRankingsWireFormat(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, "GET", "/auth/login-rankings", "", nil)
	require.Equal(t, 200, w.Code)

	var entries []struct {
		Username   *string `json:"username"`
		LoginCount *int64  `json:"loginCount"`
		Rank       *int    `json:"rank"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 20)
	for _, entry := range entries {
		assert.Nil(t, entry.Username)
		assert.Nil(t, entry.LoginCount)
		assert.Nil(t, entry.Rank)
	}
}
