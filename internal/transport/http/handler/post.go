package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Sandip75/backend-task/internal/app"
	"github.com/Sandip75/backend-task/internal/repository"
	"github.com/Sandip75/backend-task/internal/transport/http/middleware"
	"github.com/Sandip75/backend-task/internal/transport/http/response"
)

type PostHandler struct {
	postService *app.PostService
}

type CreatePostRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Content string `json:"content" binding:"required"`
}

type CreatePostResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type ListPostsResponse struct {
	Total int64                    `json:"total"`
	Posts []repository.PostListRow `json:"posts"`
}

func NewPostHandler(postService *app.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	post, err := h.postService.CreatePost(app.CreatePostInput{
		AuthorID: userID,
		Title:    req.Title,
		Content:  req.Content,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create post failed")
		return
	}

	c.JSON(http.StatusCreated, CreatePostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
	})
}

func (h *PostHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = 1
	}

	result, err := h.postService.ListPosts(page)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list posts failed")
		return
	}

	c.JSON(http.StatusOK, ListPostsResponse{
		Total: result.Total,
		Posts: result.Posts,
	})
}

func (h *PostHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid post id")
		return
	}

	detail, err := h.postService.GetPostDetail(uint(id))
	if err != nil {
		if errors.Is(err, app.ErrPostNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch post failed")
		return
	}

	c.JSON(http.StatusOK, detail)
}
