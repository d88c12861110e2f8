package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Sandip75/backend-task/internal/app"
	"github.com/Sandip75/backend-task/internal/transport/http/middleware"
	"github.com/Sandip75/backend-task/internal/transport/http/response"
)

type CommentHandler struct {
	commentService *app.CommentService
}

type CreateCommentRequest struct {
	PostID  uint   `json:"postId" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type DeleteCommentResponse struct {
	Message string `json:"message"`
}

func NewCommentHandler(commentService *app.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	comment, err := h.commentService.CreateComment(app.CreateCommentInput{
		AuthorID: userID,
		PostID:   req.PostID,
		Content:  req.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput), errors.Is(err, app.ErrCommentTooLong):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrPostNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create comment failed")
		}
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) List(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Query("postId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid post id")
		return
	}

	var cursor *uint
	if raw := c.Query("cursor"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid cursor")
			return
		}
		value := uint(parsed)
		cursor = &value
	}

	page, err := h.commentService.ListComments(uint(postID), cursor)
	if err != nil {
		if errors.Is(err, app.ErrCommentNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "cursor comment not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list comments failed")
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid comment id")
		return
	}

	if err := h.commentService.DeleteComment(uint(id), userID); err != nil {
		switch {
		case errors.Is(err, app.ErrCommentNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
		case errors.Is(err, app.ErrForbidden):
			response.Error(c, http.StatusForbidden, response.CodeForbidden, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete comment failed")
		}
		return
	}

	c.JSON(http.StatusOK, DeleteCommentResponse{Message: "Comment deleted successfully"})
}
