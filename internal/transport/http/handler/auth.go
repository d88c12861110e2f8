package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Sandip75/backend-task/internal/app"
	"github.com/Sandip75/backend-task/internal/transport/http/middleware"
	"github.com/Sandip75/backend-task/internal/transport/http/response"
)

type AuthHandler struct {
	authService    *app.AuthService
	rankingService *app.RankingService
}

type SignupRequest struct {
	ID       string `json:"id" binding:"required,email,max=128"`
	Password string `json:"password" binding:"required"`
	Username string `json:"username" binding:"required"`
}

type SignupResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoginRequest struct {
	ID       string `json:"id" binding:"required,email,max=128"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type UpdateUserRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

type UpdateUserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type LoginRecordItem struct {
	IP        string    `json:"ip"`
	LoginTime time.Time `json:"loginTime"`
	Username  string    `json:"username"`
}

func NewAuthHandler(authService *app.AuthService, rankingService *app.RankingService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		rankingService: rankingService,
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	user, err := h.authService.Signup(app.SignupInput{
		ID:       req.ID,
		Password: req.Password,
		Username: req.Username,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrEmailRegistered):
			response.Error(c, http.StatusConflict, response.CodeEmailRegistered, err.Error())
		case errors.Is(err, app.ErrInvalidInput),
			errors.Is(err, app.ErrPasswordPolicy),
			errors.Is(err, app.ErrUsernameFormat):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "signup failed")
		}
		return
	}

	c.JSON(http.StatusCreated, SignupResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	token, err := h.authService.Login(app.LoginInput{
		ID:       req.ID,
		Password: req.Password,
		IP:       clientIP(c),
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredential) {
			response.Error(c, http.StatusUnauthorized, response.CodeInvalidCredentials, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "login failed")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{AccessToken: token})
}

func (h *AuthHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.authService.Update(userID, app.UpdateUserInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrNoUpdateFields),
			errors.Is(err, app.ErrPasswordPolicy),
			errors.Is(err, app.ErrUsernameFormat):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrInvalidCredential):
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "update failed")
		}
		return
	}

	c.JSON(http.StatusOK, UpdateUserResponse{
		ID:        result.ID,
		Username:  result.Username,
		UpdatedAt: result.UpdatedAt,
	})
}

func (h *AuthHandler) LoginRecords(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	rows, err := h.authService.LoginRecords(userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch login records failed")
		return
	}

	items := make([]LoginRecordItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, LoginRecordItem{
			IP:        row.IP,
			LoginTime: row.CreatedAt,
			Username:  row.Username,
		})
	}
	c.JSON(http.StatusOK, items)
}

func (h *AuthHandler) LoginRankings(c *gin.Context) {
	entries, err := h.rankingService.WeeklyRanking()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch login rankings failed")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// clientIP reports the advisory audit address: the x-forwarded-for header
// as sent, or "unknown".
func clientIP(c *gin.Context) string {
	if ip := c.GetHeader("X-Forwarded-For"); ip != "" {
		return ip
	}
	return "unknown"
}
