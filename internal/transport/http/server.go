package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "github.com/Sandip75/backend-task/internal/app"
	"github.com/Sandip75/backend-task/internal/bootstrap"
	"github.com/Sandip75/backend-task/internal/platform/rabbitmq"
	"github.com/Sandip75/backend-task/internal/repository"
	"github.com/Sandip75/backend-task/internal/transport/http/handler"
	"github.com/Sandip75/backend-task/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	loginRecordRepo := repository.NewLoginRecordRepository(app.MySQL)
	postRepo := repository.NewPostRepository(app.MySQL)
	commentRepo := repository.NewCommentRepository(app.MySQL)

	// Without a broker connection logins simply skip the audit publish.
	var publisher appsvc.LoginEventPublisher
	if app.MQConn != nil {
		publisher = rabbitmq.NewLoginEventPublisher(app.MQConn, app.Config.RabbitMQ.LoginRecordQueue)
	}
	authService := appsvc.NewAuthService(
		userRepo,
		loginRecordRepo,
		publisher,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	rankingService := appsvc.NewRankingService(userRepo, loginRecordRepo)
	postService := appsvc.NewPostService(postRepo)
	commentService := appsvc.NewCommentService(commentRepo, postRepo)

	authHandler := handler.NewAuthHandler(authService, rankingService)
	postHandler := handler.NewPostHandler(postService)
	commentHandler := handler.NewCommentHandler(commentService)

	authJWT := middleware.AuthJWT(app.Config.Auth.JWTSecret)

	authGroup := router.Group("/auth")
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/login", authHandler.Login)
	authGroup.PATCH("/update", authJWT, authHandler.Update)
	authGroup.GET("/login-records", authJWT, authHandler.LoginRecords)
	authGroup.GET("/login-rankings", authHandler.LoginRankings)

	postGroup := router.Group("/posts")
	postGroup.POST("", authJWT, postHandler.Create)
	postGroup.GET("", postHandler.List)
	postGroup.GET("/:id", postHandler.Detail)

	commentGroup := router.Group("/comments")
	commentGroup.Use(authJWT)
	commentGroup.POST("", commentHandler.Create)
	commentGroup.GET("", commentHandler.List)
	commentGroup.DELETE("/:id", commentHandler.Delete)

	return router
}
