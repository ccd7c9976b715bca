package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/vamsi1219/task-flow-manager-duo/internal/config"
	"github.com/vamsi1219/task-flow-manager-duo/internal/http/handlers"
	"github.com/vamsi1219/task-flow-manager-duo/internal/http/middleware"
	"github.com/vamsi1219/task-flow-manager-duo/internal/repo"
	"github.com/vamsi1219/task-flow-manager-duo/internal/services"
)

type Dependencies struct {
	Config      *config.Config
	Users       repo.UserStore
	Auth        *services.AuthService
	Tasks       *services.TaskService
	Logger      *slog.Logger
	RateLimiter *middleware.RateLimiter
}

func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(deps.Config.AllowedOrigins))

	authHandler := handlers.NewAuthHandler(deps.Auth)
	userHandler := handlers.NewUserHandler(deps.Users)
	taskHandler := handlers.NewTaskHandler(deps.Tasks)

	router.GET("/healthz", handlers.Health)

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		authGroup.Use(deps.RateLimiter.Middleware())
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	protected := api.Group("")
	protected.Use(middleware.BearerAuth(deps.Auth))
	{
		protected.GET("/auth/me", authHandler.Me)
		protected.GET("/users", userHandler.List)
		protected.GET("/users/:id", userHandler.GetByID)
		protected.GET("/tasks", taskHandler.List)
		protected.GET("/tasks/user/:userId", taskHandler.ListForUser)
		protected.POST("/tasks", taskHandler.Create)
		protected.PATCH("/tasks/:id/status", taskHandler.UpdateStatus)
		protected.DELETE("/tasks/:id", middleware.RequireAdmin(), taskHandler.Delete)
	}

	return router
}
