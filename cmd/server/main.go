package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vamsi1219/task-flow-manager-duo/internal/config"
	"github.com/vamsi1219/task-flow-manager-duo/internal/db"
	transport "github.com/vamsi1219/task-flow-manager-duo/internal/http"
	"github.com/vamsi1219/task-flow-manager-duo/internal/http/middleware"
	"github.com/vamsi1219/task-flow-manager-duo/internal/repo"
	"github.com/vamsi1219/task-flow-manager-duo/internal/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Env)

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	var (
		users repo.UserStore
		tasks repo.TaskStore
	)
	switch cfg.StoreDriver {
	case "memory":
		logger.Warn("using in-memory store, data is lost on restart")
		users, tasks = repo.NewMemory()
	default:
		dbConn, err := db.Connect(ctx, cfg.DBURL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()

		if err := db.Migrate(ctx, cfg.DBURL); err != nil {
			logger.Error("failed to migrate schema", "error", err)
			os.Exit(1)
		}

		users = repo.NewUserPG(dbConn.Pool, cfg.RequestTimeout)
		tasks = repo.NewTaskPG(dbConn.Pool, cfg.RequestTimeout)
	}

	if err := db.EnsureAdminUser(ctx, users, cfg); err != nil {
		logger.Error("failed to seed admin user", "error", err)
		os.Exit(1)
	}

	authService := services.NewAuthService(users, cfg)
	taskService := services.NewTaskService(tasks, users)

	router := transport.NewRouter(transport.Dependencies{
		Config:      cfg,
		Users:       users,
		Auth:        authService,
		Tasks:       taskService,
		Logger:      logger,
		RateLimiter: middleware.NewRateLimiter(cfg.RateLimitPerMinute),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.RequestTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout,
		IdleTimeout:       60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr, "env", cfg.Env, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErrors:
		logger.Error("http server stopped unexpectedly", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("http server stopped")
}

func newLogger(env string) *slog.Logger {
	level := slog.LevelInfo
	if env != "prod" {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if env == "prod" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}
