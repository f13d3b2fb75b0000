package main

import (
	"log"
	"net/http"

	_ "guestbook/docs" // swagger docs

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"guestbook/internal/auth"
	"guestbook/internal/cache"
	"guestbook/internal/config"
	"guestbook/internal/db"
	apperrors "guestbook/internal/errors"
	"guestbook/internal/handler"
	"guestbook/internal/mail"
	"guestbook/internal/middleware"
	"guestbook/internal/model"
	"guestbook/internal/repository"
	"guestbook/internal/router"
	"guestbook/internal/service"
)

// @title Guest Book API
// @version 1.0
// @description Guest book backend with user accounts, roles, JWT authentication, and moderated image posts.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(echomw.RequestID())
	e.HTTPErrorHandler = apperrors.Handler(cfg.IsDevelopment())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Post{},
		&model.Comment{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)

	// Shared collaborators
	tokenService := auth.NewTokenService(cfg.JWTSecret)
	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)

	// Services
	authService := service.NewAuthService(userRepo, tokenService, mailer, cfg.PasswordResetURL)
	userService := service.NewUserService(userRepo, tokenService, mailer, cfg.FrontendURL)
	postService := service.NewPostService(postRepo)

	// Handlers and middleware
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService)
	dashboardHandler := handler.NewDashboardHandler(postService)
	healthHandler := handler.NewHealthHandler(gormDB, cfg.Env)
	authMW := middleware.NewAuthMiddleware(userRepo, cacheClient, cfg.JWTSecret)

	router.Register(
		e,
		cfg,
		authMW,
		authHandler,
		userHandler,
		postHandler,
		dashboardHandler,
		healthHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
