package router

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"guestbook/internal/config"
	"guestbook/internal/handler"
	"guestbook/internal/middleware"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authMW *middleware.AuthMiddleware,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
	dashboardHandler *handler.DashboardHandler,
	healthHandler *handler.HealthHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/health", healthHandler.Health)
	e.GET("/ping", healthHandler.Ping)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/activate", authHandler.Activate)
	api.POST("/auth/forgot-password", authHandler.ForgotPassword)
	api.POST("/auth/reset-password/:token", authHandler.ResetPassword)
	api.POST("/user", userHandler.Register)
	api.GET("/post/approved", postHandler.GetApprovedPosts)

	// Routes requiring an authenticated, active, unlocked account
	verified := api.Group("", authMW.VerifyToken())
	verified.GET("/user/:id", userHandler.GetUser)
	verified.PUT("/user/:id", userHandler.UpdateUser)
	verified.PATCH("/user/:id/status", userHandler.UpdateUserStatus)
	verified.DELETE("/user/:id", userHandler.DeleteUser)
	verified.POST("/post", postHandler.PublishPost)
	verified.POST("/post/:postId", postHandler.AddComment)

	// Admin-only dashboard
	admin := verified.Group("/dashboard", authMW.RequireRoles("System Admin"))
	admin.GET("/posts", dashboardHandler.GetAllPosts)
	admin.GET("/comments", dashboardHandler.GetAllComments)
	admin.DELETE("/posts/:postId", dashboardHandler.DeletePost)
	admin.DELETE("/posts/:postId/comments/:commentId", dashboardHandler.DeleteComment)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
