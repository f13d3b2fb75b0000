package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "guestbook/internal/errors"
	"guestbook/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents a login request. Presence of both fields is
// enforced by the service so the caller sees the canonical message.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// ResetPasswordRequest carries the new credential pair.
type ResetPasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ForgotPasswordRequest identifies the account to send a reset link to.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Header 200 {string} Authorization "Bearer token"
// @Failure 400 {object} errors.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.New("Username and password are required.", http.StatusBadRequest)
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderAuthorization, "Bearer "+token)
	return c.JSON(http.StatusOK, LoginResponse{
		Message: "Logged in successfully.",
		Token:   token,
	})
}

// Activate godoc
// @Summary Activate a user account
// @Tags auth
// @Produce json
// @Param email query string true "Account email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /auth/activate [get]
func (h *AuthHandler) Activate(c echo.Context) error {
	email := c.QueryParam("email")

	alreadyActive, err := h.authService.Activate(c.Request().Context(), email)
	if err != nil {
		return err
	}

	message := "User account has been activated successfully."
	if alreadyActive {
		message = "User is already active."
	}
	return c.JSON(http.StatusOK, map[string]string{"message": message})
}

// ForgotPassword godoc
// @Summary Send a password reset link
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.New("Email is required.", http.StatusBadRequest)
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Password reset link sent to your email.",
	})
}

// ResetPassword godoc
// @Summary Reset the password using a reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param request body ResetPasswordRequest true "New credential pair"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /auth/reset-password/{token} [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	token := c.Param("token")

	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.New("Password and confirm password are required.", http.StatusBadRequest)
	}

	if err := h.authService.ResetPassword(c.Request().Context(), token, req.Password, req.ConfirmPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Password has been reset successfully.",
	})
}
