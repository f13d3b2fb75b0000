package handler

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "guestbook/internal/errors"
	"guestbook/internal/service"
)

// UserHandler handles registration and user management endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	RoleID    string `json:"roleId" validate:"required,uuid"`
	Status    bool   `json:"status"`
}

// UpdateUserRequest carries the mutable profile fields; anything else sent by
// the client is filtered out.
type UpdateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UpdateUserStatusRequest toggles the active flag.
type UpdateUserStatusRequest struct {
	Status *bool `json:"status" validate:"required"`
}

// Register godoc
// @Summary Register a new user
// @Tags user
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.Response
// @Router /user [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.New("invalid request body", http.StatusBadRequest)
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.New(err.Error(), http.StatusBadRequest)
	}

	roleID, err := uuid.Parse(req.RoleID)
	if err != nil {
		return apperrors.New("roleId must be a valid id", http.StatusBadRequest)
	}

	if err := h.userService.Register(c.Request().Context(), service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		RoleID:    roleID,
		Status:    req.Status,
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "The user has been created successfully.",
	})
}

// GetUser godoc
// @Summary Get a user by id
// @Tags user
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.Response
// @Security BearerAuth
// @Router /user/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	user, err := h.userService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update a user's profile fields
// @Tags user
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param request body UpdateUserRequest true "Profile fields"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.Response
// @Security BearerAuth
// @Router /user/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.New("invalid request body", http.StatusBadRequest)
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), id, req.FirstName, req.LastName)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "The user details have been updated successfully.",
		"data":    user,
	})
}

// UpdateUserStatus godoc
// @Summary Activate or deactivate a user
// @Tags user
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param request body UpdateUserStatusRequest true "New status"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Security BearerAuth
// @Router /user/{id}/status [patch]
func (h *UserHandler) UpdateUserStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateUserStatusRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.New("Status must be a boolean value.", http.StatusBadRequest)
	}
	if req.Status == nil {
		return apperrors.New("Status must be a boolean value.", http.StatusBadRequest)
	}

	user, err := h.userService.UpdateStatus(c.Request().Context(), id, *req.Status)
	if err != nil {
		return err
	}

	state := "inactive"
	if *req.Status {
		state = "active"
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("User status has been updated to %s.", state),
		"data":    user,
	})
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags user
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.Response
// @Security BearerAuth
// @Router /user/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.userService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "User has been deleted successfully.",
	})
}

// parseIDParam parses a uuid path parameter, mapping bad input to a 400.
func parseIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperrors.New(fmt.Sprintf("Invalid %s: %s.", name, c.Param(name)), http.StatusBadRequest)
	}
	return id, nil
}
