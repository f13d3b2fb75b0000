package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "guestbook/internal/errors"
	"guestbook/internal/middleware"
	"guestbook/internal/service"
)

// PostHandler handles guest book post endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// PublishPostRequest represents a new post submission.
type PublishPostRequest struct {
	Image       string `json:"image" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// AddCommentRequest represents a new comment on a post.
type AddCommentRequest struct {
	Comment string `json:"comment" validate:"required"`
}

// PublishPost godoc
// @Summary Publish a new post
// @Tags post
// @Accept json
// @Produce json
// @Param request body PublishPostRequest true "Post content"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.Response
// @Security BearerAuth
// @Router /post [post]
func (h *PostHandler) PublishPost(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return apperrors.New("Access denied. No token provided.", http.StatusUnauthorized)
	}

	var req PublishPostRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.New("invalid request body", http.StatusBadRequest)
	}
	if req.Image == "" {
		return apperrors.New("Image is required.", http.StatusBadRequest)
	}
	if req.Description == "" {
		return apperrors.New("Description is required.", http.StatusBadRequest)
	}

	post, err := h.postService.Publish(c.Request().Context(), claims.UserID, req.Image, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Post published successfully.",
		"data":    post,
	})
}

// AddComment godoc
// @Summary Add a comment to a post
// @Tags post
// @Accept json
// @Produce json
// @Param postId path string true "Post id"
// @Param request body AddCommentRequest true "Comment content"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Security BearerAuth
// @Router /post/{postId} [post]
func (h *PostHandler) AddComment(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return apperrors.New("Access denied. No token provided.", http.StatusUnauthorized)
	}

	postID, err := parseIDParam(c, "postId")
	if err != nil {
		return err
	}

	var req AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.New("invalid request body", http.StatusBadRequest)
	}
	if req.Comment == "" {
		return apperrors.New("Comment is required.", http.StatusBadRequest)
	}

	post, err := h.postService.AddComment(c.Request().Context(), postID, claims.UserID, req.Comment)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Comment added successfully.",
		"data":    post,
	})
}

// GetApprovedPosts godoc
// @Summary List approved posts with approved comments
// @Tags post
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /post/approved [get]
func (h *PostHandler) GetApprovedPosts(c echo.Context) error {
	posts, err := h.postService.ApprovedPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Approved posts fetched successfully.",
		"data":    posts,
	})
}
