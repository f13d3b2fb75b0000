package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"guestbook/internal/service"
)

// DashboardHandler handles the admin dashboard endpoints.
type DashboardHandler struct {
	postService service.PostService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(postService service.PostService) *DashboardHandler {
	return &DashboardHandler{postService: postService}
}

// GetAllPosts godoc
// @Summary List all posts regardless of moderation state
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /dashboard/posts [get]
func (h *DashboardHandler) GetAllPosts(c echo.Context) error {
	posts, err := h.postService.AllPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "All posts fetched successfully.",
		"data":    posts,
	})
}

// GetAllComments godoc
// @Summary List all comments across posts
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /dashboard/comments [get]
func (h *DashboardHandler) GetAllComments(c echo.Context) error {
	comments, err := h.postService.AllComments(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "All comments fetched successfully.",
		"data":    comments,
	})
}

// DeletePost godoc
// @Summary Delete a post and its comments
// @Tags dashboard
// @Produce json
// @Param postId path string true "Post id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.Response
// @Security BearerAuth
// @Router /dashboard/posts/{postId} [delete]
func (h *DashboardHandler) DeletePost(c echo.Context) error {
	postID, err := parseIDParam(c, "postId")
	if err != nil {
		return err
	}
	if err := h.postService.DeletePost(c.Request().Context(), postID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Post deleted successfully.",
	})
}

// DeleteComment godoc
// @Summary Delete a single comment from a post
// @Tags dashboard
// @Produce json
// @Param postId path string true "Post id"
// @Param commentId path string true "Comment id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.Response
// @Security BearerAuth
// @Router /dashboard/posts/{postId}/comments/{commentId} [delete]
func (h *DashboardHandler) DeleteComment(c echo.Context) error {
	postID, err := parseIDParam(c, "postId")
	if err != nil {
		return err
	}
	commentID, err := parseIDParam(c, "commentId")
	if err != nil {
		return err
	}
	if err := h.postService.DeleteComment(c.Request().Context(), postID, commentID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Comment deleted successfully.",
	})
}
