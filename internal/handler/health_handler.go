package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"guestbook/internal/db"
)

// HealthHandler reports process and dependency health.
type HealthHandler struct {
	db      *gorm.DB
	env     string
	started time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(gormDB *gorm.DB, env string) *HealthHandler {
	return &HealthHandler{db: gormDB, env: env, started: time.Now()}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	status := "OK"
	dbStatus := "connected"
	if err := db.Ping(c.Request().Context(), h.db); err != nil {
		status = "WARNING"
		dbStatus = "disconnected"
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      status,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"uptime":      time.Since(h.started).Seconds(),
		"environment": h.env,
		"database": map[string]string{
			"status": dbStatus,
		},
	})
}

// Ping godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *HealthHandler) Ping(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message":   "pong",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
