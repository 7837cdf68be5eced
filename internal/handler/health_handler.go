package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/student-records-api/internal/service"
)

// HealthHandler exposes the health endpoints.
type HealthHandler struct {
	health *service.HealthService
}

// NewHealthHandler constructs HealthHandler.
func NewHealthHandler(health *service.HealthService) *HealthHandler {
	return &HealthHandler{health: health}
}

// Check godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Param echo query string false "Optional echo string"
// @Success 200 {object} models.Health
// @Router /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, h.health.Check(optionalQuery(c, "echo"), nil))
}

// CheckWithPath godoc
// @Summary Health check with path echo
// @Tags Health
// @Produce json
// @Param path_echo path string true "Echo in the URL path"
// @Param echo query string false "Optional echo string"
// @Success 200 {object} models.Health
// @Router /health/{path_echo} [get]
func (h *HealthHandler) CheckWithPath(c *gin.Context) {
	pathEcho := c.Param("path_echo")
	c.JSON(http.StatusOK, h.health.Check(optionalQuery(c, "echo"), &pathEcho))
}
