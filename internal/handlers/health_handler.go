package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"savaan_backend/internal/repositories"
)

// HealthHandler reports process liveness and store reachability.
type HealthHandler struct {
	userRepo repositories.UserRepository
}

func NewHealthHandler(userRepo repositories.UserRepository) *HealthHandler {
	return &HealthHandler{userRepo: userRepo}
}

func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

func (h *HealthHandler) Health(c *gin.Context) {
	database := "connected"
	if err := h.userRepo.Ping(c.Request.Context()); err != nil {
		database = "disconnected"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"status":   "ok",
		"database": database,
	})
}
