package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"savaan_backend/internal/handlers"
	"savaan_backend/pkg/apperrors"
)

// RegisterRoutes mounts every HTTP route under /api.
func RegisterRoutes(router *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := router.Group("/api")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.RegistrationHandler.RegisterRoutes(api)
		appHandlers.FeeHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.HealthHandler.RegisterRoutes(api)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, apperrors.ErrorResponse{
			Success: false,
			Code:    apperrors.CodeNotFound,
			Message: "Route not found",
		})
	})
}
