package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"savaan_backend/internal/middleware"
	"savaan_backend/internal/services"
	"savaan_backend/internal/services/dto"
	"savaan_backend/pkg/apperrors"
)

type UserHandler struct {
	*BaseHandler
	authService services.AuthService
	authMW      gin.HandlerFunc
}

func NewUserHandler(base *BaseHandler, authService services.AuthService, authMW gin.HandlerFunc) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		authService: authService,
		authMW:      authMW,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.authMW, h.Profile)
	rg.GET("/users", h.Users)
	rg.POST("/check-mobile", h.CheckMobile)
}

// Profile returns the registrant matching the verified token.
func (h *UserHandler) Profile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		apperrors.HandleError(c, apperrors.ErrUnauthorized)
		return
	}

	user, err := h.authService.Profile(c.Request.Context(), claims)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

// Users lists all registrants, newest first.
func (h *UserHandler) Users(c *gin.Context) {
	users, err := h.authService.Users(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   users,
		"count":   len(users),
	})
}

// CheckMobile reports whether a mobile number is already registered, used by
// the wizard before opening a session.
func (h *UserHandler) CheckMobile(c *gin.Context) {
	var req dto.CheckMobileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	exists, err := h.authService.CheckMobile(c.Request.Context(), req.Mobile)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"exists":  exists,
	})
}
