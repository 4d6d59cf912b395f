package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"savaan_backend/internal/auth"
	"savaan_backend/internal/services"
	"savaan_backend/internal/services/dto"
	"savaan_backend/pkg/apperrors"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	// devMode controls whether reset codes are echoed in responses.
	devMode bool
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, devMode bool) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		devMode:     devMode,
	}
}

// RegisterRoutes mounts the credential endpoints on /api.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)
	rg.POST("/forgot-password", h.ForgotPassword)
	rg.POST("/reset-password", h.ResetPassword)
}

// Register accepts the full one-shot payload, the non-wizard path used by
// API clients.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registration successful",
		"user":    resp.User,
		"token":   resp.Token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if req.DepartmentID == "" || req.EmailOrMobile == "" || req.Password == "" {
		apperrors.HandleError(c, apperrors.BadRequest("Department ID, email/mobile, and password are required"))
		return
	}
	if err := auth.ValidateLoginPassword(req.Password); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    resp.User,
		"token":   resp.Token,
	})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	code, err := h.authService.ForgotPassword(c.Request.Context(), req.Mobile)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	body := gin.H{
		"success": true,
		"message": "OTP sent to your registered contact",
	}
	if h.devMode {
		body["otp"] = code
	}
	c.JSON(http.StatusOK, body)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password reset successful",
	})
}
