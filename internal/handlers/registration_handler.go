package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"savaan_backend/internal/services"
	"savaan_backend/internal/services/dto"
	"savaan_backend/internal/wizard"
	"savaan_backend/pkg/apperrors"
)

// RegistrationHandler exposes the server-side wizard. One session per
// registration attempt; /next carries the payload of whatever step the
// session currently sits on.
type RegistrationHandler struct {
	*BaseHandler
	registration services.RegistrationService
}

func NewRegistrationHandler(base *BaseHandler, registration services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		BaseHandler:  base,
		registration: registration,
	}
}

func (h *RegistrationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sessions := rg.Group("/registration/session")
	{
		sessions.POST("", h.Start)
		sessions.GET("/:id", h.Get)
		sessions.POST("/:id/resend-code", h.ResendCode)
		sessions.POST("/:id/next", h.Next)
		sessions.POST("/:id/back", h.Back)
		sessions.POST("/:id/submit", h.Submit)
	}
}

func (h *RegistrationHandler) Start(c *gin.Context) {
	var req dto.StartSessionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.registration.Start(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"session": resp,
	})
}

func (h *RegistrationHandler) Get(c *gin.Context) {
	resp, err := h.registration.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"session": resp,
	})
}

func (h *RegistrationHandler) ResendCode(c *gin.Context) {
	resp, err := h.registration.ResendCode(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"session": resp,
	})
}

// Next advances the session one step. The body shape is decided by the step
// the session currently sits on.
func (h *RegistrationHandler) Next(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	current, err := h.registration.Get(ctx, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	step, _ := wizard.ParseStep(current.Step)

	var resp *dto.SessionResponse
	switch step {
	case wizard.StepVerification:
		var req dto.VerifyCodeStep
		if !h.BindJSON(c, &req) {
			return
		}
		resp, err = h.registration.VerifyCode(ctx, id, &req)
	case wizard.StepBasicDetails:
		var req dto.BasicDetailsStep
		if !h.BindJSON(c, &req) {
			return
		}
		resp, err = h.registration.BasicDetails(ctx, id, &req)
	case wizard.StepJobDetails:
		var req dto.JobDetailsStep
		if !h.BindJSON(c, &req) {
			return
		}
		resp, err = h.registration.JobDetails(ctx, id, &req)
	case wizard.StepNomineeDetails:
		var req dto.NomineeDetailsStep
		if !h.BindJSON(c, &req) {
			return
		}
		resp, err = h.registration.NomineeDetails(ctx, id, &req)
	case wizard.StepOtherDetails:
		var req dto.OtherDetailsStep
		if !h.BindJSON(c, &req) {
			return
		}
		resp, err = h.registration.OtherDetails(ctx, id, &req)
	case wizard.StepReview:
		apperrors.HandleError(c, apperrors.InvalidStep("session is at review; use submit"))
		return
	default:
		apperrors.HandleError(c, apperrors.InvalidStep("session is already submitted"))
		return
	}

	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"session": resp,
	})
}

func (h *RegistrationHandler) Back(c *gin.Context) {
	var req dto.BackRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.registration.Back(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"session": resp,
	})
}

// Submit finalizes the review step into the atomic create.
func (h *RegistrationHandler) Submit(c *gin.Context) {
	resp, err := h.registration.Submit(c.Request.Context(), c.Param("id"))
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
