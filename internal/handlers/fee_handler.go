package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"savaan_backend/internal/services"
	"savaan_backend/internal/services/dto"
	"savaan_backend/internal/validator"
	"savaan_backend/pkg/apperrors"
)

type FeeHandler struct {
	*BaseHandler
	feeService services.FeeService
}

func NewFeeHandler(base *BaseHandler, feeService services.FeeService) *FeeHandler {
	return &FeeHandler{
		BaseHandler: base,
		feeService:  feeService,
	}
}

func (h *FeeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payment/management-fee", h.Pay)
	rg.GET("/management-fee-status/:mobile", h.Status)
}

// Pay records a yearly fee payment for the mobile number in the body.
func (h *FeeHandler) Pay(c *gin.Context) {
	var req dto.PayFeeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	receipt, err := h.feeService.Pay(c.Request.Context(), req.Mobile)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Management fee paid successfully",
		"receipt": receipt,
	})
}

// Status reports the fee state for the mobile number in the path.
func (h *FeeHandler) Status(c *gin.Context) {
	mobile := c.Param("mobile")
	if !validator.IsValidMobile(mobile) {
		apperrors.HandleError(c, apperrors.BadRequest("Invalid mobile number"))
		return
	}

	status, err := h.feeService.Status(c.Request.Context(), mobile)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"fee":     status,
	})
}
