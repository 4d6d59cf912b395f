package apperrors

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the uniform failure envelope:
// {"success": false, "code": ..., "message": ..., "errors": [...]}.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Errors  []string  `json:"errors,omitempty"`
}

// GinErrorHandler writes AppErrors as JSON responses. With Debug disabled the
// detail of 5xx errors is hidden from clients.
type GinErrorHandler struct {
	Debug bool
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	message := appErr.Message
	if appErr.HTTPCode >= 500 && !h.Debug {
		message = "Internal server error"
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{
		Success: false,
		Code:    appErr.Code,
		Message: message,
		Errors:  appErr.Fields,
	})
}

var defaultHandler = &GinErrorHandler{}

// SetDebug toggles 5xx detail exposure; called once from app bootstrap.
func SetDebug(debug bool) {
	defaultHandler.Debug = debug
}

// HandleError is the boundary helper used by every handler.
func HandleError(c *gin.Context, err error) {
	defaultHandler.HandleGinError(c, err)
}
