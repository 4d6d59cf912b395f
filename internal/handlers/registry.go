package handlers

import (
	"github.com/gin-gonic/gin"

	"savaan_backend/internal/repositories"
	"savaan_backend/internal/services"
	"savaan_backend/internal/validator"
)

// AppHandlers holds every handler of the application.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	RegistrationHandler *RegistrationHandler
	FeeHandler          *FeeHandler
	UserHandler         *UserHandler
	HealthHandler       *HealthHandler
}

// NewAppHandlers wires the handlers over the service container.
func NewAppHandlers(
	v *validator.Validator,
	svcs *services.ServiceContainer,
	userRepo repositories.UserRepository,
	authMW gin.HandlerFunc,
	devMode bool,
) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:         NewAuthHandler(base, svcs.AuthService, devMode),
		RegistrationHandler: NewRegistrationHandler(base, svcs.RegistrationService),
		FeeHandler:          NewFeeHandler(base, svcs.FeeService),
		UserHandler:         NewUserHandler(base, svcs.AuthService, authMW),
		HealthHandler:       NewHealthHandler(userRepo),
	}
}
