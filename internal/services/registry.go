package services

import (
	"savaan_backend/internal/auth"
	"savaan_backend/internal/otp"
	"savaan_backend/internal/repositories"
	"savaan_backend/internal/validator"
	"savaan_backend/internal/wizard"
)

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService         AuthService
	RegistrationService RegistrationService
	FeeService          FeeService
}

// NewServiceContainer wires the services over a shared repository, validator
// and code issuer.
func NewServiceContainer(
	userRepo repositories.UserRepository,
	v *validator.Validator,
	tokens *auth.TokenManager,
	issuer *otp.Issuer,
	sender otp.Sender,
	echoOTP bool,
) *ServiceContainer {
	authSvc := NewAuthService(userRepo, v, tokens, issuer, sender)
	machine := wizard.NewMachine(v)

	return &ServiceContainer{
		AuthService:         authSvc,
		RegistrationService: NewRegistrationService(machine, userRepo, authSvc, issuer, sender, echoOTP),
		FeeService:          NewFeeService(userRepo),
	}
}
