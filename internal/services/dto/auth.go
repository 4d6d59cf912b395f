package dto

import "savaan_backend/internal/models"

// LoginRequest - Department ID + email-or-mobile + password.
type LoginRequest struct {
	DepartmentID  string `json:"departmentId" validate:"required"`
	EmailOrMobile string `json:"emailOrMobile" validate:"required"`
	Password      string `json:"password" validate:"required"`
}

// ForgotPasswordRequest starts the reset flow for a mobile number.
type ForgotPasswordRequest struct {
	Mobile string `json:"mobile" validate:"required,in_mobile"`
}

// ResetPasswordRequest completes the reset flow.
type ResetPasswordRequest struct {
	Mobile      string `json:"mobile" validate:"required,in_mobile"`
	OTP         string `json:"otp" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,strong_password"`
}

// CheckMobileRequest asks whether an account exists for a mobile number.
type CheckMobileRequest struct {
	Mobile string `json:"mobile" validate:"required,in_mobile"`
}

// AuthResponse carries the registrant and a fresh session token.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}
