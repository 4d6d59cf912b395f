package apperrors

import (
	"fmt"
	"net/http"
)

// Predeclared errors for the registration and login domain. The credential
// errors deliberately share one message so callers cannot distinguish a
// missing account, an unverified account and a wrong password.
var (
	ErrInvalidCredentials = New(CodeInvalidCredentials,
		"Invalid credentials. Please check your Department ID, email/mobile, and password.",
		http.StatusUnauthorized)
	ErrUnauthorized = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrInvalidToken = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)

	ErrUserNotFound   = New(CodeNotFound, "User not found", http.StatusNotFound)
	ErrMobileNotFound = New(CodeNotFound, "No account found with this mobile number", http.StatusNotFound)

	ErrWeakPassword = New(CodeWeakPassword,
		"Password must be at least 6 characters with uppercase, lowercase, and special character",
		http.StatusBadRequest)
	ErrInvalidOTP = New(CodeInvalidOTP, "Invalid OTP. Please try again.", http.StatusBadRequest)

	ErrAlreadyPaid = New(CodeAlreadyPaid,
		"Management fee is already paid and valid", http.StatusBadRequest)

	ErrSessionNotFound = New(CodeSessionNotFound,
		"Registration session not found or expired", http.StatusNotFound)
)

// DuplicateIdentity names the colliding unique field, e.g. "Aadhar number".
func DuplicateIdentity(field string) *AppError {
	return New(CodeDuplicateIdentity,
		fmt.Sprintf("User with this %s already exists", field),
		http.StatusBadRequest)
}

// ValidationError carries field-scoped messages back to the client.
func ValidationError(fields []string) *AppError {
	return New(CodeValidationFailed, "Validation failed", http.StatusBadRequest).WithFields(fields)
}

// BadRequest is the catch-all for malformed request bodies.
func BadRequest(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}

// OTPCooldown rejects a resend attempt inside the cooldown window.
func OTPCooldown(secondsLeft int) *AppError {
	return New(CodeOTPCooldown,
		fmt.Sprintf("Please wait %d seconds before requesting a new code", secondsLeft),
		http.StatusBadRequest)
}

// InvalidStep rejects a wizard transition that the state machine forbids.
func InvalidStep(message string) *AppError {
	return New(CodeInvalidStep, message, http.StatusBadRequest)
}

// InternalError hides the cause behind a generic 500.
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

// DatabaseError marks store failures that are not business outcomes.
func DatabaseError(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "Internal server error", http.StatusInternalServerError)
}
