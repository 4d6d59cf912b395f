package apperrors

// Cross-cutting error codes. Domain-specific predeclared errors live in
// domain.go.
const (
	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"

	// Generic business outcomes
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Authentication
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Domain
	CodeDuplicateIdentity ErrorCode = "DUPLICATE_IDENTITY"
	CodeInvalidOTP        ErrorCode = "INVALID_OTP"
	CodeOTPCooldown       ErrorCode = "OTP_COOLDOWN"
	CodeWeakPassword      ErrorCode = "WEAK_PASSWORD"
	CodeAlreadyPaid       ErrorCode = "ALREADY_PAID"
	CodeInvalidStep       ErrorCode = "INVALID_STEP"
	CodeSessionNotFound   ErrorCode = "SESSION_NOT_FOUND"
)
