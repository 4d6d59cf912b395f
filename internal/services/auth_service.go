package services

import (
	"context"
	"strings"
	"time"

	"savaan_backend/internal/auth"
	"savaan_backend/internal/logger"
	"savaan_backend/internal/models"
	"savaan_backend/internal/otp"
	"savaan_backend/internal/repositories"
	"savaan_backend/internal/services/dto"
	"savaan_backend/internal/validator"
	"savaan_backend/pkg/apperrors"
)

// AuthService covers registration, credential login, password recovery and
// session resolution.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	ForgotPassword(ctx context.Context, mobile string) (string, error)
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
	Profile(ctx context.Context, claims *auth.Claims) (*models.User, error)
	CheckMobile(ctx context.Context, mobile string) (bool, error)
	Users(ctx context.Context) ([]models.User, error)
}

type authService struct {
	userRepo  repositories.UserRepository
	validator *validator.Validator
	tokens    *auth.TokenManager
	otp       *otp.Issuer
	sender    otp.Sender
	now       func() time.Time
}

func NewAuthService(
	userRepo repositories.UserRepository,
	v *validator.Validator,
	tokens *auth.TokenManager,
	issuer *otp.Issuer,
	sender otp.Sender,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		validator: v,
		tokens:    tokens,
		otp:       issuer,
		sender:    sender,
		now:       time.Now,
	}
}

// Register validates and persists a new registrant and issues a session
// token. The existence pre-check only improves the error message; the store's
// unique indexes are the actual uniqueness authority, so a race between two
// concurrent registrations resolves at create time.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	req.Normalize()

	if err := s.validateRegistration(req); err != nil {
		return nil, err
	}

	dob, err := time.Parse("2006-01-02", req.DOB)
	if err != nil {
		return nil, apperrors.ValidationError([]string{"dob: Must be a valid date (YYYY-MM-DD)"})
	}

	existing, err := s.userRepo.FindByAnyIdentity(ctx, models.IdentityQuery{
		Email:        req.Email,
		Mobile:       req.Mobile,
		Aadhar:       req.Aadhar,
		PAN:          req.PAN,
		DepartmentID: req.DepartmentID,
	})
	if err != nil && !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.DatabaseError(err)
	}
	if existing != nil {
		return nil, apperrors.DuplicateIdentity(collidingField(existing, req))
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Mobile:         req.Mobile,
		Email:          req.Email,
		PasswordHash:   hash,
		Aadhar:         req.Aadhar,
		PAN:            req.PAN,
		DepartmentID:   req.DepartmentID,
		Name:           req.Name,
		Gender:         models.Gender(req.Gender),
		DOB:            dob,
		HomePhone:      req.HomePhone,
		BloodGroup:     req.BloodGroup,
		Department:     req.Department,
		OtherDepartment: req.OtherDepartment,
		JobDescription: req.JobDescription,
		Block:          req.Block,
		Post:           req.Post,
		SubPost:        req.SubPost,
		JobAddress:     req.JobAddress,
		PinCode:        req.PinCode,
		District:       req.District,
		FirstNominee:   req.FirstNominee,
		SecondNominee:  req.SecondNominee,
		HomeAddress:    req.HomeAddress,
		HomeDistrict:   req.HomeDistrict,
		HomePinCode:    req.HomePinCode,
		Disease:        req.Disease,
		CauseOfIllness: req.CauseOfIllness,

		// No real identity-verification step exists yet, so records are
		// marked verified at creation.
		IsVerified:       true,
		RegistrationDate: s.now(),
		Status:           models.UserStatusActive,
		ManagementFee:    models.ManagementFee{Amount: models.DefaultManagementFeeAmount},
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		var dup *repositories.DuplicateKeyError
		if apperrors.As(err, &dup) {
			return nil, apperrors.DuplicateIdentity(dup.Field)
		}
		return nil, apperrors.DatabaseError(err)
	}

	token, err := s.tokens.Generate(created.ID.Hex(), created.Email, created.DepartmentID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Registrant created", "mobile", created.Mobile, "departmentId", created.DepartmentID)
	return &dto.AuthResponse{User: created, Token: token}, nil
}

// Login authenticates by department ID plus email-or-mobile. The error is
// identical for a missing account, an unverified account and a wrong password
// so accounts cannot be enumerated.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByDepartmentAndIdentity(ctx, req.DepartmentID, normalizeIdentity(req.EmailOrMobile))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.DatabaseError(err)
	}

	if !user.IsVerified {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	now := s.now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID.Hex(), now); err != nil {
		// A failed bookkeeping write must not block the login.
		logger.CtxWithError(ctx, "Failed to update last login", err, "userId", user.ID.Hex())
	} else {
		user.LastLogin = &now
	}

	token, err := s.tokens.Generate(user.ID.Hex(), user.Email, user.DepartmentID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{User: user, Token: token}, nil
}

// ForgotPassword issues a single-use reset code for a known mobile number.
// The code is returned to the caller so development mode can echo it; the
// handler decides whether it leaves the process.
func (s *authService) ForgotPassword(ctx context.Context, mobile string) (string, error) {
	user, err := s.userRepo.FindByMobile(ctx, mobile)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return "", apperrors.ErrMobileNotFound
		}
		return "", apperrors.DatabaseError(err)
	}

	code, err := s.otp.Issue(otp.PurposePasswordReset, mobile)
	if err != nil {
		return "", err
	}

	if sendErr := s.sender.Send(mobile, user.Email, code); sendErr != nil {
		logger.CtxWithError(ctx, "Failed to deliver reset code", sendErr, "mobile", mobile)
	}

	return code, nil
}

// ResetPassword consumes the code and overwrites the password hash. Sessions
// issued before the reset become invalid via passwordChangedAt.
func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	user, err := s.userRepo.FindByMobile(ctx, req.Mobile)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrMobileNotFound
		}
		return apperrors.DatabaseError(err)
	}

	// Strength check first so a weak password does not burn the code.
	if err := auth.ValidateNewPassword(req.NewPassword); err != nil {
		return err
	}
	if err := s.otp.Verify(otp.PurposePasswordReset, req.Mobile, req.OTP); err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID.Hex(), hash, s.now()); err != nil {
		return apperrors.DatabaseError(err)
	}

	logger.CtxInfo(ctx, "Password reset", "mobile", req.Mobile)
	return nil
}

// Profile resolves the calling registrant from verified claims. Tokens issued
// before the latest password change are rejected.
func (s *authService) Profile(ctx context.Context, claims *auth.Claims) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}

	if user.PasswordChangedAt != nil && claims.IssuedBefore(*user.PasswordChangedAt) {
		return nil, apperrors.ErrInvalidToken
	}

	return user, nil
}

func (s *authService) CheckMobile(ctx context.Context, mobile string) (bool, error) {
	_, err := s.userRepo.FindByMobile(ctx, mobile)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return false, nil
		}
		return false, apperrors.DatabaseError(err)
	}
	return true, nil
}

func (s *authService) Users(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return users, nil
}

// validateRegistration runs the struct rules plus the shared nominee rules,
// the same checks the wizard applies per step.
func (s *authService) validateRegistration(req *dto.RegisterRequest) error {
	fieldErrs := make(map[string]string)

	if err := s.validator.Validate(req); err != nil {
		var vErr *validator.ValidationError
		if !apperrors.As(err, &vErr) {
			return apperrors.InternalError(err)
		}
		for k, v := range vErr.Errors {
			fieldErrs[k] = v
		}
	}

	for k, v := range validator.ValidateNominee("firstNominee", &req.FirstNominee) {
		fieldErrs[k] = v
	}
	if req.SecondNominee != nil {
		for k, v := range validator.ValidateSecondNominee(req.SecondNominee) {
			fieldErrs[k] = v
		}
	}

	if len(fieldErrs) > 0 {
		return apperrors.ValidationError((&validator.ValidationError{Errors: fieldErrs}).Messages())
	}
	return nil
}

// collidingField names which unique field the existing record collides on,
// checked in the store's index order.
func collidingField(existing *models.User, req *dto.RegisterRequest) string {
	switch {
	case existing.Email == req.Email:
		return "email"
	case existing.Mobile == req.Mobile:
		return "mobile number"
	case existing.Aadhar == req.Aadhar:
		return "Aadhar number"
	case existing.PAN == req.PAN:
		return "PAN number"
	case existing.DepartmentID == req.DepartmentID:
		return "department ID"
	}
	return "user"
}

// normalizeIdentity lowercases email identifiers; mobile numbers pass
// through untouched.
func normalizeIdentity(identity string) string {
	if validator.IsValidMobile(identity) {
		return identity
	}
	return strings.ToLower(strings.TrimSpace(identity))
}
