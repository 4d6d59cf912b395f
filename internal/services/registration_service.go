package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"savaan_backend/internal/logger"
	"savaan_backend/internal/otp"
	"savaan_backend/internal/repositories"
	"savaan_backend/internal/services/dto"
	"savaan_backend/internal/validator"
	"savaan_backend/internal/wizard"
	"savaan_backend/pkg/apperrors"
)

// sessionTTL is the idle lifetime of a wizard session. Every touched session
// gets a fresh window.
const sessionTTL = 30 * time.Minute

// RegistrationService drives server-side wizard sessions: one session per
// registration attempt, advanced step by step and submitted atomically at the
// end.
type RegistrationService interface {
	Start(ctx context.Context, req *dto.StartSessionRequest) (*dto.SessionResponse, error)
	Get(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	ResendCode(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	VerifyCode(ctx context.Context, sessionID string, req *dto.VerifyCodeStep) (*dto.SessionResponse, error)
	BasicDetails(ctx context.Context, sessionID string, req *dto.BasicDetailsStep) (*dto.SessionResponse, error)
	JobDetails(ctx context.Context, sessionID string, req *dto.JobDetailsStep) (*dto.SessionResponse, error)
	NomineeDetails(ctx context.Context, sessionID string, req *dto.NomineeDetailsStep) (*dto.SessionResponse, error)
	OtherDetails(ctx context.Context, sessionID string, req *dto.OtherDetailsStep) (*dto.SessionResponse, error)
	Back(ctx context.Context, sessionID string, req *dto.BackRequest) (*dto.SessionResponse, error)
	Submit(ctx context.Context, sessionID string) (*dto.AuthResponse, error)
	Sweep()
}

type session struct {
	id        string
	state     wizard.State
	updatedAt time.Time
}

type registrationService struct {
	mu       sync.Mutex
	sessions map[string]*session

	machine  *wizard.Machine
	userRepo repositories.UserRepository
	auth     AuthService
	otp      *otp.Issuer
	sender   otp.Sender

	// echoOTP exposes issued codes in responses; only ever true in
	// development.
	echoOTP bool
	now     func() time.Time
}

func NewRegistrationService(
	machine *wizard.Machine,
	userRepo repositories.UserRepository,
	auth AuthService,
	issuer *otp.Issuer,
	sender otp.Sender,
	echoOTP bool,
) RegistrationService {
	return &registrationService{
		sessions: make(map[string]*session),
		machine:  machine,
		userRepo: userRepo,
		auth:     auth,
		otp:      issuer,
		sender:   sender,
		echoOTP:  echoOTP,
		now:      time.Now,
	}
}

// Start opens a session for a mobile number and sends the verification code.
// An already-registered mobile is rejected up front so nobody fills four
// steps for nothing.
func (s *registrationService) Start(ctx context.Context, req *dto.StartSessionRequest) (*dto.SessionResponse, error) {
	if _, err := s.userRepo.FindByMobile(ctx, req.Mobile); err == nil {
		return nil, apperrors.DuplicateIdentity("mobile number")
	} else if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.DatabaseError(err)
	}

	code, err := s.otp.Issue(otp.PurposeRegistration, req.Mobile)
	if err != nil {
		return nil, err
	}
	if sendErr := s.sender.Send(req.Mobile, "", code); sendErr != nil {
		logger.CtxWithError(ctx, "Failed to deliver verification code", sendErr, "mobile", req.Mobile)
	}

	sess := &session{
		id:        uuid.NewString(),
		state:     wizard.NewState(req.Mobile),
		updatedAt: s.now(),
	}

	st := sess.state.Clone()

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	logger.CtxInfo(ctx, "Registration session started", "sessionId", sess.id, "mobile", req.Mobile)
	return s.response(sess.id, st, code), nil
}

func (s *registrationService) Get(_ context.Context, sessionID string) (*dto.SessionResponse, error) {
	st, err := s.snapshot(sessionID)
	if err != nil {
		return nil, err
	}
	return s.response(sessionID, st, ""), nil
}

// ResendCode reissues the verification code, subject to the issuer cooldown.
func (s *registrationService) ResendCode(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	st, err := s.snapshot(sessionID)
	if err != nil {
		return nil, err
	}
	if st.Step != wizard.StepVerification {
		return nil, apperrors.InvalidStep("verification code can only be resent at the verification step")
	}

	code, err := s.otp.Issue(otp.PurposeRegistration, st.Form.Mobile)
	if err != nil {
		return nil, err
	}
	if sendErr := s.sender.Send(st.Form.Mobile, "", code); sendErr != nil {
		logger.CtxWithError(ctx, "Failed to deliver verification code", sendErr, "mobile", st.Form.Mobile)
	}

	return s.response(sessionID, st, code), nil
}

func (s *registrationService) VerifyCode(_ context.Context, sessionID string, req *dto.VerifyCodeStep) (*dto.SessionResponse, error) {
	return s.advance(sessionID, func(st wizard.State) (wizard.State, map[string]string) {
		codeOK := s.otp.Verify(otp.PurposeRegistration, st.Form.Mobile, req.OTP) == nil
		return s.machine.AdvanceVerification(st, codeOK)
	})
}

func (s *registrationService) BasicDetails(_ context.Context, sessionID string, req *dto.BasicDetailsStep) (*dto.SessionResponse, error) {
	return s.advance(sessionID, func(st wizard.State) (wizard.State, map[string]string) {
		return s.machine.AdvanceBasicDetails(st, *req)
	})
}

func (s *registrationService) JobDetails(_ context.Context, sessionID string, req *dto.JobDetailsStep) (*dto.SessionResponse, error) {
	return s.advance(sessionID, func(st wizard.State) (wizard.State, map[string]string) {
		return s.machine.AdvanceJobDetails(st, *req)
	})
}

func (s *registrationService) NomineeDetails(_ context.Context, sessionID string, req *dto.NomineeDetailsStep) (*dto.SessionResponse, error) {
	return s.advance(sessionID, func(st wizard.State) (wizard.State, map[string]string) {
		return s.machine.AdvanceNomineeDetails(st, *req)
	})
}

func (s *registrationService) OtherDetails(_ context.Context, sessionID string, req *dto.OtherDetailsStep) (*dto.SessionResponse, error) {
	return s.advance(sessionID, func(st wizard.State) (wizard.State, map[string]string) {
		return s.machine.AdvanceOtherDetails(st, *req)
	})
}

// Back jumps to an earlier step. Data entered so far survives the jump.
func (s *registrationService) Back(_ context.Context, sessionID string, req *dto.BackRequest) (*dto.SessionResponse, error) {
	target, ok := wizard.ParseStep(req.Step)
	if !ok {
		return nil, apperrors.InvalidStep("unknown step: " + req.Step)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.find(sessionID)
	if err != nil {
		return nil, err
	}
	next, err := s.machine.Back(sess.state, target)
	if err != nil {
		return nil, apperrors.InvalidStep(err.Error())
	}
	sess.state = next
	sess.updatedAt = s.now()
	return s.response(sess.id, next.Clone(), ""), nil
}

// Submit finalizes the review and creates the registrant in one atomic step.
// Any failure, validation or duplicate identity alike, leaves the session at
// Review with all data intact so the client can correct and resubmit.
func (s *registrationService) Submit(ctx context.Context, sessionID string) (*dto.AuthResponse, error) {
	st, err := s.snapshot(sessionID)
	if err != nil {
		return nil, err
	}

	form, errs := s.machine.Finalize(st)
	if len(errs) > 0 {
		return nil, stepError(errs)
	}

	resp, err := s.auth.Register(ctx, &form)
	if err != nil {
		return nil, err
	}

	// The session may have been swept while the create was in flight; the
	// registrant exists either way, so a missing session is not an error.
	s.mu.Lock()
	if sess, findErr := s.find(sessionID); findErr == nil {
		sess.state = s.machine.Submitted(sess.state)
		// Held wizard data is cleared on success; only the terminal
		// step remains until the session expires.
		sess.state.Form = dto.RegisterRequest{Mobile: form.Mobile}
		sess.updatedAt = s.now()
	}
	s.mu.Unlock()

	logger.CtxInfo(ctx, "Registration submitted", "sessionId", sessionID, "mobile", form.Mobile)
	return resp, nil
}

// Sweep drops idle sessions. Called periodically from app bootstrap.
func (s *registrationService) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-sessionTTL)
	for id, sess := range s.sessions {
		if sess.updatedAt.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

// find resolves a live session and evicts it when expired. Callers hold s.mu.
func (s *registrationService) find(sessionID string) (*session, error) {
	sess, ok := s.sessions[sessionID]
	if !ok || s.now().Sub(sess.updatedAt) > sessionTTL {
		delete(s.sessions, sessionID)
		return nil, apperrors.ErrSessionNotFound
	}
	return sess, nil
}

// snapshot returns an independent copy of the session state. Readers never
// touch live session memory outside the lock.
func (s *registrationService) snapshot(sessionID string) (wizard.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.find(sessionID)
	if err != nil {
		return wizard.State{}, err
	}
	return sess.state.Clone(), nil
}

// advance runs one forward transition in a single critical section, so a
// concurrent read or Sweep can never observe a half-applied step. A non-empty
// error map blocks the transition and surfaces as a validation error.
func (s *registrationService) advance(sessionID string, fn func(wizard.State) (wizard.State, map[string]string)) (*dto.SessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.find(sessionID)
	if err != nil {
		return nil, err
	}

	next, errs := fn(sess.state.Clone())
	if len(errs) > 0 {
		return nil, stepError(errs)
	}
	sess.state = next
	sess.updatedAt = s.now()
	return s.response(sess.id, next.Clone(), ""), nil
}

// stepError converts the wizard error map into the response error shape. A
// lone step-mismatch entry maps to the step error rather than a field one.
func stepError(errs map[string]string) error {
	if msg, ok := errs["step"]; ok && len(errs) == 1 {
		return apperrors.InvalidStep(msg)
	}
	return apperrors.ValidationError((&validator.ValidationError{Errors: errs}).Messages())
}

// response builds the wire shape from a state copy that no live session
// aliases.
func (s *registrationService) response(sessionID string, st wizard.State, code string) *dto.SessionResponse {
	form := st.Form
	form.Password = "" // never echoed

	resp := &dto.SessionResponse{
		SessionID: sessionID,
		Step:      st.Step.String(),
		Form:      form,
	}
	if s.echoOTP && code != "" {
		resp.OTP = code
	}
	return resp
}
