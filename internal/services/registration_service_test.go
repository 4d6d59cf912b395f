package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"savaan_backend/internal/auth"
	"savaan_backend/internal/models"
	"savaan_backend/internal/otp"
	"savaan_backend/internal/repositories"
	"savaan_backend/internal/services/dto"
	"savaan_backend/internal/validator"
	"savaan_backend/internal/wizard"
	"savaan_backend/pkg/apperrors"
)

func newWizardFixture(t *testing.T) (RegistrationService, *registrationService, repositories.UserRepository) {
	t.Helper()
	repo := repositories.NewMemoryUserRepository()
	v := validator.New()
	issuer := otp.NewIssuer(10*time.Minute, 0)
	authSvc := NewAuthService(repo, v, auth.NewTokenManager("test-secret", time.Hour), issuer, &otp.LogSender{})
	svc := NewRegistrationService(wizard.NewMachine(v), repo, authSvc, issuer, &otp.LogSender{}, true)
	return svc, svc.(*registrationService), repo
}

func driveToReview(t *testing.T, svc RegistrationService, mobile, suffix string) string {
	t.Helper()
	ctx := context.Background()

	started, err := svc.Start(ctx, &dto.StartSessionRequest{Mobile: mobile})
	require.NoError(t, err)
	id := started.SessionID
	require.NotEmpty(t, started.OTP, "echo mode returns the code")

	_, err = svc.VerifyCode(ctx, id, &dto.VerifyCodeStep{OTP: started.OTP})
	require.NoError(t, err)

	_, err = svc.BasicDetails(ctx, id, &dto.BasicDetailsStep{
		Name: "Ravi Kumar", Email: "ravi" + suffix + "@gmail.com", Password: "Secret@1",
		Gender: "Male", DOB: "1990-05-15",
		Aadhar: "1234567890" + suffix, PAN: "ABCDE12" + suffix + "F",
	})
	require.NoError(t, err)

	_, err = svc.JobDetails(ctx, id, &dto.JobDetailsStep{
		Department: "Education", DepartmentID: "DEPT-" + suffix,
		JobDescription: "Teacher", Block: "Central", Post: "Senior Teacher",
		JobAddress: "School Road 1", PinCode: "800001", District: "Patna",
	})
	require.NoError(t, err)

	_, err = svc.NomineeDetails(ctx, id, &dto.NomineeDetailsStep{
		FirstNominee: models.Nominee{
			Name: "Sita Kumar", Relation: "Spouse", Mobile: "9123456789",
			BankName: "SBI", AccountNo: "123456789012", IFSC: "SBIN0001234",
			Branch: "Patna Main",
		},
	})
	require.NoError(t, err)

	resp, err := svc.OtherDetails(ctx, id, &dto.OtherDetailsStep{
		HomeAddress: "Home Street 5", HomeDistrict: "Patna", HomePinCode: "800002",
	})
	require.NoError(t, err)
	require.Equal(t, "review", resp.Step)
	return id
}

func TestWizardSubmitCreatesUser(t *testing.T) {
	svc, _, repo := newWizardFixture(t)
	ctx := context.Background()

	id := driveToReview(t, svc, "9876543251", "51")
	resp, err := svc.Submit(ctx, id)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	stored, err := repo.FindByMobile(ctx, "9876543251")
	require.NoError(t, err)
	assert.Equal(t, "ravi51@gmail.com", stored.Email)

	// The session survives in its terminal state with the data cleared.
	after, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "submitted", after.Step)
	assert.Empty(t, after.Form.Email)
}

func TestWizardSubmitStaysAtReviewOnDuplicate(t *testing.T) {
	svc, _, _ := newWizardFixture(t)
	ctx := context.Background()

	first := driveToReview(t, svc, "9876543252", "52")
	_, err := svc.Submit(ctx, first)
	require.NoError(t, err)

	// A second session reusing the same Aadhar fails at submit and keeps its
	// state so the client can go back and fix the field.
	second := driveToReview(t, svc, "9876543253", "53")
	// Walk back and collide the Aadhar with the first registrant.
	_, err = svc.Back(ctx, second, &dto.BackRequest{Step: "basic_details"})
	require.NoError(t, err)
	_, err = svc.BasicDetails(ctx, second, &dto.BasicDetailsStep{
		Name: "Ravi Kumar", Email: "ravi53@gmail.com", Password: "Secret@1",
		Gender: "Male", DOB: "1990-05-15",
		Aadhar: "123456789052", PAN: "ABCDE1253F",
	})
	require.NoError(t, err)
	for _, reenter := range []func() error{
		func() error {
			_, err := svc.JobDetails(ctx, second, &dto.JobDetailsStep{
				Department: "Education", DepartmentID: "DEPT-53",
				JobDescription: "Teacher", Block: "Central", Post: "Senior Teacher",
				JobAddress: "School Road 1", PinCode: "800001", District: "Patna",
			})
			return err
		},
		func() error {
			_, err := svc.NomineeDetails(ctx, second, &dto.NomineeDetailsStep{
				FirstNominee: models.Nominee{
					Name: "Sita Kumar", Relation: "Spouse", Mobile: "9123456789",
					BankName: "SBI", AccountNo: "123456789012", IFSC: "SBIN0001234",
					Branch: "Patna Main",
				},
			})
			return err
		},
		func() error {
			_, err := svc.OtherDetails(ctx, second, &dto.OtherDetailsStep{
				HomeAddress: "Home Street 5", HomeDistrict: "Patna", HomePinCode: "800002",
			})
			return err
		},
	} {
		require.NoError(t, reenter())
	}

	_, err = svc.Submit(ctx, second)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "User with this Aadhar number already exists", appErr.Message)

	state, err := svc.Get(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "review", state.Step, "failed submit keeps the session at review")
	assert.Equal(t, "ravi53@gmail.com", state.Form.Email, "data survives the failure")
}

func TestWizardSessionExpiry(t *testing.T) {
	svc, inner, _ := newWizardFixture(t)
	ctx := context.Background()

	started, err := svc.Start(ctx, &dto.StartSessionRequest{Mobile: "9876543254"})
	require.NoError(t, err)

	clock := time.Now()
	inner.now = func() time.Time { return clock }
	clock = clock.Add(sessionTTL + time.Minute)

	_, err = svc.Get(ctx, started.SessionID)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	inner.mu.Lock()
	remaining := len(inner.sessions)
	inner.mu.Unlock()
	assert.Zero(t, remaining, "expired lookup also evicts")
}

func TestWizardSweep(t *testing.T) {
	svc, inner, _ := newWizardFixture(t)
	ctx := context.Background()

	_, err := svc.Start(ctx, &dto.StartSessionRequest{Mobile: "9876543255"})
	require.NoError(t, err)

	clock := time.Now()
	inner.now = func() time.Time { return clock }
	clock = clock.Add(sessionTTL + time.Minute)
	svc.Sweep()

	inner.mu.Lock()
	remaining := len(inner.sessions)
	inner.mu.Unlock()
	assert.Zero(t, remaining)
}

// Reads, step transitions, and sweeps on one session must be safe to run
// concurrently; the race detector verifies no session state leaks outside the
// lock.
func TestWizardConcurrentReadsDuringSteps(t *testing.T) {
	svc, _, _ := newWizardFixture(t)
	ctx := context.Background()

	started, err := svc.Start(ctx, &dto.StartSessionRequest{Mobile: "9876543257"})
	require.NoError(t, err)
	id := started.SessionID
	_, err = svc.VerifyCode(ctx, id, &dto.VerifyCodeStep{OTP: started.OTP})
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_, _ = svc.Get(ctx, id)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			// Step mismatches are expected while the reader interleaves;
			// only memory safety is under test here.
			_, _ = svc.BasicDetails(ctx, id, &dto.BasicDetailsStep{
				Name: "Ravi Kumar", Email: "ravi57@gmail.com", Password: "Secret@1",
				Gender: "Male", DOB: "1990-05-15",
				Aadhar: "123456789057", PAN: "ABCDE1257F",
			})
			_, _ = svc.Back(ctx, id, &dto.BackRequest{Step: "basic_details"})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			svc.Sweep()
		}
	}()
	wg.Wait()

	state, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Contains(t, []string{"basic_details", "job_details"}, state.Step)
}

func TestWizardResendOnlyAtVerification(t *testing.T) {
	svc, _, _ := newWizardFixture(t)
	ctx := context.Background()

	started, err := svc.Start(ctx, &dto.StartSessionRequest{Mobile: "9876543256"})
	require.NoError(t, err)

	resent, err := svc.ResendCode(ctx, started.SessionID)
	require.NoError(t, err)
	require.NotEmpty(t, resent.OTP)

	// Only the latest code verifies.
	_, err = svc.VerifyCode(ctx, started.SessionID, &dto.VerifyCodeStep{OTP: resent.OTP})
	require.NoError(t, err)

	_, err = svc.ResendCode(ctx, started.SessionID)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeInvalidStep, appErr.Code)
}
