package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"savaan_backend/internal/models"
	"savaan_backend/internal/repositories"
	"savaan_backend/pkg/apperrors"
)

func seedFeeUser(t *testing.T, repo repositories.UserRepository, mobile string) *models.User {
	t.Helper()
	user, err := repo.Create(context.Background(), &models.User{
		Mobile:        mobile,
		Email:         mobile + "@gmail.com",
		Aadhar:        "1111" + mobile[2:],
		PAN:           "ABCDE" + mobile[:4] + "F",
		DepartmentID:  "DEPT-" + mobile,
		ManagementFee: models.ManagementFee{Amount: models.DefaultManagementFeeAmount},
	})
	require.NoError(t, err)
	return user
}

func newFeeService(repo repositories.UserRepository, now time.Time) (*feeService, *time.Time) {
	clock := now
	svc := &feeService{userRepo: repo, now: func() time.Time { return clock }}
	return svc, &clock
}

func TestFeePayAndStatus(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	seedFeeUser(t, repo, "9876500001")
	start := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	svc, clock := newFeeService(repo, start)
	ctx := context.Background()

	status, err := svc.Status(ctx, "9876500001")
	require.NoError(t, err)
	assert.False(t, status.Paid)
	assert.Zero(t, status.DaysLeft)

	receipt, err := svc.Pay(ctx, "9876500001")
	require.NoError(t, err)
	assert.Equal(t, 499, receipt.Amount)
	assert.Equal(t, start, receipt.PaymentDate)
	assert.Equal(t, start.AddDate(1, 0, 0), receipt.NextDue)

	status, err = svc.Status(ctx, "9876500001")
	require.NoError(t, err)
	assert.True(t, status.Paid)
	assert.False(t, status.IsExpired)
	assert.Equal(t, 365, status.DaysLeft)

	// The day before the due date one day remains.
	*clock = start.AddDate(1, 0, 0).Add(-24 * time.Hour)
	status, err = svc.Status(ctx, "9876500001")
	require.NoError(t, err)
	assert.Equal(t, 1, status.DaysLeft)
	assert.False(t, status.IsExpired)

	// A partial day still counts as one.
	*clock = start.AddDate(1, 0, 0).Add(-time.Hour)
	status, _ = svc.Status(ctx, "9876500001")
	assert.Equal(t, 1, status.DaysLeft)
}

func TestFeeRejectsSecondPaymentInValidYear(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	seedFeeUser(t, repo, "9876500002")
	start := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	svc, clock := newFeeService(repo, start)
	ctx := context.Background()

	_, err := svc.Pay(ctx, "9876500002")
	require.NoError(t, err)

	_, err = svc.Pay(ctx, "9876500002")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyPaid)

	// One day before expiry it is still a valid year.
	*clock = start.AddDate(1, 0, 0).Add(-24 * time.Hour)
	_, err = svc.Pay(ctx, "9876500002")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyPaid)
}

func TestFeeExpiryAndRenewal(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	seedFeeUser(t, repo, "9876500003")
	start := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	svc, clock := newFeeService(repo, start)
	ctx := context.Background()

	_, err := svc.Pay(ctx, "9876500003")
	require.NoError(t, err)

	// Past the due date the fee reads expired and a renewal is accepted.
	*clock = start.AddDate(1, 0, 0).Add(time.Hour)
	status, err := svc.Status(ctx, "9876500003")
	require.NoError(t, err)
	assert.True(t, status.IsExpired)
	assert.Zero(t, status.DaysLeft)

	receipt, err := svc.Pay(ctx, "9876500003")
	require.NoError(t, err)
	assert.Equal(t, clock.AddDate(1, 0, 0), receipt.NextDue, "renewal opens a fresh year")
}

func TestFeeUnknownMobile(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	svc, _ := newFeeService(repo, time.Now())

	_, err := svc.Pay(context.Background(), "9876500004")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	_, err = svc.Status(context.Background(), "9876500004")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
