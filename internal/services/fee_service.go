package services

import (
	"context"
	"time"

	"savaan_backend/internal/logger"
	"savaan_backend/internal/models"
	"savaan_backend/internal/repositories"
	"savaan_backend/internal/services/dto"
	"savaan_backend/pkg/apperrors"
)

// FeeService manages the yearly management fee of a registrant.
type FeeService interface {
	Pay(ctx context.Context, mobile string) (*dto.FeeReceipt, error)
	Status(ctx context.Context, mobile string) (*dto.FeeStatus, error)
}

type feeService struct {
	userRepo repositories.UserRepository
	now      func() time.Time
}

func NewFeeService(userRepo repositories.UserRepository) FeeService {
	return &feeService{userRepo: userRepo, now: time.Now}
}

// Pay records a fee payment dated now and due again in exactly one calendar
// year. A payment attempt inside a still-valid period is rejected; once the
// period has lapsed a new payment opens a fresh year.
func (s *feeService) Pay(ctx context.Context, mobile string) (*dto.FeeReceipt, error) {
	user, err := s.findByMobile(ctx, mobile)
	if err != nil {
		return nil, err
	}

	now := s.now()
	fee := user.ManagementFee
	if fee.Paid && fee.NextDue != nil && now.Before(*fee.NextDue) {
		return nil, apperrors.ErrAlreadyPaid
	}

	nextDue := now.AddDate(1, 0, 0)
	updated := models.ManagementFee{
		Paid:        true,
		PaymentDate: &now,
		NextDue:     &nextDue,
		Amount:      models.DefaultManagementFeeAmount,
	}
	if err := s.userRepo.UpdateManagementFee(ctx, user.ID.Hex(), updated); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	logger.CtxInfo(ctx, "Management fee paid", "mobile", mobile, "nextDue", nextDue)
	return &dto.FeeReceipt{
		PaymentDate: now,
		NextDue:     nextDue,
		Amount:      updated.Amount,
	}, nil
}

// Status reports the current fee state. DaysLeft counts remaining whole or
// partial days until the due date, so the day before expiry reports 1.
func (s *feeService) Status(ctx context.Context, mobile string) (*dto.FeeStatus, error) {
	user, err := s.findByMobile(ctx, mobile)
	if err != nil {
		return nil, err
	}

	fee := user.ManagementFee
	status := &dto.FeeStatus{
		Paid:        fee.Paid,
		PaymentDate: fee.PaymentDate,
		NextDue:     fee.NextDue,
		Amount:      fee.Amount,
	}

	if fee.Paid && fee.NextDue != nil {
		now := s.now()
		if now.After(*fee.NextDue) {
			status.IsExpired = true
		} else {
			status.DaysLeft = daysUntil(now, *fee.NextDue)
		}
	}

	return status, nil
}

func (s *feeService) findByMobile(ctx context.Context, mobile string) (*models.User, error) {
	user, err := s.userRepo.FindByMobile(ctx, mobile)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}
	return user, nil
}

// daysUntil rounds up, so any positive remainder counts as a day.
func daysUntil(from, to time.Time) int {
	d := to.Sub(from)
	if d <= 0 {
		return 0
	}
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}
