package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/confiteria/conference-system/internal/core/domain"
	"github.com/confiteria/conference-system/internal/core/ports"
	"github.com/confiteria/conference-system/internal/core/security"
)

type RegistrationService struct {
	participation ports.ParticipationRepository
	vouchers      ports.VoucherRepository
	logger        zerolog.Logger
}

func NewRegistrationService(participation ports.ParticipationRepository, vouchers ports.VoucherRepository, logger zerolog.Logger) *RegistrationService {
	return &RegistrationService{participation: participation, vouchers: vouchers, logger: logger}
}

// Register binds a voucher to a user and creates the participation record.
// A voucher can back at most one registration, and a user registers once.
func (s *RegistrationService) Register(ctx context.Context, actor security.Actor, userID, voucherCode string) (*domain.ParticipationData, error) {
	if !actor.CanActAs(userID) {
		return nil, domain.ErrForbidden
	}

	voucher, err := s.vouchers.FindByCode(ctx, voucherCode)
	if err != nil {
		return nil, err
	}

	if _, err := s.participation.FindByUserID(ctx, userID); err == nil {
		return nil, domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrParticipationNotFound) {
		return nil, err
	}

	if _, err := s.participation.FindByVoucherID(ctx, voucher.ID); err == nil {
		return nil, domain.ErrVoucherAlreadyUsed
	} else if !errors.Is(err, domain.ErrParticipationNotFound) {
		return nil, err
	}

	created, err := s.participation.Create(ctx, &domain.ParticipationData{
		UserID:           userID,
		VoucherID:        voucher.ID,
		RegistrationDate: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("register participant: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("voucher_id", voucher.ID).
		Msg("participant registered")
	return created, nil
}

// CheckIn stamps the arrival date. Idempotent: the store keeps the first
// timestamp when the badge is scanned twice.
func (s *RegistrationService) CheckIn(ctx context.Context, actor security.Actor, participationID string) (*domain.ParticipationData, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}

	record, err := s.participation.SetArrival(ctx, participationID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("participation_id", participationID).Msg("participant checked in")
	return record, nil
}

// UsersToSendTickets evaluates ticket eligibility over the full population:
// voucher attached, ticket not sent yet. Read-only and safe to call
// repeatedly; stamping happens in the dispatch path.
func (s *RegistrationService) UsersToSendTickets(ctx context.Context, actor security.Actor) ([]domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	participants, err := s.participation.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}
	return domain.EligibleForTicket(participants), nil
}

// PresentAtConference lists users whose record carries an arrival date.
func (s *RegistrationService) PresentAtConference(ctx context.Context, actor security.Actor) ([]domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	participants, err := s.participation.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}
	return domain.PresentAtConference(participants), nil
}
