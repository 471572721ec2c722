package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/confiteria/conference-system/internal/core/domain"
	"github.com/confiteria/conference-system/internal/core/ports"
	"github.com/confiteria/conference-system/internal/core/security"
)

// DispatchGuard abstracts the once-only send guard (Redis). Acquire wins at
// most once per participation record until Release or expiry; it keeps a
// crashed worker from blocking the record forever.
type DispatchGuard interface {
	Acquire(ctx context.Context, participationID string) (bool, error)
	Release(ctx context.Context, participationID string) error
}

type TicketService struct {
	participation ports.ParticipationRepository
	guard         DispatchGuard
	notifier      ports.TicketNotifier
	logger        zerolog.Logger
}

func NewTicketService(participation ports.ParticipationRepository, guard DispatchGuard, notifier ports.TicketNotifier, logger zerolog.Logger) *TicketService {
	return &TicketService{participation: participation, guard: guard, notifier: notifier, logger: logger}
}

// PendingJobs builds one dispatch job per eligible participant. Read-only;
// the filter is the same eligibility predicate the admin listing uses.
func (s *TicketService) PendingJobs(ctx context.Context, actor security.Actor) ([]ports.TicketJob, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	participants, err := s.participation.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}

	jobs := make([]ports.TicketJob, 0, len(participants))
	for _, p := range participants {
		if !p.Participation.EligibleForTicket() {
			continue
		}
		jobs = append(jobs, ports.TicketJob{
			UserID:          p.User.ID,
			Email:           p.User.Email,
			Name:            p.User.Name,
			ParticipationID: p.Participation.ID,
		})
	}
	return jobs, nil
}

// Process sends one ticket. The guard plus the nil-guarded stamp make the
// operation safe under retries and concurrent dispatch runs: once the send
// date is set, the record never re-enters the eligible set.
func (s *TicketService) Process(ctx context.Context, job ports.TicketJob) error {
	acquired, err := s.guard.Acquire(ctx, job.ParticipationID)
	if err != nil {
		return fmt.Errorf("ticket dispatch: acquire guard: %w", err)
	}
	if !acquired {
		s.logger.Debug().Str("participation_id", job.ParticipationID).Msg("dispatch already in flight, skipping")
		return nil
	}

	// Re-read under the guard: the record may have been stamped by an
	// earlier run between listing and processing.
	record, err := s.participation.FindByID(ctx, job.ParticipationID)
	if err != nil {
		s.releaseGuard(ctx, job.ParticipationID)
		return err
	}
	if !record.EligibleForTicket() {
		s.releaseGuard(ctx, job.ParticipationID)
		s.logger.Debug().Str("participation_id", job.ParticipationID).Msg("no longer eligible, skipping")
		return nil
	}

	if err := s.notifier.Send(ctx, domain.User{ID: job.UserID, Name: job.Name, Email: job.Email}, job.ParticipationID); err != nil {
		// Release so a later dispatch run can retry the send.
		s.releaseGuard(ctx, job.ParticipationID)
		return fmt.Errorf("ticket dispatch: send: %w", err)
	}

	stamped, err := s.participation.StampTicketSent(ctx, job.ParticipationID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("ticket dispatch: stamp: %w", err)
	}
	if !stamped {
		s.logger.Warn().Str("participation_id", job.ParticipationID).Msg("ticket sent but record was already stamped")
		return nil
	}

	s.logger.Info().
		Str("user_id", job.UserID).
		Str("participation_id", job.ParticipationID).
		Msg("ticket dispatched")
	return nil
}

func (s *TicketService) releaseGuard(ctx context.Context, participationID string) {
	if err := s.guard.Release(ctx, participationID); err != nil {
		s.logger.Warn().Err(err).Str("participation_id", participationID).Msg("failed to release dispatch guard")
	}
}
