package ports

import (
	"context"

	"github.com/confiteria/conference-system/internal/core/domain"
	"github.com/confiteria/conference-system/internal/core/security"
)

// TicketJob is a single ticket-dispatch unit handed to the worker pool.
type TicketJob struct {
	UserID          string
	Email           string
	Name            string
	ParticipationID string
}

// TicketService owns the dispatch side of ticketing: the eligibility
// evaluation itself stays in RegistrationService; this component performs
// the send and stamps the dispatch timestamp.
type TicketService interface {
	// PendingJobs builds one dispatch job per currently eligible user.
	// Admin-gated, read-only; the transport layer hands the jobs to the
	// dispatcher worker pool.
	PendingJobs(ctx context.Context, actor security.Actor) ([]TicketJob, error)
	// Process sends one ticket: dedup guard, notify, stamp. Called by the
	// dispatcher workers.
	Process(ctx context.Context, job TicketJob) error
}

// TicketNotifier delivers the ticket to the participant. The production
// implementation is the mail gateway; tests use a recording stub.
type TicketNotifier interface {
	Send(ctx context.Context, user domain.User, participationID string) error
}
