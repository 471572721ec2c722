package ports

import (
	"context"
	"time"

	"github.com/confiteria/conference-system/internal/core/domain"
)

// ParticipationRepository defines persistence for registration state.
type ParticipationRepository interface {
	Create(ctx context.Context, p *domain.ParticipationData) (*domain.ParticipationData, error)
	FindByID(ctx context.Context, id string) (*domain.ParticipationData, error)
	FindByUserID(ctx context.Context, userID string) (*domain.ParticipationData, error)
	FindByVoucherID(ctx context.Context, voucherID string) (*domain.ParticipationData, error)
	// SetArrival stamps the check-in time as a single atomic update. A
	// record that already has an arrival date keeps its original timestamp.
	SetArrival(ctx context.Context, id string, at time.Time) (*domain.ParticipationData, error)
	// StampTicketSent sets the ticket dispatch timestamp, guarded so it only
	// succeeds when a voucher is attached and no ticket was sent before.
	// Returns false without error when the guard rejects the update.
	StampTicketSent(ctx context.Context, id string, at time.Time) (bool, error)
	// ListParticipants returns the full population of participation records
	// joined with their owning users. Users without a record are absent.
	ListParticipants(ctx context.Context) ([]domain.Participant, error)
}
