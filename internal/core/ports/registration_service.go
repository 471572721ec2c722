package ports

import (
	"context"

	"github.com/confiteria/conference-system/internal/core/domain"
	"github.com/confiteria/conference-system/internal/core/security"
)

// RegistrationService defines use-case operations on participation state.
type RegistrationService interface {
	// Register binds a voucher to a user and creates the participation
	// record. Owner-gated; a user registers at most once.
	Register(ctx context.Context, actor security.Actor, userID, voucherCode string) (*domain.ParticipationData, error)
	// CheckIn stamps the arrival date. Staff-gated and idempotent: a second
	// check-in keeps the original timestamp.
	CheckIn(ctx context.Context, actor security.Actor, participationID string) (*domain.ParticipationData, error)
	// UsersToSendTickets evaluates ticket eligibility over the full
	// population. Admin-gated, read-only.
	UsersToSendTickets(ctx context.Context, actor security.Actor) ([]domain.User, error)
	// PresentAtConference lists users that checked in. Admin-gated.
	PresentAtConference(ctx context.Context, actor security.Actor) ([]domain.User, error)
}
