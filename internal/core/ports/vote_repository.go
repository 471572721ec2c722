package ports

import (
	"context"

	"github.com/confiteria/conference-system/internal/core/domain"
)

// VoteRepository defines persistence for attendee ballots.
type VoteRepository interface {
	CreateBatch(ctx context.Context, votes []*domain.Vote) error
	FindByID(ctx context.Context, id string) (*domain.Vote, error)
	FindByToken(ctx context.Context, token string) ([]*domain.Vote, error)
	// SetRate atomically writes the rate of a single ballot entry.
	SetRate(ctx context.Context, id string, rate int) error
	// Summary aggregates cast votes per presentation.
	Summary(ctx context.Context) ([]domain.RatingSummary, error)
}
