package ports

import (
	"context"

	"github.com/confiteria/conference-system/internal/core/domain"
	"github.com/confiteria/conference-system/internal/core/security"
)

// Ballot is the set of empty votes issued to one anonymous voting token.
type Ballot struct {
	Token string
	Votes []*domain.Vote
}

// VotingService defines the anonymous audience-voting flow.
type VotingService interface {
	// IssueBallot mints a voting token and one empty vote per accepted
	// presentation, in shuffled order.
	IssueBallot(ctx context.Context) (*Ballot, error)
	// Cast writes the rate of a single vote. The token must match the one
	// the vote was issued to.
	Cast(ctx context.Context, voteID, token string, rate int) error
	// Summary aggregates cast votes per presentation. Admin-gated.
	Summary(ctx context.Context, actor security.Actor) ([]domain.RatingSummary, error)
}
