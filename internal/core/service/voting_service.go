package service

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/confiteria/conference-system/internal/core/domain"
	"github.com/confiteria/conference-system/internal/core/ports"
	"github.com/confiteria/conference-system/internal/core/security"
)

type VotingService struct {
	votes         ports.VoteRepository
	presentations ports.PresentationRepository
	logger        zerolog.Logger
}

func NewVotingService(votes ports.VoteRepository, presentations ports.PresentationRepository, logger zerolog.Logger) *VotingService {
	return &VotingService{votes: votes, presentations: presentations, logger: logger}
}

// IssueBallot mints an anonymous voting token with one empty vote per
// accepted presentation. Order is shuffled per ballot so early slots do not
// favour the same talks.
func (s *VotingService) IssueBallot(ctx context.Context) (*ports.Ballot, error) {
	accepted, err := s.presentations.FindAccepted(ctx)
	if err != nil {
		return nil, err
	}

	shuffled := make([]*domain.Presentation, len(accepted))
	copy(shuffled, accepted)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	token := uuid.NewString()
	votes := make([]*domain.Vote, 0, len(shuffled))
	for i, p := range shuffled {
		votes = append(votes, &domain.Vote{
			ID:             uuid.NewString(),
			Token:          token,
			Order:          i + 1,
			PresentationID: p.ID,
		})
	}

	if err := s.votes.CreateBatch(ctx, votes); err != nil {
		return nil, fmt.Errorf("issue ballot: %w", err)
	}

	s.logger.Info().Str("token", token).Int("votes", len(votes)).Msg("ballot issued")
	return &ports.Ballot{Token: token, Votes: votes}, nil
}

// Cast writes the rate of a single ballot entry. The caller must present
// the token the vote was issued to.
func (s *VotingService) Cast(ctx context.Context, voteID, token string, rate int) error {
	if !domain.ValidRate(rate) {
		return domain.ErrInvalidRate
	}

	vote, err := s.votes.FindByID(ctx, voteID)
	if err != nil {
		return err
	}
	if vote.Token != token {
		return domain.ErrForbidden
	}

	if err := s.votes.SetRate(ctx, voteID, rate); err != nil {
		return err
	}

	s.logger.Debug().Str("vote_id", voteID).Int("rate", rate).Msg("vote cast")
	return nil
}

// Summary aggregates cast votes per presentation.
func (s *VotingService) Summary(ctx context.Context, actor security.Actor) ([]domain.RatingSummary, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.votes.Summary(ctx)
}
