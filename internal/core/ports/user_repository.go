package ports

import (
	"context"

	"github.com/confiteria/conference-system/internal/core/domain"
)

// UserRepository defines persistence operations for conference accounts.
type UserRepository interface {
	// Save inserts the user when it has no ID, otherwise replaces the
	// stored document. Returns the persisted user with its ID set.
	Save(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindBySocialID(ctx context.Context, socialID string) (*domain.User, error)
	ExistsBySocialID(ctx context.Context, socialID string) (bool, error)
	// SetVolunteer atomically flips the volunteer flag on a single user.
	SetVolunteer(ctx context.Context, id string, volunteer bool) error
	// FindAllAccepted returns one SpeakerPair per accepted presentation,
	// with the co-speaker slot nil when the talk has a single speaker.
	FindAllAccepted(ctx context.Context) ([]domain.SpeakerPair, error)
}
