package ports

import (
	"context"

	"github.com/confiteria/conference-system/internal/core/domain"
	"github.com/confiteria/conference-system/internal/core/security"
)

// SaveUserInput carries a profile create/update request.
type SaveUserInput struct {
	ID       string
	Origin   string
	SocialID string
	Name     string
	Email    string
	Bio      string
	Photo    string
}

// UserService defines use-case operations on conference accounts.
type UserService interface {
	// Save creates or updates a profile. Owner-gated; when no photo is
	// supplied the avatar lookup fills one in on a best-effort basis.
	Save(ctx context.Context, actor security.Actor, input SaveUserInput) (*domain.User, error)
	Get(ctx context.Context, actor security.Actor, id string) (*domain.User, error)
	// MarkAsVolunteer toggles the volunteer flag. Admin-gated.
	MarkAsVolunteer(ctx context.Context, actor security.Actor, userID string, volunteer bool) error
	// Speakers returns the deduplicated speakers of accepted presentations.
	Speakers(ctx context.Context) ([]domain.User, error)
}

// AvatarLookup resolves a photo URL for an email address. Implementations
// may reach over the network; callers bound the call with a context deadline
// and treat failure as "no photo".
type AvatarLookup interface {
	URL(ctx context.Context, email string) (string, error)
}
