package ports

import (
	"context"

	"github.com/confiteria/conference-system/internal/core/domain"
	"github.com/confiteria/conference-system/internal/core/security"
)

// PresentationInput carries a talk submission or edit. Status is accepted
// from the caller only for brand-new submissions; on edits the persisted
// status always wins.
type PresentationInput struct {
	ID               string
	Title            string
	ShortDescription string
	Description      string
	Language         string
	Level            string
	Status           string
	CoSpeakerID      string
	Tags             []string
}

// PresentationService defines use-case operations on talk submissions.
type PresentationService interface {
	// AddToUser creates or edits a presentation owned by userID.
	// Owner-gated; creating a presentation for an existing account also
	// requires admin when the submission window is closed to self-service.
	AddToUser(ctx context.Context, actor security.Actor, userID string, input PresentationInput) (*domain.Presentation, error)
	Get(ctx context.Context, id string) (*domain.Presentation, error)
	ListForSpeaker(ctx context.Context, actor security.Actor, speakerID string) ([]*domain.Presentation, error)
	// UpdateStatus is the privileged review operation. Admin-gated.
	UpdateStatus(ctx context.Context, actor security.Actor, id string, status domain.PresentationStatus) error
}
