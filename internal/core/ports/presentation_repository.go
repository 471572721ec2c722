package ports

import (
	"context"

	"github.com/confiteria/conference-system/internal/core/domain"
)

// PresentationRepository defines persistence for talk submissions.
type PresentationRepository interface {
	Save(ctx context.Context, p *domain.Presentation) (*domain.Presentation, error)
	FindByID(ctx context.Context, id string) (*domain.Presentation, error)
	FindBySpeaker(ctx context.Context, speakerID string) ([]*domain.Presentation, error)
	FindAccepted(ctx context.Context) ([]*domain.Presentation, error)
	// UpdateStatus is the privileged review path, a single atomic update.
	UpdateStatus(ctx context.Context, id string, status domain.PresentationStatus) error
}
