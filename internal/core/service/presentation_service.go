package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/confiteria/conference-system/internal/core/domain"
	"github.com/confiteria/conference-system/internal/core/ports"
	"github.com/confiteria/conference-system/internal/core/security"
)

type PresentationService struct {
	presentations ports.PresentationRepository
	users         ports.UserRepository
	logger        zerolog.Logger
}

func NewPresentationService(presentations ports.PresentationRepository, users ports.UserRepository, logger zerolog.Logger) *PresentationService {
	return &PresentationService{presentations: presentations, users: users, logger: logger}
}

// AddToUser creates or edits a presentation owned by userID.
//
// The ownership guard runs before any store read, so a caller probing with a
// foreign presentation ID is rejected without learning whether it exists.
// On edits the persisted status always overrides the caller-supplied one;
// only UpdateStatus can change it.
func (s *PresentationService) AddToUser(ctx context.Context, actor security.Actor, userID string, input ports.PresentationInput) (*domain.Presentation, error) {
	if !actor.CanActAs(userID) {
		return nil, domain.ErrForbidden
	}
	// Brand-new submissions outside the self-service window go through an
	// admin, matching the ownership policy on the legacy endpoint.
	if input.ID == "" && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	speaker, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	presentation := &domain.Presentation{
		ID:               input.ID,
		Title:            input.Title,
		ShortDescription: input.ShortDescription,
		Description:      input.Description,
		Language:         input.Language,
		Level:            input.Level,
		SpeakerID:        speaker.ID,
		CoSpeakerID:      input.CoSpeakerID,
		Tags:             input.Tags,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if input.ID == "" {
		status := domain.PresentationStatus(input.Status)
		if status == "" {
			status = domain.StatusSubmitted
		}
		if !status.Valid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, input.Status)
		}
		presentation.Status = status
	} else {
		existing, err := s.presentations.FindByID(ctx, input.ID)
		if err != nil {
			return nil, err
		}
		// Status retention: whatever the caller sent, the stored review
		// state wins on the edit path.
		presentation.Status = existing.Status
		presentation.CreatedAt = existing.CreatedAt
	}

	saved, err := s.presentations.Save(ctx, presentation)
	if err != nil {
		s.logger.Error().Err(err).Str("speaker_id", speaker.ID).Msg("failed to save presentation")
		return nil, err
	}

	s.logger.Info().
		Str("presentation_id", saved.ID).
		Str("speaker_id", speaker.ID).
		Str("status", string(saved.Status)).
		Msg("presentation saved")
	return saved, nil
}

func (s *PresentationService) Get(ctx context.Context, id string) (*domain.Presentation, error) {
	return s.presentations.FindByID(ctx, id)
}

func (s *PresentationService) ListForSpeaker(ctx context.Context, actor security.Actor, speakerID string) ([]*domain.Presentation, error) {
	if !actor.CanActAs(speakerID) {
		return nil, domain.ErrForbidden
	}
	return s.presentations.FindBySpeaker(ctx, speakerID)
}

// UpdateStatus is the privileged review operation.
func (s *PresentationService) UpdateStatus(ctx context.Context, actor security.Actor, id string, status domain.PresentationStatus) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if !status.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	if err := s.presentations.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.logger.Info().Str("presentation_id", id).Str("status", string(status)).Msg("presentation status updated")
	return nil
}
