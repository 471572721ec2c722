package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/confiteria/conference-system/internal/core/domain"
	"github.com/confiteria/conference-system/internal/core/ports"
	"github.com/confiteria/conference-system/internal/core/security"
)

// avatarLookupTimeout bounds the Gravatar call so a slow avatar backend can
// never block a profile save.
const avatarLookupTimeout = 2 * time.Second

type UserService struct {
	users   ports.UserRepository
	avatars ports.AvatarLookup
	logger  zerolog.Logger
}

func NewUserService(users ports.UserRepository, avatars ports.AvatarLookup, logger zerolog.Logger) *UserService {
	return &UserService{users: users, avatars: avatars, logger: logger}
}

// Save creates or updates a profile. Updates are owner-gated; creating an
// account directly (instead of through social login) is an admin operation.
func (s *UserService) Save(ctx context.Context, actor security.Actor, input ports.SaveUserInput) (*domain.User, error) {
	if input.ID == "" {
		if !actor.IsAdmin() {
			return nil, domain.ErrForbidden
		}
	} else if !actor.CanActAs(input.ID) {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	var user *domain.User

	if input.ID == "" {
		if input.SocialID != "" {
			exists, err := s.users.ExistsBySocialID(ctx, input.SocialID)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrDuplicateSocialID
			}
		}
		user = &domain.User{
			Origin:    input.Origin,
			SocialID:  input.SocialID,
			Name:      input.Name,
			Email:     input.Email,
			Bio:       input.Bio,
			Photo:     input.Photo,
			CreatedAt: now,
			UpdatedAt: now,
		}
	} else {
		existing, err := s.users.FindByID(ctx, input.ID)
		if err != nil {
			return nil, err
		}
		// Origin and social ID are fixed at first login; volunteer and
		// admin flags are not profile fields.
		existing.Name = input.Name
		existing.Email = input.Email
		existing.Bio = input.Bio
		existing.Photo = input.Photo
		existing.UpdatedAt = now
		user = existing
	}

	if user.Photo == "" && user.Email != "" {
		lookupCtx, cancel := context.WithTimeout(ctx, avatarLookupTimeout)
		url, err := s.avatars.URL(lookupCtx, user.Email)
		cancel()
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("avatar lookup failed, saving without photo")
		} else {
			user.Photo = url
		}
	}

	saved, err := s.users.Save(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to save user")
		return nil, err
	}

	s.logger.Info().Str("user_id", saved.ID).Msg("user saved")
	return saved, nil
}

func (s *UserService) Get(ctx context.Context, actor security.Actor, id string) (*domain.User, error) {
	if !actor.CanActAs(id) {
		return nil, domain.ErrForbidden
	}
	return s.users.FindByID(ctx, id)
}

// MarkAsVolunteer toggles the volunteer flag on a single account. The flag
// flip is a single atomic update at the store.
func (s *UserService) MarkAsVolunteer(ctx context.Context, actor security.Actor, userID string, volunteer bool) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}

	if err := s.users.SetVolunteer(ctx, userID, volunteer); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Bool("volunteer", volunteer).Msg("volunteer flag updated")
	return nil
}

// Speakers returns every distinct speaker across accepted presentations,
// counting co-speakers and collapsing duplicates by user ID.
func (s *UserService) Speakers(ctx context.Context) ([]domain.User, error) {
	pairs, err := s.users.FindAllAccepted(ctx)
	if err != nil {
		return nil, err
	}
	return domain.DistinctSpeakers(pairs), nil
}
