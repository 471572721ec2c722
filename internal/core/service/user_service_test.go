package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/confiteria/conference-system/internal/core/domain"
	"github.com/confiteria/conference-system/internal/core/ports"
	"github.com/confiteria/conference-system/internal/core/security"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID          map[string]*domain.User
	acceptedPairs []domain.SpeakerPair
	nextID        int
	saveErr       error
	volunteerSet  map[string]bool
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:         make(map[string]*domain.User),
		volunteerSet: make(map[string]bool),
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Save(_ context.Context, u *domain.User) (*domain.User, error) {
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	copy := cloneUser(u)
	if copy.ID == "" {
		r.nextID++
		copy.ID = "u" + strconv.Itoa(r.nextID)
	}
	r.byID[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindBySocialID(_ context.Context, socialID string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.SocialID == socialID {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsBySocialID(_ context.Context, socialID string) (bool, error) {
	_, err := r.FindBySocialID(context.Background(), socialID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *stubUserRepo) SetVolunteer(_ context.Context, id string, volunteer bool) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Volunteer = volunteer
	r.volunteerSet[id] = volunteer
	return nil
}

func (r *stubUserRepo) FindAllAccepted(_ context.Context) ([]domain.SpeakerPair, error) {
	return r.acceptedPairs, nil
}

type stubAvatarLookup struct {
	url    string
	err    error
	called int
}

func (a *stubAvatarLookup) URL(_ context.Context, _ string) (string, error) {
	a.called++
	if a.err != nil {
		return "", a.err
	}
	return a.url, nil
}

var (
	admin    = security.Actor{UserID: "a1", Role: domain.RoleAdmin}
	ownerOf  = func(id string) security.Actor { return security.Actor{UserID: id, Role: domain.RoleUser} }
	stranger = security.Actor{UserID: "zz", Role: domain.RoleUser}
)

// ---------------------------------------------------------------------------
// Save
// ---------------------------------------------------------------------------

func TestUserService_Save_FillsPhotoFromAvatarLookup(t *testing.T) {
	repo := newStubUserRepo()
	avatars := &stubAvatarLookup{url: "https://gravatar.example/abc"}
	svc := NewUserService(repo, avatars, zerolog.Nop())

	saved, err := svc.Save(context.Background(), admin, ports.SaveUserInput{
		Name:  "Grace",
		Email: "grace@example.com",
	})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if saved.Photo != "https://gravatar.example/abc" {
		t.Errorf("expected photo from avatar lookup, got %q", saved.Photo)
	}
	if avatars.called != 1 {
		t.Errorf("expected one avatar lookup, got %d", avatars.called)
	}
}

func TestUserService_Save_KeepsSuppliedPhoto(t *testing.T) {
	repo := newStubUserRepo()
	avatars := &stubAvatarLookup{url: "https://gravatar.example/abc"}
	svc := NewUserService(repo, avatars, zerolog.Nop())

	saved, err := svc.Save(context.Background(), admin, ports.SaveUserInput{
		Name:  "Grace",
		Email: "grace@example.com",
		Photo: "https://photos.example/me.png",
	})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if saved.Photo != "https://photos.example/me.png" {
		t.Errorf("supplied photo overwritten: %q", saved.Photo)
	}
	if avatars.called != 0 {
		t.Errorf("avatar lookup should not run when photo supplied")
	}
}

func TestUserService_Save_SucceedsWhenAvatarLookupFails(t *testing.T) {
	repo := newStubUserRepo()
	avatars := &stubAvatarLookup{err: errors.New("gravatar unreachable")}
	svc := NewUserService(repo, avatars, zerolog.Nop())

	saved, err := svc.Save(context.Background(), admin, ports.SaveUserInput{
		Name:  "Grace",
		Email: "grace@example.com",
	})
	if err != nil {
		t.Fatalf("save must not fail when avatar lookup fails: %v", err)
	}
	if saved.Photo != "" {
		t.Errorf("expected photo left unset, got %q", saved.Photo)
	}
}

func TestUserService_Save_OwnerUpdatesProfile(t *testing.T) {
	repo := newStubUserRepo()
	existing, _ := repo.Save(context.Background(), &domain.User{Name: "Old", Email: "old@example.com", Origin: "twitter", SocialID: "123", Photo: "p"})
	svc := NewUserService(repo, &stubAvatarLookup{}, zerolog.Nop())

	saved, err := svc.Save(context.Background(), ownerOf(existing.ID), ports.SaveUserInput{
		ID:    existing.ID,
		Name:  "New Name",
		Email: "new@example.com",
		Photo: "p",
	})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if saved.Name != "New Name" {
		t.Errorf("name not updated: %q", saved.Name)
	}
	if saved.Origin != "twitter" || saved.SocialID != "123" {
		t.Errorf("origin/social id must survive profile updates: %+v", saved)
	}
}

func TestUserService_Save_StrangerForbidden(t *testing.T) {
	repo := newStubUserRepo()
	existing, _ := repo.Save(context.Background(), &domain.User{Name: "Old"})
	svc := NewUserService(repo, &stubAvatarLookup{}, zerolog.Nop())

	_, err := svc.Save(context.Background(), stranger, ports.SaveUserInput{ID: existing.ID, Name: "Hacked"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if repo.byID[existing.ID].Name != "Old" {
		t.Errorf("store touched despite authorization failure")
	}
}

func TestUserService_Save_DuplicateSocialID(t *testing.T) {
	repo := newStubUserRepo()
	_, _ = repo.Save(context.Background(), &domain.User{Origin: "twitter", SocialID: "42"})
	svc := NewUserService(repo, &stubAvatarLookup{}, zerolog.Nop())

	_, err := svc.Save(context.Background(), admin, ports.SaveUserInput{Origin: "twitter", SocialID: "42", Name: "Dup"})
	if !errors.Is(err, domain.ErrDuplicateSocialID) {
		t.Fatalf("expected ErrDuplicateSocialID, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// MarkAsVolunteer
// ---------------------------------------------------------------------------

func TestUserService_MarkAsVolunteer(t *testing.T) {
	repo := newStubUserRepo()
	u, _ := repo.Save(context.Background(), &domain.User{Name: "Vol"})
	svc := NewUserService(repo, &stubAvatarLookup{}, zerolog.Nop())

	if err := svc.MarkAsVolunteer(context.Background(), admin, u.ID, true); err != nil {
		t.Fatalf("MarkAsVolunteer returned error: %v", err)
	}
	if !repo.volunteerSet[u.ID] {
		t.Errorf("volunteer flag not set")
	}
}

func TestUserService_MarkAsVolunteer_RequiresAdmin(t *testing.T) {
	repo := newStubUserRepo()
	u, _ := repo.Save(context.Background(), &domain.User{Name: "Vol"})
	svc := NewUserService(repo, &stubAvatarLookup{}, zerolog.Nop())

	err := svc.MarkAsVolunteer(context.Background(), ownerOf(u.ID), u.ID, true)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(repo.volunteerSet) != 0 {
		t.Errorf("store touched despite authorization failure")
	}
}

// ---------------------------------------------------------------------------
// Speakers
// ---------------------------------------------------------------------------

func TestUserService_Speakers_Deduplicates(t *testing.T) {
	a := domain.User{ID: "a"}
	b := domain.User{ID: "b"}
	repo := newStubUserRepo()
	repo.acceptedPairs = []domain.SpeakerPair{
		{Speaker: a},
		{Speaker: a, CoSpeaker: &b},
	}
	svc := NewUserService(repo, &stubAvatarLookup{}, zerolog.Nop())

	speakers, err := svc.Speakers(context.Background())
	if err != nil {
		t.Fatalf("Speakers returned error: %v", err)
	}
	if len(speakers) != 2 {
		t.Fatalf("expected 2 distinct speakers, got %d", len(speakers))
	}
}
