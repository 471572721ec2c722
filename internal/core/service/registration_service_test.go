package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/confiteria/conference-system/internal/core/domain"
	"github.com/confiteria/conference-system/internal/core/security"
)

type stubParticipationRepo struct {
	byID    map[string]*domain.ParticipationData
	users   map[string]*domain.User // keyed by user ID, for ListParticipants
	nextID  int
	listErr error
}

func newStubParticipationRepo() *stubParticipationRepo {
	return &stubParticipationRepo{
		byID:  make(map[string]*domain.ParticipationData),
		users: make(map[string]*domain.User),
	}
}

func cloneParticipation(p *domain.ParticipationData) *domain.ParticipationData {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubParticipationRepo) Create(_ context.Context, p *domain.ParticipationData) (*domain.ParticipationData, error) {
	copy := cloneParticipation(p)
	r.nextID++
	copy.ID = "part" + strconv.Itoa(r.nextID)
	r.byID[copy.ID] = cloneParticipation(copy)
	return cloneParticipation(copy), nil
}

func (r *stubParticipationRepo) FindByID(_ context.Context, id string) (*domain.ParticipationData, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrParticipationNotFound
	}
	return cloneParticipation(p), nil
}

func (r *stubParticipationRepo) FindByUserID(_ context.Context, userID string) (*domain.ParticipationData, error) {
	for _, p := range r.byID {
		if p.UserID == userID {
			return cloneParticipation(p), nil
		}
	}
	return nil, domain.ErrParticipationNotFound
}

func (r *stubParticipationRepo) FindByVoucherID(_ context.Context, voucherID string) (*domain.ParticipationData, error) {
	for _, p := range r.byID {
		if p.VoucherID == voucherID {
			return cloneParticipation(p), nil
		}
	}
	return nil, domain.ErrParticipationNotFound
}

func (r *stubParticipationRepo) SetArrival(_ context.Context, id string, at time.Time) (*domain.ParticipationData, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrParticipationNotFound
	}
	// First scan wins, mirroring the guarded store update.
	if p.ArrivalDate == nil {
		p.ArrivalDate = &at
	}
	return cloneParticipation(p), nil
}

func (r *stubParticipationRepo) StampTicketSent(_ context.Context, id string, at time.Time) (bool, error) {
	p, ok := r.byID[id]
	if !ok {
		return false, domain.ErrParticipationNotFound
	}
	if p.VoucherID == "" || p.TicketSendDate != nil {
		return false, nil
	}
	p.TicketSendDate = &at
	return true, nil
}

func (r *stubParticipationRepo) ListParticipants(_ context.Context) ([]domain.Participant, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []domain.Participant
	for _, p := range r.byID {
		u, ok := r.users[p.UserID]
		if !ok {
			u = &domain.User{ID: p.UserID}
		}
		out = append(out, domain.Participant{User: *u, Participation: *cloneParticipation(p)})
	}
	return out, nil
}

type stubVoucherRepo struct {
	byCode map[string]*domain.Voucher
	nextID int
}

func newStubVoucherRepo() *stubVoucherRepo {
	return &stubVoucherRepo{byCode: make(map[string]*domain.Voucher)}
}

func (r *stubVoucherRepo) Create(_ context.Context, v *domain.Voucher) (*domain.Voucher, error) {
	clone := *v
	r.nextID++
	clone.ID = "v" + strconv.Itoa(r.nextID)
	r.byCode[clone.Code] = &clone
	return &clone, nil
}

func (r *stubVoucherRepo) FindByID(_ context.Context, id string) (*domain.Voucher, error) {
	for _, v := range r.byCode {
		if v.ID == id {
			clone := *v
			return &clone, nil
		}
	}
	return nil, domain.ErrVoucherNotFound
}

func (r *stubVoucherRepo) FindByCode(_ context.Context, code string) (*domain.Voucher, error) {
	v, ok := r.byCode[code]
	if !ok {
		return nil, domain.ErrVoucherNotFound
	}
	clone := *v
	return &clone, nil
}

func newRegistrationSvc(participation *stubParticipationRepo, vouchers *stubVoucherRepo) *RegistrationService {
	return NewRegistrationService(participation, vouchers, zerolog.Nop())
}

func mintVoucher(t *testing.T, vouchers *stubVoucherRepo, code string) *domain.Voucher {
	t.Helper()
	v, err := vouchers.Create(context.Background(), &domain.Voucher{Code: code, Type: domain.VoucherTypeRegular})
	if err != nil {
		t.Fatalf("mint voucher: %v", err)
	}
	return v
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestRegistrationService_Register(t *testing.T) {
	participation := newStubParticipationRepo()
	vouchers := newStubVoucherRepo()
	voucher := mintVoucher(t, vouchers, "CODE-1")

	svc := newRegistrationSvc(participation, vouchers)

	record, err := svc.Register(context.Background(), ownerOf("u1"), "u1", "CODE-1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if record.VoucherID != voucher.ID {
		t.Errorf("voucher not bound: %+v", record)
	}
	if record.ArrivalDate != nil || record.TicketSendDate != nil {
		t.Errorf("fresh registration must have no arrival or ticket timestamps")
	}
}

func TestRegistrationService_Register_UnknownVoucher(t *testing.T) {
	svc := newRegistrationSvc(newStubParticipationRepo(), newStubVoucherRepo())

	_, err := svc.Register(context.Background(), ownerOf("u1"), "u1", "NOPE")
	if !errors.Is(err, domain.ErrVoucherNotFound) {
		t.Fatalf("expected ErrVoucherNotFound, got %v", err)
	}
}

func TestRegistrationService_Register_VoucherReuseRejected(t *testing.T) {
	participation := newStubParticipationRepo()
	vouchers := newStubVoucherRepo()
	mintVoucher(t, vouchers, "CODE-1")

	svc := newRegistrationSvc(participation, vouchers)

	if _, err := svc.Register(context.Background(), ownerOf("u1"), "u1", "CODE-1"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	_, err := svc.Register(context.Background(), ownerOf("u2"), "u2", "CODE-1")
	if !errors.Is(err, domain.ErrVoucherAlreadyUsed) {
		t.Fatalf("expected ErrVoucherAlreadyUsed, got %v", err)
	}
}

func TestRegistrationService_Register_Twice(t *testing.T) {
	participation := newStubParticipationRepo()
	vouchers := newStubVoucherRepo()
	mintVoucher(t, vouchers, "CODE-1")
	mintVoucher(t, vouchers, "CODE-2")

	svc := newRegistrationSvc(participation, vouchers)

	if _, err := svc.Register(context.Background(), ownerOf("u1"), "u1", "CODE-1"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	_, err := svc.Register(context.Background(), ownerOf("u1"), "u1", "CODE-2")
	if !errors.Is(err, domain.ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestRegistrationService_Register_StrangerForbidden(t *testing.T) {
	svc := newRegistrationSvc(newStubParticipationRepo(), newStubVoucherRepo())

	_, err := svc.Register(context.Background(), stranger, "u1", "CODE-1")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// CheckIn
// ---------------------------------------------------------------------------

func TestRegistrationService_CheckIn_Idempotent(t *testing.T) {
	participation := newStubParticipationRepo()
	record, _ := participation.Create(context.Background(), &domain.ParticipationData{UserID: "u1"})
	volunteer := security.Actor{UserID: "staff", Role: domain.RoleVolunteer}

	svc := newRegistrationSvc(participation, newStubVoucherRepo())

	first, err := svc.CheckIn(context.Background(), volunteer, record.ID)
	if err != nil {
		t.Fatalf("CheckIn returned error: %v", err)
	}
	second, err := svc.CheckIn(context.Background(), volunteer, record.ID)
	if err != nil {
		t.Fatalf("second CheckIn returned error: %v", err)
	}
	if first.ArrivalDate == nil || second.ArrivalDate == nil {
		t.Fatalf("arrival date not set")
	}
	if !first.ArrivalDate.Equal(*second.ArrivalDate) {
		t.Errorf("second scan must keep the original arrival timestamp")
	}
}

func TestRegistrationService_CheckIn_RequiresStaff(t *testing.T) {
	participation := newStubParticipationRepo()
	record, _ := participation.Create(context.Background(), &domain.ParticipationData{UserID: "u1"})

	svc := newRegistrationSvc(participation, newStubVoucherRepo())

	_, err := svc.CheckIn(context.Background(), ownerOf("u1"), record.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Eligibility queries
// ---------------------------------------------------------------------------

func seedParticipant(r *stubParticipationRepo, userID, voucherID string, arrived, ticketSent bool) {
	now := time.Now().UTC()
	p := &domain.ParticipationData{UserID: userID, VoucherID: voucherID}
	if arrived {
		p.ArrivalDate = &now
	}
	if ticketSent {
		p.TicketSendDate = &now
	}
	created, _ := r.Create(context.Background(), p)
	_ = created
	r.users[userID] = &domain.User{ID: userID, Name: userID}
}

func TestRegistrationService_UsersToSendTickets(t *testing.T) {
	participation := newStubParticipationRepo()
	seedParticipant(participation, "u1", "v1", false, false) // eligible
	seedParticipant(participation, "u2", "v2", false, true)  // already sent
	seedParticipant(participation, "u3", "", false, false)   // no voucher
	// u4 has no participation record at all

	svc := newRegistrationSvc(participation, newStubVoucherRepo())

	users, err := svc.UsersToSendTickets(context.Background(), admin)
	if err != nil {
		t.Fatalf("UsersToSendTickets returned error: %v", err)
	}
	if len(users) != 1 || users[0].ID != "u1" {
		t.Fatalf("expected only u1 eligible, got %+v", users)
	}
}

func TestRegistrationService_PresentAtConference(t *testing.T) {
	participation := newStubParticipationRepo()
	seedParticipant(participation, "u1", "v1", true, false)
	seedParticipant(participation, "u2", "v2", false, false)

	svc := newRegistrationSvc(participation, newStubVoucherRepo())

	users, err := svc.PresentAtConference(context.Background(), admin)
	if err != nil {
		t.Fatalf("PresentAtConference returned error: %v", err)
	}
	if len(users) != 1 || users[0].ID != "u1" {
		t.Fatalf("expected only u1 present, got %+v", users)
	}
}

func TestRegistrationService_EligibilityQueriesRequireAdmin(t *testing.T) {
	svc := newRegistrationSvc(newStubParticipationRepo(), newStubVoucherRepo())

	if _, err := svc.UsersToSendTickets(context.Background(), stranger); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.PresentAtConference(context.Background(), stranger); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
