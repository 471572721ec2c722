package domain

import (
	"testing"
	"time"
)

func ts() *time.Time {
	t := time.Date(2026, 7, 1, 9, 30, 0, 0, time.UTC)
	return &t
}

func participant(id, voucherID string, arrival, ticketSent *time.Time) Participant {
	return Participant{
		User: User{ID: id, Name: "user-" + id},
		Participation: ParticipationData{
			ID:             "p-" + id,
			UserID:         id,
			VoucherID:      voucherID,
			ArrivalDate:    arrival,
			TicketSendDate: ticketSent,
		},
	}
}

func ids(users []User) map[string]bool {
	m := make(map[string]bool, len(users))
	for _, u := range users {
		m[u.ID] = true
	}
	return m
}

func TestEligibleForTicket(t *testing.T) {
	participants := []Participant{
		participant("u1", "v1", nil, nil),  // voucher, no ticket yet → eligible
		participant("u2", "v2", nil, ts()), // ticket already sent → excluded
		participant("u3", "", nil, nil),    // no voucher → excluded
		participant("u4", "v4", ts(), nil), // arrived, still waiting for ticket → eligible
	}

	got := ids(EligibleForTicket(participants))

	if !got["u1"] || !got["u4"] {
		t.Errorf("expected u1 and u4 eligible, got %v", got)
	}
	if got["u2"] {
		t.Errorf("user with dispatched ticket must not be eligible")
	}
	if got["u3"] {
		t.Errorf("user without voucher must not be eligible")
	}
}

func TestEligibleForTicket_IdempotentExclusion(t *testing.T) {
	// Once the dispatch timestamp is stamped, repeated evaluation never
	// brings the user back.
	p := participant("u1", "v1", nil, ts())
	for i := 0; i < 3; i++ {
		if users := EligibleForTicket([]Participant{p}); len(users) != 0 {
			t.Fatalf("run %d: expected empty set, got %d users", i, len(users))
		}
	}
}

func TestPresentAtConference(t *testing.T) {
	participants := []Participant{
		participant("u1", "v1", ts(), nil),
		participant("u2", "v2", nil, nil),
	}

	got := ids(PresentAtConference(participants))

	if !got["u1"] {
		t.Errorf("checked-in user missing from present set")
	}
	if got["u2"] {
		t.Errorf("user without arrival date reported present")
	}
}

func TestEligibilityAndPresenceAreIndependent(t *testing.T) {
	// Voucher but not arrived: eligible for a ticket, not present.
	p := []Participant{participant("u1", "v1", nil, nil)}

	if len(EligibleForTicket(p)) != 1 {
		t.Errorf("expected u1 eligible")
	}
	if len(PresentAtConference(p)) != 0 {
		t.Errorf("expected u1 not present")
	}
}

func TestDistinctSpeakers(t *testing.T) {
	a := User{ID: "a", Name: "Ada"}
	b := User{ID: "b", Name: "Brendan"}

	pairs := []SpeakerPair{
		{Speaker: a},                // talk with a single speaker
		{Speaker: a, CoSpeaker: &b}, // same speaker again, plus co-speaker
	}

	got := DistinctSpeakers(pairs)

	if len(got) != 2 {
		t.Fatalf("expected exactly 2 distinct speakers, got %d", len(got))
	}
	m := ids(got)
	if !m["a"] || !m["b"] {
		t.Errorf("expected {a, b}, got %v", m)
	}
}

func TestDistinctSpeakers_MissingCoSpeakerContributesNothing(t *testing.T) {
	got := DistinctSpeakers([]SpeakerPair{{Speaker: User{ID: "a"}}})
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected only speaker a, got %v", got)
	}
}
