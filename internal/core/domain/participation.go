package domain

import "time"

// ParticipationData is a user's registration state for the conference.
// The three timestamp-ish fields each carry an explicit absence meaning:
//
//	VoucherID      ""  → user registered without a redeemable voucher
//	ArrivalDate    nil → user has not checked in at the venue
//	TicketSendDate nil → ticket has not been dispatched yet
type ParticipationData struct {
	ID               string     `json:"id" bson:"_id,omitempty"`
	UserID           string     `json:"user_id" bson:"user_id"`
	VoucherID        string     `json:"voucher_id,omitempty" bson:"voucher_id,omitempty"`
	RegistrationDate time.Time  `json:"registration_date" bson:"registration_date"`
	ArrivalDate      *time.Time `json:"arrival_date,omitempty" bson:"arrival_date,omitempty"`
	TicketSendDate   *time.Time `json:"ticket_send_date,omitempty" bson:"ticket_send_date,omitempty"`
}

// EligibleForTicket reports whether a ticket should be dispatched to the
// participant: a voucher is attached and no ticket has been sent. Dispatch is
// monotonic, so a record with TicketSendDate set never becomes eligible again.
func (p *ParticipationData) EligibleForTicket() bool {
	return p.VoucherID != "" && p.TicketSendDate == nil
}

// Present reports whether the participant has checked in at the venue.
// Presence and ticket eligibility are independent predicates, not stages of
// a state machine.
func (p *ParticipationData) Present() bool {
	return p.ArrivalDate != nil
}

// Participant pairs a participation record with its owning user, the unit
// the eligibility queries operate on.
type Participant struct {
	User          User
	Participation ParticipationData
}

// EligibleForTicket filters participants down to those that should receive a
// ticket. Pure and side-effect free; stamping TicketSendDate is the dispatch
// component's job.
func EligibleForTicket(participants []Participant) []User {
	users := make([]User, 0, len(participants))
	for _, p := range participants {
		if p.Participation.EligibleForTicket() {
			users = append(users, p.User)
		}
	}
	return users
}

// PresentAtConference filters participants down to those that checked in.
func PresentAtConference(participants []Participant) []User {
	users := make([]User, 0, len(participants))
	for _, p := range participants {
		if p.Participation.Present() {
			users = append(users, p.User)
		}
	}
	return users
}
