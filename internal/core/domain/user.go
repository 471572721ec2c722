package domain

import "time"

const (
	RoleAdmin     = "admin"
	RoleUser      = "user"
	RoleVolunteer = "volunteer"
)

// User models a conference account: attendee, speaker, volunteer or admin.
// Accounts are created on first social login or by an admin; they are never
// hard-deleted.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Origin       string    `json:"origin,omitempty" bson:"origin,omitempty"`
	SocialID     string    `json:"social_id,omitempty" bson:"social_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email,omitempty" bson:"email,omitempty"`
	Bio          string    `json:"bio,omitempty" bson:"bio,omitempty"`
	Photo        string    `json:"photo,omitempty" bson:"photo,omitempty"`
	Volunteer    bool      `json:"volunteer" bson:"volunteer"`
	Admin        bool      `json:"admin" bson:"admin"`
	PasswordHash string    `json:"-" bson:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Role derives the RBAC role injected into JWT claims.
func (u *User) Role() string {
	switch {
	case u.Admin:
		return RoleAdmin
	case u.Volunteer:
		return RoleVolunteer
	default:
		return RoleUser
	}
}

// SpeakerPair is one row of the accepted-presentations query: the primary
// speaker and, when the presentation has one, the co-speaker. Decoded at the
// store boundary so callers never deal with positional tuples.
type SpeakerPair struct {
	Speaker   User
	CoSpeaker *User
}

// DistinctSpeakers flattens accepted-presentation speaker pairs into a
// deduplicated user list. Identity is the user ID; a presentation where the
// same person fills both slots contributes a single entry. Order follows
// first appearance.
func DistinctSpeakers(pairs []SpeakerPair) []User {
	seen := make(map[string]struct{}, len(pairs))
	speakers := make([]User, 0, len(pairs))

	add := func(u User) {
		if _, ok := seen[u.ID]; ok {
			return
		}
		seen[u.ID] = struct{}{}
		speakers = append(speakers, u)
	}

	for _, p := range pairs {
		add(p.Speaker)
		if p.CoSpeaker != nil {
			add(*p.CoSpeaker)
		}
	}
	return speakers
}
