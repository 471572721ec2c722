// Package security implements the authorization guard invoked at the start
// of every mutating operation. Deny decisions short-circuit before any store
// access.
package security

import "github.com/confiteria/conference-system/internal/core/domain"

// Actor is the authenticated caller as seen by the service layer, built from
// the JWT claims injected by the auth middleware.
type Actor struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == domain.RoleAdmin
}

// IsStaff reports whether the actor can perform venue operations such as
// check-in: admins and volunteers qualify.
func (a Actor) IsStaff() bool {
	return a.Role == domain.RoleAdmin || a.Role == domain.RoleVolunteer
}

// IsOwner reports whether the actor owns the addressed resource.
func (a Actor) IsOwner(ownerID string) bool {
	return a.UserID != "" && a.UserID == ownerID
}

// CanActAs is the owner-or-admin guard used by profile and submission
// mutations.
func (a Actor) CanActAs(ownerID string) bool {
	return a.IsOwner(ownerID) || a.IsAdmin()
}
