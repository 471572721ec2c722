package security

import (
	"testing"

	"github.com/confiteria/conference-system/internal/core/domain"
)

func TestActor_CanActAs(t *testing.T) {
	tests := []struct {
		name    string
		actor   Actor
		ownerID string
		want    bool
	}{
		{"owner", Actor{UserID: "u1", Role: domain.RoleUser}, "u1", true},
		{"admin acting on another user", Actor{UserID: "a1", Role: domain.RoleAdmin}, "u1", true},
		{"stranger", Actor{UserID: "u2", Role: domain.RoleUser}, "u1", false},
		{"volunteer is not admin", Actor{UserID: "v1", Role: domain.RoleVolunteer}, "u1", false},
		{"anonymous never owns anything", Actor{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.actor.CanActAs(tt.ownerID); got != tt.want {
				t.Errorf("CanActAs(%q) = %v, want %v", tt.ownerID, got, tt.want)
			}
		})
	}
}

func TestActor_IsStaff(t *testing.T) {
	if !(Actor{Role: domain.RoleVolunteer}).IsStaff() {
		t.Errorf("volunteer should count as staff")
	}
	if !(Actor{Role: domain.RoleAdmin}).IsStaff() {
		t.Errorf("admin should count as staff")
	}
	if (Actor{Role: domain.RoleUser}).IsStaff() {
		t.Errorf("regular user should not count as staff")
	}
}
