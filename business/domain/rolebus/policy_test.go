package rolebus_test

import (
	"fmt"
	"testing"

	"github.com/emendasgov/emendas/business/domain/rolebus"
	"github.com/emendasgov/emendas/business/types/role"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

var (
	prefA = uuid.MustParse("7b9f0a52-1f5e-4a2d-9c3b-0d6f1a2b3c4d")
	prefB = uuid.MustParse("e2c4a6d8-0b1a-4c3d-8e5f-6a7b8c9d0e1f")
)

func superAdmin() rolebus.Assignment {
	return rolebus.Assignment{Role: role.SuperAdmin}
}

func prefeituraAdmin(prefID uuid.UUID) rolebus.Assignment {
	return rolebus.Assignment{Role: role.PrefeituraAdmin, PrefeituraID: &prefID}
}

func prefeituraUser(prefID uuid.UUID) rolebus.Assignment {
	return rolebus.Assignment{Role: role.PrefeituraUser, PrefeituraID: &prefID}
}

// Test_DecideGrant walks the full acting role x target role x tenant
// combination space.
func Test_DecideGrant(t *testing.T) {
	actors := map[string][]rolebus.Assignment{
		"super": {superAdmin()},
		"admin": {prefeituraAdmin(prefA)},
		"user":  {prefeituraUser(prefA)},
	}

	table := []struct {
		actor      string
		targetRole role.Role
		targetPref uuid.UUID
		want       rolebus.Decision
	}{
		{"super", role.SuperAdmin, uuid.Nil, rolebus.Allow()},
		{"super", role.PrefeituraAdmin, prefA, rolebus.Allow()},
		{"super", role.PrefeituraAdmin, prefB, rolebus.Allow()},
		{"super", role.PrefeituraUser, prefA, rolebus.Allow()},
		{"super", role.PrefeituraUser, prefB, rolebus.Allow()},

		{"admin", role.SuperAdmin, uuid.Nil, rolebus.Deny(rolebus.ReasonPlatformScope)},
		{"admin", role.PrefeituraAdmin, prefA, rolebus.Deny(rolebus.ReasonTenantUserOnly)},
		{"admin", role.PrefeituraAdmin, prefB, rolebus.Deny(rolebus.ReasonTenantUserOnly)},
		{"admin", role.PrefeituraUser, prefA, rolebus.Allow()},
		{"admin", role.PrefeituraUser, prefB, rolebus.Deny(rolebus.ReasonOutsideOwnTenant)},

		{"user", role.SuperAdmin, uuid.Nil, rolebus.Deny(rolebus.ReasonInsufficientPrivilege)},
		{"user", role.PrefeituraAdmin, prefA, rolebus.Deny(rolebus.ReasonInsufficientPrivilege)},
		{"user", role.PrefeituraAdmin, prefB, rolebus.Deny(rolebus.ReasonInsufficientPrivilege)},
		{"user", role.PrefeituraUser, prefA, rolebus.Deny(rolebus.ReasonInsufficientPrivilege)},
		{"user", role.PrefeituraUser, prefB, rolebus.Deny(rolebus.ReasonInsufficientPrivilege)},
	}

	for _, tt := range table {
		name := fmt.Sprintf("%s-grants-%s", tt.actor, tt.targetRole)
		if tt.targetPref == prefB {
			name += "-other-tenant"
		}

		t.Run(name, func(t *testing.T) {
			got := rolebus.DecideGrant(actors[tt.actor], tt.targetRole, tt.targetPref)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("decision mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func Test_DecideGrant_NoAssignments(t *testing.T) {
	got := rolebus.DecideGrant(nil, role.PrefeituraUser, prefA)
	want := rolebus.Deny(rolebus.ReasonInsufficientPrivilege)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decision mismatch (-want +got):\n%s", diff)
	}
}

func Test_DecideUpdate(t *testing.T) {
	table := []struct {
		name   string
		acting []rolebus.Assignment
		target []rolebus.Assignment
		want   rolebus.Decision
	}{
		{
			name:   "super-edits-anyone",
			acting: []rolebus.Assignment{superAdmin()},
			target: []rolebus.Assignment{prefeituraAdmin(prefB)},
			want:   rolebus.Allow(),
		},
		{
			name:   "admin-edits-own-tenant-user",
			acting: []rolebus.Assignment{prefeituraAdmin(prefA)},
			target: []rolebus.Assignment{prefeituraUser(prefA)},
			want:   rolebus.Allow(),
		},
		{
			name:   "admin-edits-other-tenant-user",
			acting: []rolebus.Assignment{prefeituraAdmin(prefA)},
			target: []rolebus.Assignment{prefeituraUser(prefB)},
			want:   rolebus.Deny(rolebus.ReasonOutsideOwnTenant),
		},
		{
			name:   "admin-edits-platform-admin",
			acting: []rolebus.Assignment{prefeituraAdmin(prefA)},
			target: []rolebus.Assignment{superAdmin()},
			want:   rolebus.Deny(rolebus.ReasonTargetPlatformAdmin),
		},
		{
			name:   "admin-edits-platform-admin-with-local-role",
			acting: []rolebus.Assignment{prefeituraAdmin(prefA)},
			target: []rolebus.Assignment{superAdmin(), prefeituraUser(prefA)},
			want:   rolebus.Deny(rolebus.ReasonTargetPlatformAdmin),
		},
		{
			name:   "user-edits-anyone",
			acting: []rolebus.Assignment{prefeituraUser(prefA)},
			target: []rolebus.Assignment{prefeituraUser(prefA)},
			want:   rolebus.Deny(rolebus.ReasonInsufficientPrivilege),
		},
		{
			name:   "no-assignments",
			acting: nil,
			target: []rolebus.Assignment{prefeituraUser(prefA)},
			want:   rolebus.Deny(rolebus.ReasonInsufficientPrivilege),
		},
	}

	for _, tt := range table {
		t.Run(tt.name, func(t *testing.T) {
			got := rolebus.DecideUpdate(tt.acting, tt.target)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("decision mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
