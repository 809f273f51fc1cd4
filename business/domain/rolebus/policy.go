package rolebus

import (
	"github.com/emendasgov/emendas/business/types/role"
	"github.com/google/uuid"
)

// The set of denial reasons. They carry no secret material and are surfaced
// verbatim to the caller, so the strings are part of the external contract.
const (
	ReasonInsufficientPrivilege = "insufficient privilege"
	ReasonPlatformScope         = "cannot grant platform scope"
	ReasonTenantUserOnly        = "tenant admins may only create tenant users"
	ReasonOutsideOwnTenant      = "cannot act outside own tenant"
	ReasonTargetPlatformAdmin   = "cannot edit platform administrators"
)

// Decision represents the outcome of a privilege policy evaluation.
type Decision struct {
	allowed bool
	reason  string
}

// Allow constructs an allowing decision.
func Allow() Decision {
	return Decision{allowed: true}
}

// Deny constructs a denying decision with the reason surfaced to the caller.
func Deny(reason string) Decision {
	return Decision{reason: reason}
}

// Allowed reports whether the operation may proceed.
func (d Decision) Allowed() bool {
	return d.allowed
}

// Reason returns the denial reason. Empty when allowed.
func (d Decision) Reason() string {
	return d.reason
}

// Equal provides support for the go-cmp package and testing.
func (d Decision) Equal(d2 Decision) bool {
	return d.allowed == d2.allowed && d.reason == d2.reason
}

// =============================================================================

// DecideGrant evaluates whether the acting principal may grant targetRole,
// optionally scoped to targetPrefeituraID (uuid.Nil means unscoped). The
// rules run in order and the first match wins. The function performs no I/O:
// the acting assignments must be resolved by the caller beforehand.
func DecideGrant(acting []Assignment, targetRole role.Role, targetPrefeituraID uuid.UUID) Decision {
	isSuper := holdsRole(acting, role.SuperAdmin)
	isAdmin := holdsRole(acting, role.PrefeituraAdmin)

	if !isSuper && !isAdmin {
		return Deny(ReasonInsufficientPrivilege)
	}

	if targetRole.Equal(role.SuperAdmin) && !isSuper {
		return Deny(ReasonPlatformScope)
	}

	if isSuper {
		return Allow()
	}

	if !targetRole.Equal(role.PrefeituraUser) {
		return Deny(ReasonTenantUserOnly)
	}

	if !adminOf(acting, targetPrefeituraID) {
		return Deny(ReasonOutsideOwnTenant)
	}

	return Allow()
}

// DecideUpdate evaluates whether the acting principal may edit an account
// that currently holds the target assignments. Super admins may edit anyone.
// Prefeitura admins may only edit accounts holding an assignment in their own
// prefeitura and may never edit a platform admin, even one that also holds a
// role in their prefeitura.
func DecideUpdate(acting []Assignment, target []Assignment) Decision {
	isSuper := holdsRole(acting, role.SuperAdmin)
	isAdmin := holdsRole(acting, role.PrefeituraAdmin)

	if !isSuper && !isAdmin {
		return Deny(ReasonInsufficientPrivilege)
	}

	if isSuper {
		return Allow()
	}

	if holdsRole(target, role.SuperAdmin) {
		return Deny(ReasonTargetPlatformAdmin)
	}

	for _, t := range target {
		if t.PrefeituraID != nil && adminOf(acting, *t.PrefeituraID) {
			return Allow()
		}
	}

	return Deny(ReasonOutsideOwnTenant)
}

func holdsRole(assignments []Assignment, r role.Role) bool {
	for _, a := range assignments {
		if a.Role.Equal(r) {
			return true
		}
	}

	return false
}

func adminOf(assignments []Assignment, prefeituraID uuid.UUID) bool {
	for _, a := range assignments {
		if a.Role.Equal(role.PrefeituraAdmin) && a.PrefeituraID != nil && *a.PrefeituraID == prefeituraID {
			return true
		}
	}

	return false
}
