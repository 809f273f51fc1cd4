package rolebus

import (
	"errors"

	"github.com/emendasgov/emendas/business/types/role"
	"github.com/google/uuid"
)

// ErrAmbiguousScope is returned when a principal holds assignments for more
// than one prefeitura. The system does not support multi-prefeitura
// principals, so no arbitrary pick is made: callers must fail closed.
var ErrAmbiguousScope = errors.New("principal holds assignments for multiple prefeituras")

type scopeKind int

const (
	scopeNone scopeKind = iota
	scopePrefeitura
	scopeAll
)

// Scope represents the data visibility applied to every read of emenda
// collections: everything, a single prefeitura, or nothing.
type Scope struct {
	kind         scopeKind
	prefeituraID uuid.UUID
}

// ScopeAll constructs the platform-wide scope.
func ScopeAll() Scope {
	return Scope{kind: scopeAll}
}

// ScopePrefeitura constructs a scope restricted to a single prefeitura.
func ScopePrefeitura(prefeituraID uuid.UUID) Scope {
	return Scope{kind: scopePrefeitura, prefeituraID: prefeituraID}
}

// ScopeNone constructs the empty scope. Readers must short-circuit to an
// empty result without issuing a query.
func ScopeNone() Scope {
	return Scope{kind: scopeNone}
}

// IsAll reports whether the scope covers every prefeitura.
func (s Scope) IsAll() bool {
	return s.kind == scopeAll
}

// IsNone reports whether the scope covers nothing.
func (s Scope) IsNone() bool {
	return s.kind == scopeNone
}

// PrefeituraID returns the single prefeitura the scope is restricted to and
// whether such a restriction exists.
func (s Scope) PrefeituraID() (uuid.UUID, bool) {
	if s.kind != scopePrefeitura {
		return uuid.Nil, false
	}

	return s.prefeituraID, true
}

// Equal provides support for the go-cmp package and testing.
func (s Scope) Equal(s2 Scope) bool {
	return s.kind == s2.kind && s.prefeituraID == s2.prefeituraID
}

// String implements the stringer interface.
func (s Scope) String() string {
	switch s.kind {
	case scopeAll:
		return "all"
	case scopePrefeitura:
		return "prefeitura:" + s.prefeituraID.String()
	default:
		return "none"
	}
}

// =============================================================================

// ResolveScope folds a principal's full set of assignments into the data
// visibility scope applied to every read query. Any super admin assignment
// wins. A principal with assignments for two distinct prefeituras is
// rejected with ErrAmbiguousScope rather than silently picking one.
func ResolveScope(assignments []Assignment) (Scope, error) {
	var prefeituraID uuid.UUID
	var found bool

	for _, a := range assignments {
		if a.Role.Equal(role.SuperAdmin) {
			return ScopeAll(), nil
		}

		if a.PrefeituraID == nil {
			continue
		}

		switch {
		case !found:
			prefeituraID = *a.PrefeituraID
			found = true

		case prefeituraID != *a.PrefeituraID:
			return ScopeNone(), ErrAmbiguousScope
		}
	}

	if !found {
		return ScopeNone(), nil
	}

	return ScopePrefeitura(prefeituraID), nil
}
