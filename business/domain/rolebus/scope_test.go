package rolebus_test

import (
	"errors"
	"testing"

	"github.com/emendasgov/emendas/business/domain/rolebus"
	"github.com/google/go-cmp/cmp"
)

func Test_ResolveScope(t *testing.T) {
	table := []struct {
		name        string
		assignments []rolebus.Assignment
		want        rolebus.Scope
	}{
		{
			name:        "no-assignments",
			assignments: nil,
			want:        rolebus.ScopeNone(),
		},
		{
			name:        "empty-slice",
			assignments: []rolebus.Assignment{},
			want:        rolebus.ScopeNone(),
		},
		{
			name:        "super-admin",
			assignments: []rolebus.Assignment{superAdmin()},
			want:        rolebus.ScopeAll(),
		},
		{
			name:        "super-admin-wins-over-tenant-roles",
			assignments: []rolebus.Assignment{prefeituraUser(prefA), superAdmin(), prefeituraAdmin(prefB)},
			want:        rolebus.ScopeAll(),
		},
		{
			name:        "single-tenant-admin",
			assignments: []rolebus.Assignment{prefeituraAdmin(prefA)},
			want:        rolebus.ScopePrefeitura(prefA),
		},
		{
			name:        "multiple-roles-same-tenant",
			assignments: []rolebus.Assignment{prefeituraAdmin(prefA), prefeituraUser(prefA)},
			want:        rolebus.ScopePrefeitura(prefA),
		},
	}

	for _, tt := range table {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rolebus.ResolveScope(tt.assignments)
			if err != nil {
				t.Fatalf("resolve scope: %s", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("scope mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// A principal holding roles in two distinct prefeituras is rejected, never
// resolved to an arbitrary one of them.
func Test_ResolveScope_Ambiguous(t *testing.T) {
	got, err := rolebus.ResolveScope([]rolebus.Assignment{
		prefeituraUser(prefA),
		prefeituraUser(prefB),
	})

	if !errors.Is(err, rolebus.ErrAmbiguousScope) {
		t.Fatalf("expected ErrAmbiguousScope, got %v", err)
	}

	if !got.IsNone() {
		t.Errorf("expected none scope on ambiguity, got %s", got)
	}
}
