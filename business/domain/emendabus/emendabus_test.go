package emendabus_test

import (
	"context"
	"testing"
	"time"

	"github.com/emendasgov/emendas/business/domain/emendabus"
	"github.com/emendasgov/emendas/business/domain/rolebus"
	"github.com/emendasgov/emendas/business/sdk/order"
	"github.com/emendasgov/emendas/business/sdk/page"
	"github.com/emendasgov/emendas/business/sdk/sqldb"
	"github.com/emendasgov/emendas/business/types/status"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var (
	prefA = uuid.MustParse("7b9f0a52-1f5e-4a2d-9c3b-0d6f1a2b3c4d")
	prefB = uuid.MustParse("e2c4a6d8-0b1a-4c3d-8e5f-6a7b8c9d0e1f")
)

// store records every query issued so the tests can assert that a None scope
// never reaches the database.
type store struct {
	emendas    []emendabus.Emenda
	queryCount int
	lastFilter emendabus.QueryFilter
}

func (s *store) NewWithTx(tx sqldb.CommitRollbacker) (emendabus.Storer, error) {
	return s, nil
}

func (s *store) Create(ctx context.Context, e emendabus.Emenda) error {
	s.emendas = append(s.emendas, e)
	return nil
}

func (s *store) Update(ctx context.Context, e emendabus.Emenda) error {
	for i := range s.emendas {
		if s.emendas[i].ID == e.ID {
			s.emendas[i] = e
		}
	}
	return nil
}

func (s *store) Delete(ctx context.Context, e emendabus.Emenda) error {
	for i := range s.emendas {
		if s.emendas[i].ID == e.ID {
			s.emendas = append(s.emendas[:i], s.emendas[i+1:]...)
			break
		}
	}
	return nil
}

func (s *store) matches(filter emendabus.QueryFilter) []emendabus.Emenda {
	var out []emendabus.Emenda
	for _, e := range s.emendas {
		if filter.PrefeituraID != nil && e.PrefeituraID != *filter.PrefeituraID {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (s *store) Query(ctx context.Context, filter emendabus.QueryFilter, orderBy order.By, page page.Page) ([]emendabus.Emenda, error) {
	s.queryCount++
	s.lastFilter = filter
	return s.matches(filter), nil
}

func (s *store) QueryAll(ctx context.Context, filter emendabus.QueryFilter, orderBy order.By) ([]emendabus.Emenda, error) {
	s.queryCount++
	s.lastFilter = filter
	return s.matches(filter), nil
}

func (s *store) Count(ctx context.Context, filter emendabus.QueryFilter) (int, error) {
	s.queryCount++
	return len(s.matches(filter)), nil
}

func (s *store) QueryByID(ctx context.Context, emendaID uuid.UUID) (emendabus.Emenda, error) {
	for _, e := range s.emendas {
		if e.ID == emendaID {
			return e, nil
		}
	}
	return emendabus.Emenda{}, emendabus.ErrNotFound
}

func seed(t *testing.T, core *emendabus.Core, prefID uuid.UUID) emendabus.Emenda {
	t.Helper()

	e, err := core.Create(context.Background(), rolebus.ScopeAll(), emendabus.NewEmenda{
		PrefeituraID:         prefID,
		Numero:               "001/2024",
		Status:               status.Pendente,
		DataDisponibilizacao: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		ValorConcedente:      80_000,
	})
	require.NoError(t, err)

	return e
}

// =============================================================================

// A None scope must answer empty without a single store query.
func Test_QueryScoped_None(t *testing.T) {
	s := &store{}
	core := emendabus.NewCore(s)
	seed(t, core, prefA)

	emendas, err := core.QueryScoped(context.Background(), rolebus.ScopeNone(), emendabus.QueryFilter{}, emendabus.DefaultOrderBy, page.MustParse("1", "10"))
	require.NoError(t, err)
	require.Empty(t, emendas)

	all, err := core.QueryAllScoped(context.Background(), rolebus.ScopeNone(), emendabus.QueryFilter{}, emendabus.DefaultOrderBy)
	require.NoError(t, err)
	require.Empty(t, all)

	count, err := core.CountScoped(context.Background(), rolebus.ScopeNone(), emendabus.QueryFilter{})
	require.NoError(t, err)
	require.Zero(t, count)

	require.Zero(t, s.queryCount)
}

// A prefeitura scope pins the filter to its own prefeitura even when the
// caller asked for another one.
func Test_QueryScoped_Pinned(t *testing.T) {
	s := &store{}
	core := emendabus.NewCore(s)
	seed(t, core, prefA)
	seed(t, core, prefB)

	filter := emendabus.QueryFilter{PrefeituraID: &prefB}

	emendas, err := core.QueryScoped(context.Background(), rolebus.ScopePrefeitura(prefA), filter, emendabus.DefaultOrderBy, page.MustParse("1", "10"))
	require.NoError(t, err)

	require.Len(t, emendas, 1)
	require.Equal(t, prefA, emendas[0].PrefeituraID)
	require.Equal(t, prefA, *s.lastFilter.PrefeituraID)
}

func Test_QueryByID_OutOfScope(t *testing.T) {
	s := &store{}
	core := emendabus.NewCore(s)
	e := seed(t, core, prefB)

	// The record exists, but a scope for another prefeitura must see a plain
	// not found, indistinguishable from a missing record.
	_, err := core.QueryByID(context.Background(), rolebus.ScopePrefeitura(prefA), e.ID)
	require.ErrorIs(t, err, emendabus.ErrNotFound)

	_, err = core.QueryByID(context.Background(), rolebus.ScopeNone(), e.ID)
	require.ErrorIs(t, err, emendabus.ErrNotFound)

	got, err := core.QueryByID(context.Background(), rolebus.ScopePrefeitura(prefB), e.ID)
	require.NoError(t, err)
	require.Equal(t, e.ID, got.ID)
}

func Test_Create_OutOfScope(t *testing.T) {
	s := &store{}
	core := emendabus.NewCore(s)

	_, err := core.Create(context.Background(), rolebus.ScopePrefeitura(prefA), emendabus.NewEmenda{
		PrefeituraID: prefB,
		Numero:       "001/2024",
		Status:       status.Pendente,
	})
	require.ErrorIs(t, err, emendabus.ErrScopeDenied)
	require.Empty(t, s.emendas)

	_, err = core.Create(context.Background(), rolebus.ScopeNone(), emendabus.NewEmenda{
		PrefeituraID: prefA,
		Numero:       "001/2024",
		Status:       status.Pendente,
	})
	require.ErrorIs(t, err, emendabus.ErrScopeDenied)
}

func Test_Update_OutOfScope(t *testing.T) {
	s := &store{}
	core := emendabus.NewCore(s)
	e := seed(t, core, prefB)

	numero := "002/2024"
	_, err := core.Update(context.Background(), rolebus.ScopePrefeitura(prefA), e, emendabus.UpdateEmenda{Numero: &numero})
	require.ErrorIs(t, err, emendabus.ErrScopeDenied)

	err = core.Delete(context.Background(), rolebus.ScopePrefeitura(prefA), e)
	require.ErrorIs(t, err, emendabus.ErrScopeDenied)
	require.Len(t, s.emendas, 1)
}

func Test_Update(t *testing.T) {
	s := &store{}
	core := emendabus.NewCore(s)
	e := seed(t, core, prefA)

	numero := "002/2024"
	sts := status.Aprovado
	contrapartida := 5_000.0

	updated, err := core.Update(context.Background(), rolebus.ScopePrefeitura(prefA), e, emendabus.UpdateEmenda{
		Numero:        &numero,
		Status:        &sts,
		Contrapartida: &contrapartida,
	})
	require.NoError(t, err)

	require.Equal(t, numero, updated.Numero)
	require.Equal(t, sts, updated.Status)
	require.Equal(t, 85_000.0, updated.ValorTotal())
}

// =============================================================================

func Test_DerivedValues(t *testing.T) {
	contrapartida := 20_000.0

	e := emendabus.Emenda{
		ValorConcedente: 100_000,
		Contrapartida:   &contrapartida,
		ValorExecutado:  60_000,
	}

	require.Equal(t, 120_000.0, e.ValorTotal())
	require.Equal(t, 50.0, e.PercentualExecutado())

	// A zero total never divides.
	var zero emendabus.Emenda
	require.Zero(t, zero.ValorTotal())
	require.Zero(t, zero.PercentualExecutado())
}
