package relatoriobus_test

import (
	"testing"
	"time"

	"github.com/emendasgov/emendas/business/domain/emendabus"
	"github.com/emendasgov/emendas/business/domain/relatoriobus"
	"github.com/emendasgov/emendas/business/types/status"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 {
	return &v
}

func fixture() []emendabus.Emenda {
	return []emendabus.Emenda{
		{
			Numero:               "001/2023",
			Status:               status.Concluido,
			DataDisponibilizacao: time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC),
			ValorConcedente:      100_000,
			Contrapartida:        ptr(20_000),
			ValorExecutado:       120_000,
		},
		{
			Numero:               "002/2023",
			Status:               status.EmExecucao,
			DataDisponibilizacao: time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
			ValorConcedente:      50_000,
			ValorExecutado:       10_000,
		},
		{
			Numero:               "001/2024",
			Status:               status.Pendente,
			DataDisponibilizacao: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			ValorConcedente:      80_000,
			Contrapartida:        ptr(5_000),
			ValorExecutado:       0,
		},
	}
}

func Test_Aggregate(t *testing.T) {
	r := relatoriobus.Aggregate(fixture(), relatoriobus.AnoTodos)

	require.Equal(t, 3, r.Total)
	require.Equal(t, 230_000.0, r.SomaValorConcedente)
	require.Equal(t, 25_000.0, r.SomaContrapartida)
	require.Equal(t, 255_000.0, r.SomaTotal)
	require.Equal(t, 130_000.0, r.SomaValorExecutado)
	require.InDelta(t, 130_000.0/255_000.0*100, r.PercentualExecutado, 1e-9)

	// Every known status appears, zero counted ones included.
	want := map[status.Status]int{
		status.Pendente:   1,
		status.Aprovado:   0,
		status.EmExecucao: 1,
		status.Concluido:  1,
		status.Cancelado:  0,
	}
	if diff := cmp.Diff(want, r.PorStatus); diff != "" {
		t.Errorf("por status mismatch (-want +got):\n%s", diff)
	}
}

func Test_Aggregate_YearFilter(t *testing.T) {
	r := relatoriobus.Aggregate(fixture(), "2023")

	require.Equal(t, 2, r.Total)
	require.Equal(t, 150_000.0, r.SomaValorConcedente)
	require.Equal(t, 20_000.0, r.SomaContrapartida)
	require.Equal(t, 170_000.0, r.SomaTotal)
	require.Equal(t, 130_000.0, r.SomaValorExecutado)
}

// Re-running the aggregation over the same input must be bit identical, the
// numbers feed both the dashboard and exported artifacts.
func Test_Aggregate_Idempotent(t *testing.T) {
	emendas := fixture()

	first := relatoriobus.Aggregate(emendas, relatoriobus.AnoTodos)
	second := relatoriobus.Aggregate(emendas, relatoriobus.AnoTodos)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("aggregation not idempotent (-first +second):\n%s", diff)
	}
}

func Test_Aggregate_Empty(t *testing.T) {
	r := relatoriobus.Aggregate(nil, relatoriobus.AnoTodos)

	require.Zero(t, r.Total)
	require.Zero(t, r.SomaTotal)
	require.Zero(t, r.PercentualExecutado)
	require.Len(t, r.PorStatus, len(status.All()))
}

func Test_FiltrarAno(t *testing.T) {
	emendas := fixture()

	require.Len(t, relatoriobus.FiltrarAno(emendas, "2023"), 2)
	require.Len(t, relatoriobus.FiltrarAno(emendas, "2024"), 1)
	require.Empty(t, relatoriobus.FiltrarAno(emendas, "2020"))

	// Empty, "todos" and garbage selectors leave the collection unchanged.
	require.Len(t, relatoriobus.FiltrarAno(emendas, ""), 3)
	require.Len(t, relatoriobus.FiltrarAno(emendas, relatoriobus.AnoTodos), 3)
	require.Len(t, relatoriobus.FiltrarAno(emendas, "abc"), 3)
}

func Test_AnosDisponiveis(t *testing.T) {
	anos := relatoriobus.AnosDisponiveis(fixture())
	require.Equal(t, []int{2024, 2023}, anos)

	require.Empty(t, relatoriobus.AnosDisponiveis(nil))
}
