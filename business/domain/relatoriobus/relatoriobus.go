// Package relatoriobus computes financial aggregates over emenda
// collections. Everything here is a pure function over already scoped data,
// so the same numbers feed the dashboard, the CSV and the printable report.
package relatoriobus

import (
	"sort"
	"strconv"

	"github.com/emendasgov/emendas/business/domain/emendabus"
	"github.com/emendasgov/emendas/business/types/status"
)

// AnoTodos is the year selector value meaning the whole collection.
const AnoTodos = "todos"

// Resumo holds the aggregates for a filtered emenda collection. It is
// derived on demand and never persisted.
type Resumo struct {
	Total               int
	SomaValorConcedente float64
	SomaContrapartida   float64
	SomaTotal           float64
	SomaValorExecutado  float64
	PercentualExecutado float64
	PorStatus           map[status.Status]int
}

// FiltrarAno returns the emendas whose disbursement availability date falls
// in the given calendar year, local calendar. An empty, "todos" or
// unparseable selector returns the input unchanged.
func FiltrarAno(emendas []emendabus.Emenda, ano string) []emendabus.Emenda {
	if ano == "" || ano == AnoTodos {
		return emendas
	}

	year, err := strconv.Atoi(ano)
	if err != nil {
		return emendas
	}

	filtered := make([]emendabus.Emenda, 0, len(emendas))
	for _, e := range emendas {
		if e.DataDisponibilizacao.Year() == year {
			filtered = append(filtered, e)
		}
	}

	return filtered
}

// Aggregate computes the resumo for the collection after applying the year
// selector. A single in order fold keeps repeated runs bit identical. An
// empty collection yields zero sums and a zero percentage.
func Aggregate(emendas []emendabus.Emenda, ano string) Resumo {
	filtered := FiltrarAno(emendas, ano)

	porStatus := make(map[status.Status]int, len(status.All()))
	for _, s := range status.All() {
		porStatus[s] = 0
	}

	r := Resumo{
		Total:     len(filtered),
		PorStatus: porStatus,
	}

	for _, e := range filtered {
		r.SomaValorConcedente += e.ValorConcedente
		if e.Contrapartida != nil {
			r.SomaContrapartida += *e.Contrapartida
		}
		r.SomaValorExecutado += e.ValorExecutado
		r.PorStatus[e.Status]++
	}

	r.SomaTotal = r.SomaValorConcedente + r.SomaContrapartida

	if r.SomaTotal != 0 {
		r.PercentualExecutado = r.SomaValorExecutado / r.SomaTotal * 100
	}

	return r
}

// AnosDisponiveis returns the distinct years present in the unfiltered
// collection, most recent first. It feeds the year selector.
func AnosDisponiveis(emendas []emendabus.Emenda) []int {
	seen := make(map[int]bool)
	for _, e := range emendas {
		seen[e.DataDisponibilizacao.Year()] = true
	}

	anos := make([]int, 0, len(seen))
	for ano := range seen {
		anos = append(anos, ano)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(anos)))

	return anos
}
