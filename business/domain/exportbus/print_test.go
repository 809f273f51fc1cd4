package exportbus_test

import (
	"strings"
	"testing"
	"time"

	"github.com/emendasgov/emendas/business/domain/exportbus"
	"github.com/emendasgov/emendas/business/domain/relatoriobus"
	"github.com/stretchr/testify/require"
)

func printDoc() exportbus.PrintDoc {
	emendas := fixture()

	return exportbus.PrintDoc{
		Prefeitura: "Prefeitura de São Paulo",
		Filtro:     "Todos os anos",
		GeradoEm:   time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC),
		Emendas:    emendas,
		Resumo:     relatoriobus.Aggregate(emendas, relatoriobus.AnoTodos),
	}
}

func Test_Print(t *testing.T) {
	data, err := exportbus.Print(printDoc())
	require.NoError(t, err)

	html := string(data)

	require.Contains(t, html, "Prefeitura de São Paulo")
	require.Contains(t, html, "Período: Todos os anos")
	require.Contains(t, html, "Gerado em 01/06/2024 15:30")

	// One table row per emenda.
	require.Equal(t, 3, strings.Count(html, "15/03/2023")+strings.Count(html, "01/09/2023")+strings.Count(html, "20/01/2024"))

	// Currency and percentage rendered pt-BR style.
	require.Contains(t, html, "R$ 100.000,00")
	require.Contains(t, html, "50,00%")

	// Self contained document, no external references.
	require.NotContains(t, html, "<link")
	require.NotContains(t, html, "<script")
}

// The summary block and the table come from the same slice, so the sums in
// the header must match a manual fold over the rendered rows.
func Test_Print_SummaryMatchesRows(t *testing.T) {
	doc := printDoc()

	data, err := exportbus.Print(doc)
	require.NoError(t, err)

	html := string(data)

	// Fixture totals: 230k concedente, 20k contrapartida, 250k total.
	require.Contains(t, html, "Valor Concedente: <strong>R$ 230.000,00</strong>")
	require.Contains(t, html, "Contrapartida: <strong>R$ 20.000,00</strong>")
	require.Contains(t, html, "Valor Total: <strong>R$ 250.000,00</strong>")
	require.Contains(t, html, "Emendas: <strong>3</strong>")
}

func Test_Print_Empty(t *testing.T) {
	doc := exportbus.PrintDoc{
		Prefeitura: "Prefeitura de Santos",
		Filtro:     "2020",
		GeradoEm:   time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC),
		Resumo:     relatoriobus.Aggregate(nil, relatoriobus.AnoTodos),
	}

	data, err := exportbus.Print(doc)
	require.NoError(t, err)

	html := string(data)
	require.Contains(t, html, "Nenhuma emenda encontrada")
	require.Contains(t, html, "Emendas: <strong>0</strong>")
	require.Contains(t, html, "(0,00%)")
}

func Test_Print_Deterministic(t *testing.T) {
	doc := printDoc()

	first, err := exportbus.Print(doc)
	require.NoError(t, err)

	second, err := exportbus.Print(doc)
	require.NoError(t, err)

	require.Equal(t, first, second)
}
