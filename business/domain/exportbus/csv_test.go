package exportbus_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/emendasgov/emendas/business/domain/emendabus"
	"github.com/emendasgov/emendas/business/domain/exportbus"
	"github.com/emendasgov/emendas/business/types/cnpj"
	"github.com/emendasgov/emendas/business/types/status"
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
			TipoConcedente:       "Federal",
			NomeConcedente:       "Ministério da Saúde",
			TipoRecebedor:        "Fundo Municipal",
			NomeRecebedor:        "Fundo Municipal de Saúde",
			CNPJRecebedor:        cnpj.MustParseNull("12.345.678/0001-95"),
			Municipio:            "São Paulo",
			UF:                   "SP",
			DataDisponibilizacao: time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC),
			GestorResponsavel:    "João Lima",
			Objeto:               "Aquisição de equipamentos hospitalares",
			GrupoNaturezaDespesa: "Investimento",
			ValorConcedente:      100_000,
			Contrapartida:        ptr(20_000),
			ValorExecutado:       60_000,
			Banco:                "Banco do Brasil",
			ContaCorrente:        "12345-6",
			AnuenciaPreviaSUS:    true,
			CreatedAt:            time.Date(2023, 2, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			Numero:               "002/2023",
			Status:               status.EmExecucao,
			Objeto:               `Reforma da escola "Monteiro Lobato"; fase 2`,
			Municipio:            "Campinas",
			UF:                   "SP",
			DataDisponibilizacao: time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
			ValorConcedente:      50_000,
			ValorExecutado:       10_000,
			CreatedAt:            time.Date(2023, 8, 10, 9, 30, 0, 0, time.UTC),
		},
		{
			Numero:               "001/2024",
			Status:               status.Pendente,
			Objeto:               "Pavimentação asfáltica",
			Municipio:            "Santos",
			UF:                   "SP",
			DataDisponibilizacao: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			ValorConcedente:      80_000,
			CreatedAt:            time.Date(2024, 1, 5, 14, 0, 0, 0, time.UTC),
		},
	}
}

func Test_CSV_BOM(t *testing.T) {
	data := exportbus.CSV(nil)
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
}

// The export must survive a round trip through a standards compliant CSV
// parser using the `;` delimiter, embedded quotes included.
func Test_CSV_RoundTrip(t *testing.T) {
	data := exportbus.CSV(fixture())

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})))
	r.Comma = ';'

	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	header := records[0]
	require.Len(t, header, 22)
	require.Equal(t, "Número", header[0])
	require.Equal(t, "Data Cadastro", header[21])

	first := records[1]
	require.Equal(t, "001/2023", first[0])
	require.Equal(t, "concluido", first[1])
	require.Equal(t, "12.345.678/0001-95", first[6])
	require.Equal(t, "15/03/2023", first[9])
	require.Equal(t, "100000.00", first[13])
	require.Equal(t, "20000.00", first[14])
	require.Equal(t, "120000.00", first[15])
	require.Equal(t, "60000.00", first[16])
	require.Equal(t, "50.00", first[17])
	require.Equal(t, "Sim", first[20])
	require.Equal(t, "01/02/2023", first[21])

	second := records[2]
	require.Equal(t, `Reforma da escola "Monteiro Lobato"; fase 2`, second[11])
	// Absent contrapartida stays an empty cell rather than 0.00.
	require.Equal(t, "", second[14])
	require.Equal(t, "Não", second[20])

	third := records[3]
	require.Equal(t, "0.00", third[16])
	require.Equal(t, "0.00", third[17])
}

// Same input, same bytes. The artifact must reconcile with the dashboard on
// repeated exports.
func Test_CSV_Deterministic(t *testing.T) {
	emendas := fixture()
	require.Equal(t, exportbus.CSV(emendas), exportbus.CSV(emendas))
}
