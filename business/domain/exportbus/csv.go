// Package exportbus renders filtered emenda collections into compliance
// artifacts. Both renderers are deterministic pure functions so exported
// content always reconciles with on screen aggregates.
package exportbus

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/emendasgov/emendas/business/domain/emendabus"
)

// bom lets spreadsheet tools detect the encoding.
const bom = "\ufeff"

type field struct {
	value  string
	quoted bool
}

func text(v string) field {
	return field{value: v, quoted: true}
}

func raw(v string) field {
	return field{value: v}
}

func money(v float64) field {
	return raw(strconv.FormatFloat(v, 'f', 2, 64))
}

func simNao(v bool) field {
	if v {
		return text("Sim")
	}
	return text("Não")
}

var csvHeader = []field{
	text("Número"), text("Status"), text("Tipo Concedente"), text("Nome Concedente"),
	text("Tipo Recebedor"), text("Nome Recebedor"), text("CNPJ Recebedor"),
	text("Município"), text("Estado"), text("Data Disponibilização"),
	text("Gestor Responsável"), text("Objeto"), text("Grupo Natureza Despesa"),
	text("Valor Concedente"), text("Contrapartida"), text("Valor Total"),
	text("Valor Executado"), text("% Executado"), text("Banco"),
	text("Conta Corrente"), text("Anuência Prévia SUS"), text("Data Cadastro"),
}

// CSV renders the collection as a semicolon separated document with a UTF-8
// BOM. Text fields are always double quoted with internal quotes doubled,
// monetary values stay raw decimals with two digits, dates are dd/mm/yyyy.
func CSV(emendas []emendabus.Emenda) []byte {
	var buf bytes.Buffer
	buf.WriteString(bom)

	writeRow(&buf, csvHeader)

	for _, e := range emendas {
		contrapartida := raw("")
		if e.Contrapartida != nil {
			contrapartida = money(*e.Contrapartida)
		}

		writeRow(&buf, []field{
			text(e.Numero),
			text(e.Status.String()),
			text(e.TipoConcedente),
			text(e.NomeConcedente),
			text(e.TipoRecebedor),
			text(e.NomeRecebedor),
			text(e.CNPJRecebedor.String()),
			text(e.Municipio),
			text(e.UF),
			text(e.DataDisponibilizacao.Format("02/01/2006")),
			text(e.GestorResponsavel),
			text(e.Objeto),
			text(e.GrupoNaturezaDespesa),
			money(e.ValorConcedente),
			contrapartida,
			money(e.ValorTotal()),
			money(e.ValorExecutado),
			money(e.PercentualExecutado()),
			text(e.Banco),
			text(e.ContaCorrente),
			simNao(e.AnuenciaPreviaSUS),
			text(e.CreatedAt.Format("02/01/2006")),
		})
	}

	return buf.Bytes()
}

func writeRow(buf *bytes.Buffer, fields []field) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(';')
		}

		if f.quoted {
			buf.WriteByte('"')
			buf.WriteString(strings.ReplaceAll(f.value, `"`, `""`))
			buf.WriteByte('"')
			continue
		}

		buf.WriteString(f.value)
	}

	buf.WriteString("\r\n")
}
