package exportbus

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/emendasgov/emendas/business/domain/emendabus"
	"github.com/emendasgov/emendas/business/domain/relatoriobus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrintDoc carries everything the printable report needs. Resumo must be
// computed over the same Emendas slice that fills the table, the template
// never recomputes or refilters.
type PrintDoc struct {
	Prefeitura string
	Filtro     string
	GeradoEm   time.Time
	Emendas    []emendabus.Emenda
	Resumo     relatoriobus.Resumo
}

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

var printTmpl = template.Must(template.New("impressao").Funcs(template.FuncMap{
	"moeda": func(v float64) string {
		return ptBR.Sprintf("R$ %.2f", v)
	},
	"pct": func(v float64) string {
		return ptBR.Sprintf("%.2f%%", v)
	},
	"data": func(t time.Time) string {
		return t.Format("02/01/2006")
	},
	"dataHora": func(t time.Time) string {
		return t.Format("02/01/2006 15:04")
	},
	"simNao": func(v bool) string {
		if v {
			return "Sim"
		}
		return "Não"
	},
	"moedaPtr": func(v *float64) string {
		if v == nil {
			return "-"
		}
		return ptBR.Sprintf("R$ %.2f", *v)
	},
}).Parse(printHTML))

// Print renders a self contained printable HTML document. All styles are
// inline so the bytes can be saved to disk and opened offline unchanged.
func Print(doc PrintDoc) ([]byte, error) {
	var buf bytes.Buffer
	if err := printTmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}

	return buf.Bytes(), nil
}

const printHTML = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Relatório de Emendas - {{.Prefeitura}}</title>
</head>
<body style="font-family: Arial, Helvetica, sans-serif; color: #1a1a1a; margin: 24px;">
<div style="border-bottom: 2px solid #2c5282; padding-bottom: 12px; margin-bottom: 16px;">
	<h1 style="font-size: 20px; margin: 0;">Relatório de Emendas</h1>
	<p style="margin: 4px 0 0 0; font-size: 13px;">{{.Prefeitura}}</p>
	<p style="margin: 2px 0 0 0; font-size: 12px; color: #555;">Período: {{.Filtro}} &middot; Gerado em {{dataHora .GeradoEm}}</p>
</div>
<table style="width: 100%; border-collapse: collapse; margin-bottom: 20px; font-size: 12px;">
	<tr>
		<td style="border: 1px solid #cbd5e0; padding: 6px 10px; background: #ebf4ff;">Emendas: <strong>{{.Resumo.Total}}</strong></td>
		<td style="border: 1px solid #cbd5e0; padding: 6px 10px; background: #ebf4ff;">Valor Concedente: <strong>{{moeda .Resumo.SomaValorConcedente}}</strong></td>
		<td style="border: 1px solid #cbd5e0; padding: 6px 10px; background: #ebf4ff;">Contrapartida: <strong>{{moeda .Resumo.SomaContrapartida}}</strong></td>
		<td style="border: 1px solid #cbd5e0; padding: 6px 10px; background: #ebf4ff;">Valor Total: <strong>{{moeda .Resumo.SomaTotal}}</strong></td>
		<td style="border: 1px solid #cbd5e0; padding: 6px 10px; background: #ebf4ff;">Executado: <strong>{{moeda .Resumo.SomaValorExecutado}}</strong> ({{pct .Resumo.PercentualExecutado}})</td>
	</tr>
</table>
<table style="width: 100%; border-collapse: collapse; font-size: 11px;">
	<thead>
		<tr style="background: #2c5282; color: #fff;">
			<th style="border: 1px solid #cbd5e0; padding: 5px; text-align: left;">Número</th>
			<th style="border: 1px solid #cbd5e0; padding: 5px; text-align: left;">Status</th>
			<th style="border: 1px solid #cbd5e0; padding: 5px; text-align: left;">Concedente</th>
			<th style="border: 1px solid #cbd5e0; padding: 5px; text-align: left;">Recebedor</th>
			<th style="border: 1px solid #cbd5e0; padding: 5px; text-align: left;">Objeto</th>
			<th style="border: 1px solid #cbd5e0; padding: 5px; text-align: left;">Disponibilização</th>
			<th style="border: 1px solid #cbd5e0; padding: 5px; text-align: right;">Valor Concedente</th>
			<th style="border: 1px solid #cbd5e0; padding: 5px; text-align: right;">Contrapartida</th>
			<th style="border: 1px solid #cbd5e0; padding: 5px; text-align: right;">Valor Total</th>
			<th style="border: 1px solid #cbd5e0; padding: 5px; text-align: right;">Executado</th>
			<th style="border: 1px solid #cbd5e0; padding: 5px; text-align: right;">% Exec.</th>
			<th style="border: 1px solid #cbd5e0; padding: 5px; text-align: center;">SUS</th>
		</tr>
	</thead>
	<tbody>
	{{range .Emendas}}
		<tr>
			<td style="border: 1px solid #cbd5e0; padding: 5px;">{{.Numero}}</td>
			<td style="border: 1px solid #cbd5e0; padding: 5px;">{{.Status}}</td>
			<td style="border: 1px solid #cbd5e0; padding: 5px;">{{.NomeConcedente}}</td>
			<td style="border: 1px solid #cbd5e0; padding: 5px;">{{.NomeRecebedor}}</td>
			<td style="border: 1px solid #cbd5e0; padding: 5px;">{{.Objeto}}</td>
			<td style="border: 1px solid #cbd5e0; padding: 5px;">{{data .DataDisponibilizacao}}</td>
			<td style="border: 1px solid #cbd5e0; padding: 5px; text-align: right;">{{moeda .ValorConcedente}}</td>
			<td style="border: 1px solid #cbd5e0; padding: 5px; text-align: right;">{{moedaPtr .Contrapartida}}</td>
			<td style="border: 1px solid #cbd5e0; padding: 5px; text-align: right;">{{moeda .ValorTotal}}</td>
			<td style="border: 1px solid #cbd5e0; padding: 5px; text-align: right;">{{moeda .ValorExecutado}}</td>
			<td style="border: 1px solid #cbd5e0; padding: 5px; text-align: right;">{{pct .PercentualExecutado}}</td>
			<td style="border: 1px solid #cbd5e0; padding: 5px; text-align: center;">{{simNao .AnuenciaPreviaSUS}}</td>
		</tr>
	{{else}}
		<tr>
			<td colspan="12" style="border: 1px solid #cbd5e0; padding: 10px; text-align: center; color: #777;">Nenhuma emenda encontrada para o período selecionado.</td>
		</tr>
	{{end}}
	</tbody>
</table>
</body>
</html>
`
