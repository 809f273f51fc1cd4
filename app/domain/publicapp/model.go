package publicapp

import (
	"encoding/json"
	"time"

	"github.com/emendasgov/emendas/business/domain/emendabus"
	"github.com/emendasgov/emendas/business/domain/prefeiturabus"
	"github.com/emendasgov/emendas/business/domain/relatoriobus"
)

// dateOnly is the wire format for the disbursement availability date.
const dateOnly = "2006-01-02"

// Prefeitura is the public directory entry for an enabled prefeitura.
type Prefeitura struct {
	ID        string `json:"id"`
	Nome      string `json:"nome"`
	Slug      string `json:"slug"`
	Municipio string `json:"municipio"`
	UF        string `json:"uf"`
	LogoURL   string `json:"logo_url,omitempty"`
}

func toAppPrefeitura(bus prefeiturabus.Prefeitura) Prefeitura {
	app := Prefeitura{
		ID:        bus.ID.String(),
		Nome:      bus.Nome.String(),
		Slug:      bus.Slug.String(),
		Municipio: bus.Municipio,
		UF:        bus.UF,
	}

	if bus.LogoURL != nil {
		app.LogoURL = *bus.LogoURL
	}

	return app
}

// Prefeituras is the public listing response.
type Prefeituras []Prefeitura

// Encode implements the web.Encoder interface.
func (p Prefeituras) Encode() ([]byte, string, error) {
	data, err := json.Marshal(p)
	return data, "application/json", err
}

func toAppPrefeituras(prefs []prefeiturabus.Prefeitura) Prefeituras {
	app := make(Prefeituras, len(prefs))
	for i, p := range prefs {
		app[i] = toAppPrefeitura(p)
	}
	return app
}

// =============================================================================

// Emenda is the transparency view of an emenda. Banking details stay out of
// the public payload.
type Emenda struct {
	ID                   string   `json:"id"`
	Numero               string   `json:"numero"`
	Status               string   `json:"status"`
	TipoConcedente       string   `json:"tipo_concedente"`
	NomeConcedente       string   `json:"nome_concedente"`
	TipoRecebedor        string   `json:"tipo_recebedor"`
	NomeRecebedor        string   `json:"nome_recebedor"`
	Municipio            string   `json:"municipio"`
	UF                   string   `json:"uf"`
	DataDisponibilizacao string   `json:"data_disponibilizacao"`
	Objeto               string   `json:"objeto"`
	GrupoNaturezaDespesa string   `json:"grupo_natureza_despesa"`
	ValorConcedente      float64  `json:"valor_concedente"`
	Contrapartida        *float64 `json:"contrapartida"`
	ValorTotal           float64  `json:"valor_total"`
	ValorExecutado       float64  `json:"valor_executado"`
	PercentualExecutado  float64  `json:"percentual_executado"`
	AnuenciaPreviaSUS    bool     `json:"anuencia_previa_sus"`
	DateCreated          string   `json:"dateCreated"`
}

func toAppEmenda(bus emendabus.Emenda) Emenda {
	return Emenda{
		ID:                   bus.ID.String(),
		Numero:               bus.Numero,
		Status:               bus.Status.String(),
		TipoConcedente:       bus.TipoConcedente,
		NomeConcedente:       bus.NomeConcedente,
		TipoRecebedor:        bus.TipoRecebedor,
		NomeRecebedor:        bus.NomeRecebedor,
		Municipio:            bus.Municipio,
		UF:                   bus.UF,
		DataDisponibilizacao: bus.DataDisponibilizacao.Format(dateOnly),
		Objeto:               bus.Objeto,
		GrupoNaturezaDespesa: bus.GrupoNaturezaDespesa,
		ValorConcedente:      bus.ValorConcedente,
		Contrapartida:        bus.Contrapartida,
		ValorTotal:           bus.ValorTotal(),
		ValorExecutado:       bus.ValorExecutado,
		PercentualExecutado:  bus.PercentualExecutado(),
		AnuenciaPreviaSUS:    bus.AnuenciaPreviaSUS,
		DateCreated:          bus.CreatedAt.Format(time.RFC3339),
	}
}

func toAppEmendas(emendas []emendabus.Emenda) []Emenda {
	app := make([]Emenda, len(emendas))
	for i, e := range emendas {
		app[i] = toAppEmenda(e)
	}
	return app
}

// =============================================================================

// Resumo is the aggregate view for a prefeitura's public page.
type Resumo struct {
	Prefeitura          Prefeitura     `json:"prefeitura"`
	Total               int            `json:"total"`
	SomaValorConcedente float64        `json:"soma_valor_concedente"`
	SomaContrapartida   float64        `json:"soma_contrapartida"`
	SomaTotal           float64        `json:"soma_total"`
	SomaValorExecutado  float64        `json:"soma_valor_executado"`
	PercentualExecutado float64        `json:"percentual_executado"`
	PorStatus           map[string]int `json:"por_status"`
	AnosDisponiveis     []int          `json:"anos_disponiveis"`
}

// Encode implements the web.Encoder interface.
func (r Resumo) Encode() ([]byte, string, error) {
	data, err := json.Marshal(r)
	return data, "application/json", err
}

func toAppResumo(pref prefeiturabus.Prefeitura, bus relatoriobus.Resumo, anos []int) Resumo {
	porStatus := make(map[string]int, len(bus.PorStatus))
	for sts, count := range bus.PorStatus {
		porStatus[sts.String()] = count
	}

	return Resumo{
		Prefeitura:          toAppPrefeitura(pref),
		Total:               bus.Total,
		SomaValorConcedente: bus.SomaValorConcedente,
		SomaContrapartida:   bus.SomaContrapartida,
		SomaTotal:           bus.SomaTotal,
		SomaValorExecutado:  bus.SomaValorExecutado,
		PercentualExecutado: bus.PercentualExecutado,
		PorStatus:           porStatus,
		AnosDisponiveis:     anos,
	}
}
