package relatorioapp

import (
	"encoding/json"
	"net/http"

	"github.com/emendasgov/emendas/business/domain/relatoriobus"
)

// Resumo is the aggregate response for the dashboard.
type Resumo struct {
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

func toAppResumo(bus relatoriobus.Resumo, anos []int) Resumo {
	porStatus := make(map[string]int, len(bus.PorStatus))
	for sts, count := range bus.PorStatus {
		porStatus[sts.String()] = count
	}

	return Resumo{
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

// =============================================================================

// fileResponse writes pre-rendered export bytes with an optional content
// disposition for downloads.
type fileResponse struct {
	data        []byte
	contentType string
	disposition string
}

// Encode implements the web.Encoder interface.
func (f fileResponse) Encode() ([]byte, string, error) {
	return f.data, f.contentType, nil
}

// SetHeaders implements the web headerSetter interface.
func (f fileResponse) SetHeaders(h http.Header) {
	if f.disposition != "" {
		h.Set("Content-Disposition", f.disposition)
	}
}
