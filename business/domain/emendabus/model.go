package emendabus

import (
	"time"

	"github.com/emendasgov/emendas/business/types/cnpj"
	"github.com/emendasgov/emendas/business/types/status"
	"github.com/google/uuid"
)

// Emenda represents a budget amendment owned by exactly one prefeitura.
// ValorExecutado is deliberately not constrained against ValorTotal.
type Emenda struct {
	ID                   uuid.UUID
	PrefeituraID         uuid.UUID
	Numero               string
	Status               status.Status
	TipoConcedente       string
	NomeConcedente       string
	TipoRecebedor        string
	NomeRecebedor        string
	CNPJRecebedor        cnpj.Null
	Municipio            string
	UF                   string
	DataDisponibilizacao time.Time
	GestorResponsavel    string
	Objeto               string
	GrupoNaturezaDespesa string
	ValorConcedente      float64
	Contrapartida        *float64
	ValorExecutado       float64
	Banco                string
	ContaCorrente        string
	AnuenciaPreviaSUS    bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ValorTotal is the concedente value plus the contrapartida when present.
// Derived on demand, never stored.
func (e Emenda) ValorTotal() float64 {
	total := e.ValorConcedente
	if e.Contrapartida != nil {
		total += *e.Contrapartida
	}

	return total
}

// PercentualExecutado is the executed share of the total as a percentage.
// A zero total yields 0.
func (e Emenda) PercentualExecutado() float64 {
	total := e.ValorTotal()
	if total == 0 {
		return 0
	}

	return e.ValorExecutado / total * 100
}

// NewEmenda contains information needed to create a new emenda.
type NewEmenda struct {
	PrefeituraID         uuid.UUID
	Numero               string
	Status               status.Status
	TipoConcedente       string
	NomeConcedente       string
	TipoRecebedor        string
	NomeRecebedor        string
	CNPJRecebedor        cnpj.Null
	Municipio            string
	UF                   string
	DataDisponibilizacao time.Time
	GestorResponsavel    string
	Objeto               string
	GrupoNaturezaDespesa string
	ValorConcedente      float64
	Contrapartida        *float64
	ValorExecutado       float64
	Banco                string
	ContaCorrente        string
	AnuenciaPreviaSUS    bool
}

// UpdateEmenda contains information needed to update an emenda.
type UpdateEmenda struct {
	Numero               *string
	Status               *status.Status
	TipoConcedente       *string
	NomeConcedente       *string
	TipoRecebedor        *string
	NomeRecebedor        *string
	CNPJRecebedor        *cnpj.Null
	Municipio            *string
	UF                   *string
	DataDisponibilizacao *time.Time
	GestorResponsavel    *string
	Objeto               *string
	GrupoNaturezaDespesa *string
	ValorConcedente      *float64
	Contrapartida        *float64
	ValorExecutado       *float64
	Banco                *string
	ContaCorrente        *string
	AnuenciaPreviaSUS    *bool
}
