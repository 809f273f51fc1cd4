package emendaapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/emendasgov/emendas/app/sdk/errs"
	"github.com/emendasgov/emendas/business/domain/emendabus"
	"github.com/emendasgov/emendas/business/types/cnpj"
	"github.com/emendasgov/emendas/business/types/status"
	"github.com/google/uuid"
)

// dateOnly is the wire format for the disbursement availability date.
const dateOnly = "2006-01-02"

// Emenda represents information about an individual emenda. ValorTotal and
// PercentualExecutado are derived fields, never persisted.
type Emenda struct {
	ID                   string   `json:"id"`
	PrefeituraID         string   `json:"prefeitura_id"`
	Numero               string   `json:"numero"`
	Status               string   `json:"status"`
	TipoConcedente       string   `json:"tipo_concedente"`
	NomeConcedente       string   `json:"nome_concedente"`
	TipoRecebedor        string   `json:"tipo_recebedor"`
	NomeRecebedor        string   `json:"nome_recebedor"`
	CNPJRecebedor        string   `json:"cnpj_recebedor"`
	Municipio            string   `json:"municipio"`
	UF                   string   `json:"uf"`
	DataDisponibilizacao string   `json:"data_disponibilizacao"`
	GestorResponsavel    string   `json:"gestor_responsavel"`
	Objeto               string   `json:"objeto"`
	GrupoNaturezaDespesa string   `json:"grupo_natureza_despesa"`
	ValorConcedente      float64  `json:"valor_concedente"`
	Contrapartida        *float64 `json:"contrapartida"`
	ValorTotal           float64  `json:"valor_total"`
	ValorExecutado       float64  `json:"valor_executado"`
	PercentualExecutado  float64  `json:"percentual_executado"`
	Banco                string   `json:"banco"`
	ContaCorrente        string   `json:"conta_corrente"`
	AnuenciaPreviaSUS    bool     `json:"anuencia_previa_sus"`
	DateCreated          string   `json:"dateCreated"`
	DateUpdated          string   `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (e Emenda) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json", err
}

func toAppEmenda(bus emendabus.Emenda) Emenda {
	return Emenda{
		ID:                   bus.ID.String(),
		PrefeituraID:         bus.PrefeituraID.String(),
		Numero:               bus.Numero,
		Status:               bus.Status.String(),
		TipoConcedente:       bus.TipoConcedente,
		NomeConcedente:       bus.NomeConcedente,
		TipoRecebedor:        bus.TipoRecebedor,
		NomeRecebedor:        bus.NomeRecebedor,
		CNPJRecebedor:        bus.CNPJRecebedor.String(),
		Municipio:            bus.Municipio,
		UF:                   bus.UF,
		DataDisponibilizacao: bus.DataDisponibilizacao.Format(dateOnly),
		GestorResponsavel:    bus.GestorResponsavel,
		Objeto:               bus.Objeto,
		GrupoNaturezaDespesa: bus.GrupoNaturezaDespesa,
		ValorConcedente:      bus.ValorConcedente,
		Contrapartida:        bus.Contrapartida,
		ValorTotal:           bus.ValorTotal(),
		ValorExecutado:       bus.ValorExecutado,
		PercentualExecutado:  bus.PercentualExecutado(),
		Banco:                bus.Banco,
		ContaCorrente:        bus.ContaCorrente,
		AnuenciaPreviaSUS:    bus.AnuenciaPreviaSUS,
		DateCreated:          bus.CreatedAt.Format(time.RFC3339),
		DateUpdated:          bus.UpdatedAt.Format(time.RFC3339),
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

// NewEmenda defines the data needed to add a new emenda.
type NewEmenda struct {
	PrefeituraID         string   `json:"prefeitura_id" validate:"required"`
	Numero               string   `json:"numero" validate:"required"`
	Status               string   `json:"status" validate:"required"`
	TipoConcedente       string   `json:"tipo_concedente" validate:"required"`
	NomeConcedente       string   `json:"nome_concedente" validate:"required"`
	TipoRecebedor        string   `json:"tipo_recebedor" validate:"required"`
	NomeRecebedor        string   `json:"nome_recebedor" validate:"required"`
	CNPJRecebedor        string   `json:"cnpj_recebedor"`
	Municipio            string   `json:"municipio" validate:"required"`
	UF                   string   `json:"uf" validate:"required,len=2"`
	DataDisponibilizacao string   `json:"data_disponibilizacao" validate:"required"`
	GestorResponsavel    string   `json:"gestor_responsavel"`
	Objeto               string   `json:"objeto" validate:"required"`
	GrupoNaturezaDespesa string   `json:"grupo_natureza_despesa"`
	ValorConcedente      float64  `json:"valor_concedente" validate:"gte=0"`
	Contrapartida        *float64 `json:"contrapartida" validate:"omitempty,gte=0"`
	ValorExecutado       float64  `json:"valor_executado" validate:"gte=0"`
	Banco                string   `json:"banco"`
	ContaCorrente        string   `json:"conta_corrente"`
	AnuenciaPreviaSUS    bool     `json:"anuencia_previa_sus"`
}

// Decode implements the web.Decoder interface.
func (app *NewEmenda) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewEmenda) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewEmenda(app NewEmenda) (emendabus.NewEmenda, error) {
	prefeituraID, err := uuid.Parse(app.PrefeituraID)
	if err != nil {
		return emendabus.NewEmenda{}, fmt.Errorf("parse prefeitura id: %w", err)
	}

	sts, err := status.Parse(app.Status)
	if err != nil {
		return emendabus.NewEmenda{}, fmt.Errorf("parse status: %w", err)
	}

	doc, err := cnpj.ParseNull(app.CNPJRecebedor)
	if err != nil {
		return emendabus.NewEmenda{}, fmt.Errorf("parse cnpj: %w", err)
	}

	data, err := time.ParseInLocation(dateOnly, app.DataDisponibilizacao, time.Local)
	if err != nil {
		return emendabus.NewEmenda{}, fmt.Errorf("parse data disponibilizacao: %w", err)
	}

	bus := emendabus.NewEmenda{
		PrefeituraID:         prefeituraID,
		Numero:               app.Numero,
		Status:               sts,
		TipoConcedente:       app.TipoConcedente,
		NomeConcedente:       app.NomeConcedente,
		TipoRecebedor:        app.TipoRecebedor,
		NomeRecebedor:        app.NomeRecebedor,
		CNPJRecebedor:        doc,
		Municipio:            app.Municipio,
		UF:                   app.UF,
		DataDisponibilizacao: data,
		GestorResponsavel:    app.GestorResponsavel,
		Objeto:               app.Objeto,
		GrupoNaturezaDespesa: app.GrupoNaturezaDespesa,
		ValorConcedente:      app.ValorConcedente,
		Contrapartida:        app.Contrapartida,
		ValorExecutado:       app.ValorExecutado,
		Banco:                app.Banco,
		ContaCorrente:        app.ContaCorrente,
		AnuenciaPreviaSUS:    app.AnuenciaPreviaSUS,
	}

	return bus, nil
}

// =============================================================================

// UpdateEmenda defines the data needed to update an emenda.
type UpdateEmenda struct {
	Numero               *string  `json:"numero"`
	Status               *string  `json:"status"`
	TipoConcedente       *string  `json:"tipo_concedente"`
	NomeConcedente       *string  `json:"nome_concedente"`
	TipoRecebedor        *string  `json:"tipo_recebedor"`
	NomeRecebedor        *string  `json:"nome_recebedor"`
	CNPJRecebedor        *string  `json:"cnpj_recebedor"`
	Municipio            *string  `json:"municipio"`
	UF                   *string  `json:"uf" validate:"omitempty,len=2"`
	DataDisponibilizacao *string  `json:"data_disponibilizacao"`
	GestorResponsavel    *string  `json:"gestor_responsavel"`
	Objeto               *string  `json:"objeto"`
	GrupoNaturezaDespesa *string  `json:"grupo_natureza_despesa"`
	ValorConcedente      *float64 `json:"valor_concedente" validate:"omitempty,gte=0"`
	Contrapartida        *float64 `json:"contrapartida" validate:"omitempty,gte=0"`
	ValorExecutado       *float64 `json:"valor_executado" validate:"omitempty,gte=0"`
	Banco                *string  `json:"banco"`
	ContaCorrente        *string  `json:"conta_corrente"`
	AnuenciaPreviaSUS    *bool    `json:"anuencia_previa_sus"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateEmenda) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateEmenda) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateEmenda(app UpdateEmenda) (emendabus.UpdateEmenda, error) {
	var sts *status.Status
	if app.Status != nil {
		s, err := status.Parse(*app.Status)
		if err != nil {
			return emendabus.UpdateEmenda{}, fmt.Errorf("parse status: %w", err)
		}
		sts = &s
	}

	var doc *cnpj.Null
	if app.CNPJRecebedor != nil {
		d, err := cnpj.ParseNull(*app.CNPJRecebedor)
		if err != nil {
			return emendabus.UpdateEmenda{}, fmt.Errorf("parse cnpj: %w", err)
		}
		doc = &d
	}

	var data *time.Time
	if app.DataDisponibilizacao != nil {
		t, err := time.ParseInLocation(dateOnly, *app.DataDisponibilizacao, time.Local)
		if err != nil {
			return emendabus.UpdateEmenda{}, fmt.Errorf("parse data disponibilizacao: %w", err)
		}
		data = &t
	}

	bus := emendabus.UpdateEmenda{
		Numero:               app.Numero,
		Status:               sts,
		TipoConcedente:       app.TipoConcedente,
		NomeConcedente:       app.NomeConcedente,
		TipoRecebedor:        app.TipoRecebedor,
		NomeRecebedor:        app.NomeRecebedor,
		CNPJRecebedor:        doc,
		Municipio:            app.Municipio,
		UF:                   app.UF,
		DataDisponibilizacao: data,
		GestorResponsavel:    app.GestorResponsavel,
		Objeto:               app.Objeto,
		GrupoNaturezaDespesa: app.GrupoNaturezaDespesa,
		ValorConcedente:      app.ValorConcedente,
		Contrapartida:        app.Contrapartida,
		ValorExecutado:       app.ValorExecutado,
		Banco:                app.Banco,
		ContaCorrente:        app.ContaCorrente,
		AnuenciaPreviaSUS:    app.AnuenciaPreviaSUS,
	}

	return bus, nil
}
