package emendadb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/emendasgov/emendas/business/domain/emendabus"
	"github.com/emendasgov/emendas/business/types/cnpj"
	"github.com/emendasgov/emendas/business/types/status"
	"github.com/google/uuid"
)

type emendaDB struct {
	ID                   uuid.UUID       `db:"emenda_id"`
	PrefeituraID         uuid.UUID       `db:"prefeitura_id"`
	Numero               string          `db:"numero"`
	Status               string          `db:"status"`
	TipoConcedente       string          `db:"tipo_concedente"`
	NomeConcedente       string          `db:"nome_concedente"`
	TipoRecebedor        string          `db:"tipo_recebedor"`
	NomeRecebedor        string          `db:"nome_recebedor"`
	CNPJRecebedor        sql.NullString  `db:"cnpj_recebedor"`
	Municipio            string          `db:"municipio"`
	UF                   string          `db:"uf"`
	DataDisponibilizacao time.Time       `db:"data_disponibilizacao"`
	GestorResponsavel    string          `db:"gestor_responsavel"`
	Objeto               string          `db:"objeto"`
	GrupoNaturezaDespesa string          `db:"grupo_natureza_despesa"`
	ValorConcedente      float64         `db:"valor_concedente"`
	Contrapartida        sql.NullFloat64 `db:"contrapartida"`
	ValorExecutado       float64         `db:"valor_executado"`
	Banco                string          `db:"banco"`
	ContaCorrente        string          `db:"conta_corrente"`
	AnuenciaPreviaSUS    bool            `db:"anuencia_previa_sus"`
	CreatedAt            time.Time       `db:"created_at"`
	UpdatedAt            time.Time       `db:"updated_at"`
}

func toDBEmenda(bus emendabus.Emenda) emendaDB {
	var contrapartida sql.NullFloat64
	if bus.Contrapartida != nil {
		contrapartida = sql.NullFloat64{Float64: *bus.Contrapartida, Valid: true}
	}

	return emendaDB{
		ID:                   bus.ID,
		PrefeituraID:         bus.PrefeituraID,
		Numero:               bus.Numero,
		Status:               bus.Status.String(),
		TipoConcedente:       bus.TipoConcedente,
		NomeConcedente:       bus.NomeConcedente,
		TipoRecebedor:        bus.TipoRecebedor,
		NomeRecebedor:        bus.NomeRecebedor,
		CNPJRecebedor:        cnpj.ToSQLNullString(bus.CNPJRecebedor),
		Municipio:            bus.Municipio,
		UF:                   bus.UF,
		DataDisponibilizacao: bus.DataDisponibilizacao,
		GestorResponsavel:    bus.GestorResponsavel,
		Objeto:               bus.Objeto,
		GrupoNaturezaDespesa: bus.GrupoNaturezaDespesa,
		ValorConcedente:      bus.ValorConcedente,
		Contrapartida:        contrapartida,
		ValorExecutado:       bus.ValorExecutado,
		Banco:                bus.Banco,
		ContaCorrente:        bus.ContaCorrente,
		AnuenciaPreviaSUS:    bus.AnuenciaPreviaSUS,
		CreatedAt:            bus.CreatedAt.UTC(),
		UpdatedAt:            bus.UpdatedAt.UTC(),
	}
}

func toBusEmenda(db emendaDB) (emendabus.Emenda, error) {
	sts, err := status.Parse(db.Status)
	if err != nil {
		return emendabus.Emenda{}, fmt.Errorf("parse status: %w", err)
	}

	doc, err := cnpj.ParseNull(db.CNPJRecebedor.String)
	if err != nil {
		return emendabus.Emenda{}, fmt.Errorf("parse cnpj: %w", err)
	}

	var contrapartida *float64
	if db.Contrapartida.Valid {
		contrapartida = &db.Contrapartida.Float64
	}

	return emendabus.Emenda{
		ID:                   db.ID,
		PrefeituraID:         db.PrefeituraID,
		Numero:               db.Numero,
		Status:               sts,
		TipoConcedente:       db.TipoConcedente,
		NomeConcedente:       db.NomeConcedente,
		TipoRecebedor:        db.TipoRecebedor,
		NomeRecebedor:        db.NomeRecebedor,
		CNPJRecebedor:        doc,
		Municipio:            db.Municipio,
		UF:                   db.UF,
		DataDisponibilizacao: db.DataDisponibilizacao.In(time.Local),
		GestorResponsavel:    db.GestorResponsavel,
		Objeto:               db.Objeto,
		GrupoNaturezaDespesa: db.GrupoNaturezaDespesa,
		ValorConcedente:      db.ValorConcedente,
		Contrapartida:        contrapartida,
		ValorExecutado:       db.ValorExecutado,
		Banco:                db.Banco,
		ContaCorrente:        db.ContaCorrente,
		AnuenciaPreviaSUS:    db.AnuenciaPreviaSUS,
		CreatedAt:            db.CreatedAt.In(time.Local),
		UpdatedAt:            db.UpdatedAt.In(time.Local),
	}, nil
}

func toBusEmendas(dbs []emendaDB) ([]emendabus.Emenda, error) {
	bus := make([]emendabus.Emenda, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusEmenda(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
