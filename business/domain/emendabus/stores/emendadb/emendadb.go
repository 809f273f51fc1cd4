// Package emendadb contains emenda related CRUD functionality.
package emendadb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/emendasgov/emendas/business/domain/emendabus"
	"github.com/emendasgov/emendas/business/sdk/order"
	"github.com/emendasgov/emendas/business/sdk/page"
	"github.com/emendasgov/emendas/business/sdk/sqldb"
	"github.com/emendasgov/emendas/foundation/logger"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const allColumns = `
		e.emenda_id, e.prefeitura_id, e.numero, e.status, e.tipo_concedente, e.nome_concedente,
		e.tipo_recebedor, e.nome_recebedor, e.cnpj_recebedor, e.municipio, e.uf,
		e.data_disponibilizacao, e.gestor_responsavel, e.objeto, e.grupo_natureza_despesa,
		e.valor_concedente, e.contrapartida, e.valor_executado, e.banco, e.conta_corrente,
		e.anuencia_previa_sus, e.created_at, e.updated_at`

// Store manages the set of APIs for emenda database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (emendabus.Storer, error) {
	ec, err := sqldb.GetExtContext(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log: s.log,
		db:  ec,
	}

	return &store, nil
}

// Create inserts a new emenda into the database.
func (s *Store) Create(ctx context.Context, e emendabus.Emenda) error {
	const q = `
	INSERT INTO "public"."emenda"
		(emenda_id, prefeitura_id, numero, status, tipo_concedente, nome_concedente,
		tipo_recebedor, nome_recebedor, cnpj_recebedor, municipio, uf,
		data_disponibilizacao, gestor_responsavel, objeto, grupo_natureza_despesa,
		valor_concedente, contrapartida, valor_executado, banco, conta_corrente,
		anuencia_previa_sus, created_at, updated_at)
	VALUES
		(:emenda_id, :prefeitura_id, :numero, :status, :tipo_concedente, :nome_concedente,
		:tipo_recebedor, :nome_recebedor, :cnpj_recebedor, :municipio, :uf,
		:data_disponibilizacao, :gestor_responsavel, :objeto, :grupo_natureza_despesa,
		:valor_concedente, :contrapartida, :valor_executado, :banco, :conta_corrente,
		:anuencia_previa_sus, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBEmenda(e)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces an emenda document in the database.
func (s *Store) Update(ctx context.Context, e emendabus.Emenda) error {
	const q = `
	UPDATE
		"public"."emenda"
	SET
		"numero" = :numero,
		"status" = :status,
		"tipo_concedente" = :tipo_concedente,
		"nome_concedente" = :nome_concedente,
		"tipo_recebedor" = :tipo_recebedor,
		"nome_recebedor" = :nome_recebedor,
		"cnpj_recebedor" = :cnpj_recebedor,
		"municipio" = :municipio,
		"uf" = :uf,
		"data_disponibilizacao" = :data_disponibilizacao,
		"gestor_responsavel" = :gestor_responsavel,
		"objeto" = :objeto,
		"grupo_natureza_despesa" = :grupo_natureza_despesa,
		"valor_concedente" = :valor_concedente,
		"contrapartida" = :contrapartida,
		"valor_executado" = :valor_executado,
		"banco" = :banco,
		"conta_corrente" = :conta_corrente,
		"anuencia_previa_sus" = :anuencia_previa_sus,
		"updated_at" = :updated_at
	WHERE
		emenda_id = :emenda_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBEmenda(e)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes an emenda from the database.
func (s *Store) Delete(ctx context.Context, e emendabus.Emenda) error {
	const q = `
	DELETE FROM
		"public"."emenda"
	WHERE
		emenda_id = :emenda_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBEmenda(e)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves a page of emendas from the database.
func (s *Store) Query(ctx context.Context, filter emendabus.QueryFilter, orderBy order.By, page page.Page) ([]emendabus.Emenda, error) {
	data := map[string]any{
		"offset":        (page.Number() - 1) * page.RowsPerPage(),
		"rows_per_page": page.RowsPerPage(),
	}

	buf := bytes.NewBufferString(`
	SELECT` + allColumns + `
	FROM
		"public"."emenda" AS e`)

	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbs []emendaDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusEmendas(dbs)
}

// QueryAll retrieves every emenda matching the filter, unpaged. Used by
// reporting and export which consume whole collections.
func (s *Store) QueryAll(ctx context.Context, filter emendabus.QueryFilter, orderBy order.By) ([]emendabus.Emenda, error) {
	data := map[string]any{}

	buf := bytes.NewBufferString(`
	SELECT` + allColumns + `
	FROM
		"public"."emenda" AS e`)

	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)

	var dbs []emendaDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusEmendas(dbs)
}

// Count returns the total number of emendas matching the filter.
func (s *Store) Count(ctx context.Context, filter emendabus.QueryFilter) (int, error) {
	data := map[string]any{}

	buf := bytes.NewBufferString(`
	SELECT
		count(1)
	FROM
		"public"."emenda" AS e`)

	applyFilter(filter, data, buf)

	var count struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, buf.String(), data, &count); err != nil {
		return 0, fmt.Errorf("db: %w", err)
	}

	return count.Count, nil
}

// QueryByID gets the specified emenda from the database.
func (s *Store) QueryByID(ctx context.Context, emendaID uuid.UUID) (emendabus.Emenda, error) {
	data := struct {
		ID string `db:"emenda_id"`
	}{
		ID: emendaID.String(),
	}

	const q = `
	SELECT` + allColumns + `
	FROM
		"public"."emenda" AS e
	WHERE
		e.emenda_id = :emenda_id`

	var db emendaDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &db); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return emendabus.Emenda{}, fmt.Errorf("db: %w", emendabus.ErrNotFound)
		}
		return emendabus.Emenda{}, fmt.Errorf("db: %w", err)
	}

	return toBusEmenda(db)
}
