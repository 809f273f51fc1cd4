// Package prefeituradb contains prefeitura related CRUD functionality.
package prefeituradb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/emendasgov/emendas/business/domain/prefeiturabus"
	"github.com/emendasgov/emendas/business/sdk/sqldb"
	"github.com/emendasgov/emendas/business/types/slug"
	"github.com/emendasgov/emendas/foundation/logger"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for prefeitura database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (prefeiturabus.Storer, error) {
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

// Create inserts a new prefeitura into the database.
func (s *Store) Create(ctx context.Context, pref prefeiturabus.Prefeitura) error {
	const q = `
	INSERT INTO "public"."prefeitura"
		(prefeitura_id, nome, slug, municipio, uf, logo_url, enabled, created_at, updated_at)
	VALUES
		(:prefeitura_id, :nome, :slug, :municipio, :uf, :logo_url, :enabled, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBPrefeitura(pref)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return fmt.Errorf("namedexeccontext: %w", prefeiturabus.ErrUniqueSlug)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a prefeitura document in the database.
func (s *Store) Update(ctx context.Context, pref prefeiturabus.Prefeitura) error {
	const q = `
	UPDATE
		"public"."prefeitura"
	SET
		"nome" = :nome,
		"municipio" = :municipio,
		"uf" = :uf,
		"logo_url" = :logo_url,
		"enabled" = :enabled,
		"updated_at" = :updated_at
	WHERE
		prefeitura_id = :prefeitura_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBPrefeitura(pref)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a prefeitura from the database.
func (s *Store) Delete(ctx context.Context, pref prefeiturabus.Prefeitura) error {
	data := struct {
		ID string `db:"prefeitura_id"`
	}{
		ID: pref.ID.String(),
	}

	const q = `
	DELETE FROM
		"public"."prefeitura"
	WHERE
		prefeitura_id = :prefeitura_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByID gets the specified prefeitura from the database.
func (s *Store) QueryByID(ctx context.Context, prefeituraID uuid.UUID) (prefeiturabus.Prefeitura, error) {
	data := struct {
		ID string `db:"prefeitura_id"`
	}{
		ID: prefeituraID.String(),
	}

	const q = `
	SELECT
		prefeitura_id, nome, slug, municipio, uf, logo_url, enabled, created_at, updated_at
	FROM
		"public"."prefeitura"
	WHERE
		prefeitura_id = :prefeitura_id`

	var db prefeituraDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &db); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return prefeiturabus.Prefeitura{}, fmt.Errorf("db: %w", prefeiturabus.ErrNotFound)
		}
		return prefeiturabus.Prefeitura{}, fmt.Errorf("db: %w", err)
	}

	return toBusPrefeitura(db)
}

// QueryBySlug gets the prefeitura with the specified slug from the database.
func (s *Store) QueryBySlug(ctx context.Context, sl slug.Slug) (prefeiturabus.Prefeitura, error) {
	data := struct {
		Slug string `db:"slug"`
	}{
		Slug: sl.String(),
	}

	const q = `
	SELECT
		prefeitura_id, nome, slug, municipio, uf, logo_url, enabled, created_at, updated_at
	FROM
		"public"."prefeitura"
	WHERE
		slug = :slug`

	var db prefeituraDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &db); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return prefeiturabus.Prefeitura{}, fmt.Errorf("db: %w", prefeiturabus.ErrNotFound)
		}
		return prefeiturabus.Prefeitura{}, fmt.Errorf("db: %w", err)
	}

	return toBusPrefeitura(db)
}

// QueryAll retrieves the list of prefeituras from the database. When
// onlyEnabled is set, disabled prefeituras are filtered out.
func (s *Store) QueryAll(ctx context.Context, onlyEnabled bool) ([]prefeiturabus.Prefeitura, error) {
	data := map[string]any{}

	buf := bytes.NewBufferString(`
	SELECT
		prefeitura_id, nome, slug, municipio, uf, logo_url, enabled, created_at, updated_at
	FROM
		"public"."prefeitura"`)

	if onlyEnabled {
		buf.WriteString(" WHERE enabled = true")
	}
	buf.WriteString(" ORDER BY nome ASC")

	var dbs []prefeituraDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusPrefeituras(dbs)
}
