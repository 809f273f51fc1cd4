// Package roledb contains role assignment related CRUD functionality.
package roledb

import (
	"context"
	"errors"
	"fmt"

	"github.com/emendasgov/emendas/business/domain/rolebus"
	"github.com/emendasgov/emendas/business/sdk/sqldb"
	"github.com/emendasgov/emendas/foundation/logger"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for assignment database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (rolebus.Storer, error) {
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

// Create inserts a new assignment into the database.
func (s *Store) Create(ctx context.Context, a rolebus.Assignment) error {
	const q = `
	INSERT INTO "public"."vinculo"
		(vinculo_id, user_id, role, prefeitura_id, created_at)
	VALUES
		(:vinculo_id, :user_id, :role, :prefeitura_id, :created_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBAssignment(a)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return fmt.Errorf("namedexeccontext: %w", rolebus.ErrDuplicateAssignment)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes an assignment from the database.
func (s *Store) Delete(ctx context.Context, a rolebus.Assignment) error {
	const q = `
	DELETE FROM
		"public"."vinculo"
	WHERE
		vinculo_id = :vinculo_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBAssignment(a)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByID gets the specified assignment from the database.
func (s *Store) QueryByID(ctx context.Context, assignmentID uuid.UUID) (rolebus.Assignment, error) {
	data := struct {
		ID string `db:"vinculo_id"`
	}{
		ID: assignmentID.String(),
	}

	const q = `
	SELECT
		vinculo_id, user_id, role, prefeitura_id, created_at
	FROM
		"public"."vinculo"
	WHERE
		vinculo_id = :vinculo_id`

	var dbA assignmentDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbA); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return rolebus.Assignment{}, fmt.Errorf("db: %w", rolebus.ErrNotFound)
		}
		return rolebus.Assignment{}, fmt.Errorf("db: %w", err)
	}

	return toBusAssignment(dbA)
}

// QueryByUserID gets every assignment held by the specified user.
func (s *Store) QueryByUserID(ctx context.Context, userID uuid.UUID) ([]rolebus.Assignment, error) {
	data := struct {
		UserID string `db:"user_id"`
	}{
		UserID: userID.String(),
	}

	const q = `
	SELECT
		vinculo_id, user_id, role, prefeitura_id, created_at
	FROM
		"public"."vinculo"
	WHERE
		user_id = :user_id
	ORDER BY
		created_at`

	var dbAs []assignmentDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbAs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusAssignments(dbAs)
}
