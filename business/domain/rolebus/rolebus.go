// Package rolebus provides business access to role assignments and hosts the
// pure access-scope and privilege-policy rules of the system.
package rolebus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emendasgov/emendas/business/sdk/sqldb"
	"github.com/emendasgov/emendas/foundation/otel"
	"github.com/google/uuid"
)

var (
	ErrNotFound            = errors.New("assignment not found")
	ErrInvalidAssignment   = errors.New("assignment violates role/prefeitura invariant")
	ErrDuplicateAssignment = errors.New("assignment already exists")
)

// Storer defines the behavior required by the rolebus to persist assignments.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, a Assignment) error
	Delete(ctx context.Context, a Assignment) error
	QueryByID(ctx context.Context, assignmentID uuid.UUID) (Assignment, error)
	QueryByUserID(ctx context.Context, userID uuid.UUID) ([]Assignment, error)
}

// Core manages the set of APIs for role assignment access.
type Core struct {
	storer Storer
}

// NewCore constructs a core for role assignment api access.
func NewCore(storer Storer) *Core {
	return &Core{
		storer: storer,
	}
}

// NewWithTx constructs a new Core value replacing the Storer value with a
// Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return NewCore(storer), nil
}

// Create adds a new assignment to the system after checking the
// role/prefeitura invariant: platform roles are unscoped, prefeitura roles
// must reference a prefeitura.
func (c *Core) Create(ctx context.Context, na NewAssignment) (Assignment, error) {
	ctx, span := otel.AddSpan(ctx, "business.rolebus.create")
	defer span.End()

	if na.Role.RequiresPrefeitura() == (na.PrefeituraID == nil) {
		return Assignment{}, fmt.Errorf("role[%s] prefeitura[%v]: %w", na.Role, na.PrefeituraID, ErrInvalidAssignment)
	}

	a := Assignment{
		ID:           uuid.New(),
		UserID:       na.UserID,
		Role:         na.Role,
		PrefeituraID: na.PrefeituraID,
		CreatedAt:    time.Now(),
	}

	if err := c.storer.Create(ctx, a); err != nil {
		return Assignment{}, fmt.Errorf("create: %w", err)
	}

	return a, nil
}

// Delete removes the specified assignment from the system. Role changes are
// a delete followed by a create, never an in-place update.
func (c *Core) Delete(ctx context.Context, a Assignment) error {
	ctx, span := otel.AddSpan(ctx, "business.rolebus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, a); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// QueryByID finds the assignment by the specified ID.
func (c *Core) QueryByID(ctx context.Context, assignmentID uuid.UUID) (Assignment, error) {
	ctx, span := otel.AddSpan(ctx, "business.rolebus.queryByID")
	defer span.End()

	a, err := c.storer.QueryByID(ctx, assignmentID)
	if err != nil {
		return Assignment{}, fmt.Errorf("query: assignmentID[%s]: %w", assignmentID, err)
	}

	return a, nil
}

// QueryByUserID retrieves the full set of assignments held by a user. An
// empty slice is a valid result meaning the principal has no scope.
func (c *Core) QueryByUserID(ctx context.Context, userID uuid.UUID) ([]Assignment, error) {
	ctx, span := otel.AddSpan(ctx, "business.rolebus.queryByUserID")
	defer span.End()

	assignments, err := c.storer.QueryByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("query: userID[%s]: %w", userID, err)
	}

	return assignments, nil
}
