// Package prefeiturabus provides business access to the catalog of
// prefeituras (tenants) in the system.
package prefeiturabus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emendasgov/emendas/business/sdk/sqldb"
	"github.com/emendasgov/emendas/business/types/slug"
	"github.com/emendasgov/emendas/foundation/logger"
	"github.com/emendasgov/emendas/foundation/otel"
	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("prefeitura not found")
	ErrUniqueSlug = errors.New("slug is not unique")
)

// Storer defines the behavior required by the prefeiturabus to interact with
// the database.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, p Prefeitura) error
	Update(ctx context.Context, p Prefeitura) error
	Delete(ctx context.Context, p Prefeitura) error
	QueryByID(ctx context.Context, prefeituraID uuid.UUID) (Prefeitura, error)
	QueryBySlug(ctx context.Context, sl slug.Slug) (Prefeitura, error)
	QueryAll(ctx context.Context, onlyEnabled bool) ([]Prefeitura, error)
}

// Core manages the set of APIs for prefeitura access.
type Core struct {
	storer Storer
	log    *logger.Logger
}

// NewCore constructs a core for prefeitura api access.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		storer: storer,
		log:    log,
	}
}

// NewWithTx constructs a new Core value replacing the Storer value with a
// Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	return NewCore(c.log, storer), nil
}

// Create adds a new prefeitura to the system.
func (c *Core) Create(ctx context.Context, np NewPrefeitura) (Prefeitura, error) {
	ctx, span := otel.AddSpan(ctx, "business.prefeiturabus.create")
	defer span.End()

	now := time.Now()

	p := Prefeitura{
		ID:        uuid.New(),
		Nome:      np.Nome,
		Slug:      np.Slug,
		Municipio: np.Municipio,
		UF:        np.UF,
		LogoURL:   np.LogoURL,
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storer.Create(ctx, p); err != nil {
		return Prefeitura{}, fmt.Errorf("create: %w", err)
	}

	return p, nil
}

// Update modifies data about a prefeitura. Disabling hides it from public
// listings but does not delete its data.
func (c *Core) Update(ctx context.Context, p Prefeitura, up UpdatePrefeitura) (Prefeitura, error) {
	ctx, span := otel.AddSpan(ctx, "business.prefeiturabus.update")
	defer span.End()

	if up.Nome != nil {
		p.Nome = *up.Nome
	}

	if up.Municipio != nil {
		p.Municipio = *up.Municipio
	}

	if up.UF != nil {
		p.UF = *up.UF
	}

	if up.LogoURL != nil {
		p.LogoURL = up.LogoURL
	}

	if up.Enabled != nil {
		p.Enabled = *up.Enabled
	}

	p.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, p); err != nil {
		return Prefeitura{}, fmt.Errorf("update: %w", err)
	}

	return p, nil
}

// Delete removes the specified prefeitura from the system.
func (c *Core) Delete(ctx context.Context, p Prefeitura) error {
	ctx, span := otel.AddSpan(ctx, "business.prefeiturabus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, p); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// QueryByID finds the prefeitura by the specified ID.
func (c *Core) QueryByID(ctx context.Context, prefeituraID uuid.UUID) (Prefeitura, error) {
	ctx, span := otel.AddSpan(ctx, "business.prefeiturabus.queryByID")
	defer span.End()

	p, err := c.storer.QueryByID(ctx, prefeituraID)
	if err != nil {
		return Prefeitura{}, fmt.Errorf("query: prefeituraID[%s]: %w", prefeituraID, err)
	}

	return p, nil
}

// QueryBySlug finds the prefeitura by the specified slug. This is the entry
// point of every public transparency view.
func (c *Core) QueryBySlug(ctx context.Context, sl slug.Slug) (Prefeitura, error) {
	ctx, span := otel.AddSpan(ctx, "business.prefeiturabus.queryBySlug")
	defer span.End()

	p, err := c.storer.QueryBySlug(ctx, sl)
	if err != nil {
		return Prefeitura{}, fmt.Errorf("query by slug[%s]: %w", sl, err)
	}

	return p, nil
}

// QueryAll retrieves the catalog of prefeituras. With onlyEnabled set the
// result is suitable for public listings.
func (c *Core) QueryAll(ctx context.Context, onlyEnabled bool) ([]Prefeitura, error) {
	ctx, span := otel.AddSpan(ctx, "business.prefeiturabus.queryAll")
	defer span.End()

	ps, err := c.storer.QueryAll(ctx, onlyEnabled)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return ps, nil
}
