// Package emendabus provides business access to budget amendments. Every
// read and write is bounded by an access scope so tenant data never leaks.
package emendabus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emendasgov/emendas/business/domain/rolebus"
	"github.com/emendasgov/emendas/business/sdk/order"
	"github.com/emendasgov/emendas/business/sdk/page"
	"github.com/emendasgov/emendas/business/sdk/sqldb"
	"github.com/emendasgov/emendas/foundation/otel"
	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("emenda not found")
	ErrScopeDenied = errors.New("operation outside allowed scope")
)

type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, e Emenda) error
	Update(ctx context.Context, e Emenda) error
	Delete(ctx context.Context, e Emenda) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Emenda, error)
	QueryAll(ctx context.Context, filter QueryFilter, orderBy order.By) ([]Emenda, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, emendaID uuid.UUID) (Emenda, error)
}

// Core manages the set of APIs for emenda access.
type Core struct {
	storer Storer
}

// NewCore constructs an emenda core for api access.
func NewCore(storer Storer) *Core {
	return &Core{
		storer: storer,
	}
}

// NewWithTx constructs a new Core value replacing the storer with one that
// runs inside the provided transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return NewCore(storer), nil
}

// Create inserts a new emenda. The requester's scope must cover the owning
// prefeitura.
func (c *Core) Create(ctx context.Context, scope rolebus.Scope, ne NewEmenda) (Emenda, error) {
	ctx, span := otel.AddSpan(ctx, "business.emendabus.create")
	defer span.End()

	if !covers(scope, ne.PrefeituraID) {
		return Emenda{}, ErrScopeDenied
	}

	now := time.Now()

	e := Emenda{
		ID:                   uuid.New(),
		PrefeituraID:         ne.PrefeituraID,
		Numero:               ne.Numero,
		Status:               ne.Status,
		TipoConcedente:       ne.TipoConcedente,
		NomeConcedente:       ne.NomeConcedente,
		TipoRecebedor:        ne.TipoRecebedor,
		NomeRecebedor:        ne.NomeRecebedor,
		CNPJRecebedor:        ne.CNPJRecebedor,
		Municipio:            ne.Municipio,
		UF:                   ne.UF,
		DataDisponibilizacao: ne.DataDisponibilizacao,
		GestorResponsavel:    ne.GestorResponsavel,
		Objeto:               ne.Objeto,
		GrupoNaturezaDespesa: ne.GrupoNaturezaDespesa,
		ValorConcedente:      ne.ValorConcedente,
		Contrapartida:        ne.Contrapartida,
		ValorExecutado:       ne.ValorExecutado,
		Banco:                ne.Banco,
		ContaCorrente:        ne.ContaCorrente,
		AnuenciaPreviaSUS:    ne.AnuenciaPreviaSUS,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := c.storer.Create(ctx, e); err != nil {
		return Emenda{}, fmt.Errorf("create: %w", err)
	}

	return e, nil
}

// Update applies changes to an existing emenda within the given scope.
func (c *Core) Update(ctx context.Context, scope rolebus.Scope, e Emenda, ue UpdateEmenda) (Emenda, error) {
	ctx, span := otel.AddSpan(ctx, "business.emendabus.update")
	defer span.End()

	if !covers(scope, e.PrefeituraID) {
		return Emenda{}, ErrScopeDenied
	}

	if ue.Numero != nil {
		e.Numero = *ue.Numero
	}
	if ue.Status != nil {
		e.Status = *ue.Status
	}
	if ue.TipoConcedente != nil {
		e.TipoConcedente = *ue.TipoConcedente
	}
	if ue.NomeConcedente != nil {
		e.NomeConcedente = *ue.NomeConcedente
	}
	if ue.TipoRecebedor != nil {
		e.TipoRecebedor = *ue.TipoRecebedor
	}
	if ue.NomeRecebedor != nil {
		e.NomeRecebedor = *ue.NomeRecebedor
	}
	if ue.CNPJRecebedor != nil {
		e.CNPJRecebedor = *ue.CNPJRecebedor
	}
	if ue.Municipio != nil {
		e.Municipio = *ue.Municipio
	}
	if ue.UF != nil {
		e.UF = *ue.UF
	}
	if ue.DataDisponibilizacao != nil {
		e.DataDisponibilizacao = *ue.DataDisponibilizacao
	}
	if ue.GestorResponsavel != nil {
		e.GestorResponsavel = *ue.GestorResponsavel
	}
	if ue.Objeto != nil {
		e.Objeto = *ue.Objeto
	}
	if ue.GrupoNaturezaDespesa != nil {
		e.GrupoNaturezaDespesa = *ue.GrupoNaturezaDespesa
	}
	if ue.ValorConcedente != nil {
		e.ValorConcedente = *ue.ValorConcedente
	}
	if ue.Contrapartida != nil {
		e.Contrapartida = ue.Contrapartida
	}
	if ue.ValorExecutado != nil {
		e.ValorExecutado = *ue.ValorExecutado
	}
	if ue.Banco != nil {
		e.Banco = *ue.Banco
	}
	if ue.ContaCorrente != nil {
		e.ContaCorrente = *ue.ContaCorrente
	}
	if ue.AnuenciaPreviaSUS != nil {
		e.AnuenciaPreviaSUS = *ue.AnuenciaPreviaSUS
	}

	e.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, e); err != nil {
		return Emenda{}, fmt.Errorf("update: %w", err)
	}

	return e, nil
}

// Delete removes an emenda within the given scope.
func (c *Core) Delete(ctx context.Context, scope rolebus.Scope, e Emenda) error {
	ctx, span := otel.AddSpan(ctx, "business.emendabus.delete")
	defer span.End()

	if !covers(scope, e.PrefeituraID) {
		return ErrScopeDenied
	}

	if err := c.storer.Delete(ctx, e); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// QueryScoped retrieves a page of emendas visible within the scope. A None
// scope short-circuits to an empty result without touching the store.
func (c *Core) QueryScoped(ctx context.Context, scope rolebus.Scope, filter QueryFilter, orderBy order.By, page page.Page) ([]Emenda, error) {
	ctx, span := otel.AddSpan(ctx, "business.emendabus.queryScoped")
	defer span.End()

	if scope.IsNone() {
		return []Emenda{}, nil
	}

	if prefeituraID, ok := scope.PrefeituraID(); ok {
		filter.PrefeituraID = &prefeituraID
	}

	emendas, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return emendas, nil
}

// QueryAllScoped retrieves every emenda visible within the scope, unpaged.
// Used by reporting and export, which operate over whole collections.
func (c *Core) QueryAllScoped(ctx context.Context, scope rolebus.Scope, filter QueryFilter, orderBy order.By) ([]Emenda, error) {
	ctx, span := otel.AddSpan(ctx, "business.emendabus.queryAllScoped")
	defer span.End()

	if scope.IsNone() {
		return []Emenda{}, nil
	}

	if prefeituraID, ok := scope.PrefeituraID(); ok {
		filter.PrefeituraID = &prefeituraID
	}

	emendas, err := c.storer.QueryAll(ctx, filter, orderBy)
	if err != nil {
		return nil, fmt.Errorf("queryall: %w", err)
	}

	return emendas, nil
}

// CountScoped returns the number of emendas visible within the scope.
func (c *Core) CountScoped(ctx context.Context, scope rolebus.Scope, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.emendabus.countScoped")
	defer span.End()

	if scope.IsNone() {
		return 0, nil
	}

	if prefeituraID, ok := scope.PrefeituraID(); ok {
		filter.PrefeituraID = &prefeituraID
	}

	return c.storer.Count(ctx, filter)
}

// QueryByID finds an emenda by id. An emenda outside the scope is reported
// as not found so its existence is not disclosed.
func (c *Core) QueryByID(ctx context.Context, scope rolebus.Scope, emendaID uuid.UUID) (Emenda, error) {
	ctx, span := otel.AddSpan(ctx, "business.emendabus.queryByID")
	defer span.End()

	if scope.IsNone() {
		return Emenda{}, ErrNotFound
	}

	e, err := c.storer.QueryByID(ctx, emendaID)
	if err != nil {
		return Emenda{}, fmt.Errorf("query: emendaID[%s]: %w", emendaID, err)
	}

	if !covers(scope, e.PrefeituraID) {
		return Emenda{}, ErrNotFound
	}

	return e, nil
}

func covers(scope rolebus.Scope, prefeituraID uuid.UUID) bool {
	if scope.IsAll() {
		return true
	}

	id, ok := scope.PrefeituraID()

	return ok && id == prefeituraID
}
