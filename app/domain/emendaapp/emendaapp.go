// Package emendaapp maintains the app layer api for the emenda domain.
// Every read and write runs under the scope resolved at authentication.
package emendaapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/emendasgov/emendas/app/sdk/errs"
	"github.com/emendasgov/emendas/app/sdk/mid"
	"github.com/emendasgov/emendas/app/sdk/query"
	"github.com/emendasgov/emendas/business/domain/emendabus"
	"github.com/emendasgov/emendas/business/domain/rolebus"
	"github.com/emendasgov/emendas/business/sdk/order"
	"github.com/emendasgov/emendas/business/sdk/page"
	"github.com/emendasgov/emendas/business/sdk/web"
	"github.com/google/uuid"
)

type app struct {
	emendaBus *emendabus.Core
}

func newApp(emendaBus *emendabus.Core) *app {
	return &app{
		emendaBus: emendaBus,
	}
}

func getScope(ctx context.Context) (rolebus.Scope, web.Encoder) {
	scope, err := mid.GetScope(ctx)
	if err != nil {
		return rolebus.Scope{}, errs.Errorf(errs.Internal, "scope missing in context: %s", err)
	}

	return scope, nil
}

// create adds a new emenda to the system.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewEmenda
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	scope, encErr := getScope(ctx)
	if encErr != nil {
		return encErr
	}

	ne, err := toBusNewEmenda(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	e, err := a.emendaBus.Create(ctx, scope, ne)
	if err != nil {
		if errors.Is(err, emendabus.ErrScopeDenied) {
			return errs.New(errs.PermissionDenied, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: emenda[%+v]: %s", app, err)
	}

	return toAppEmenda(e)
}

// update updates an existing emenda.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateEmenda
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	scope, encErr := getScope(ctx)
	if encErr != nil {
		return encErr
	}

	e, encErr := a.queryEmenda(ctx, scope, r)
	if encErr != nil {
		return encErr
	}

	ue, err := toBusUpdateEmenda(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updE, err := a.emendaBus.Update(ctx, scope, e, ue)
	if err != nil {
		if errors.Is(err, emendabus.ErrScopeDenied) {
			return errs.New(errs.PermissionDenied, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: emendaID[%s]: %s", e.ID, err)
	}

	return toAppEmenda(updE)
}

// delete removes an emenda from the system.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	scope, encErr := getScope(ctx)
	if encErr != nil {
		return encErr
	}

	e, encErr := a.queryEmenda(ctx, scope, r)
	if encErr != nil {
		return encErr
	}

	if err := a.emendaBus.Delete(ctx, scope, e); err != nil {
		if errors.Is(err, emendabus.ErrScopeDenied) {
			return errs.New(errs.PermissionDenied, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "delete: emendaID[%s]: %s", e.ID, err)
	}

	return nil
}

// query returns a scoped list of emendas with paging.
func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	page, err := page.Parse(qp.Page, qp.Rows)
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	filter, err := parseFilter(qp)
	if err != nil {
		if v, ok := err.(*errs.Error); ok {
			return v
		}
		return errs.NewFieldErrors("filter", err)
	}

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, emendabus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	scope, encErr := getScope(ctx)
	if encErr != nil {
		return encErr
	}

	emendas, err := a.emendaBus.QueryScoped(ctx, scope, filter, orderBy, page)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.emendaBus.CountScoped(ctx, scope, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppEmendas(emendas), total, page)
}

// queryByID returns an emenda by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	scope, encErr := getScope(ctx)
	if encErr != nil {
		return encErr
	}

	e, encErr := a.queryEmenda(ctx, scope, r)
	if encErr != nil {
		return encErr
	}

	return toAppEmenda(e)
}

func (a *app) queryEmenda(ctx context.Context, scope rolebus.Scope, r *http.Request) (emendabus.Emenda, web.Encoder) {
	emendaID, err := uuid.Parse(r.PathValue("emenda_id"))
	if err != nil {
		return emendabus.Emenda{}, errs.NewFieldErrors("emenda_id", err)
	}

	e, err := a.emendaBus.QueryByID(ctx, scope, emendaID)
	if err != nil {
		if errors.Is(err, emendabus.ErrNotFound) {
			return emendabus.Emenda{}, errs.New(errs.NotFound, err)
		}
		return emendabus.Emenda{}, errs.Errorf(errs.InternalOnlyLog, "query: emendaID[%s]: %s", emendaID, err)
	}

	return e, nil
}
