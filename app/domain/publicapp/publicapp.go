// Package publicapp maintains the unauthenticated transparency api. Every
// read is pinned to a single enabled prefeitura resolved from the URL slug.
package publicapp

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/emendasgov/emendas/app/sdk/errs"
	"github.com/emendasgov/emendas/app/sdk/query"
	"github.com/emendasgov/emendas/business/domain/emendabus"
	"github.com/emendasgov/emendas/business/domain/prefeiturabus"
	"github.com/emendasgov/emendas/business/domain/relatoriobus"
	"github.com/emendasgov/emendas/business/domain/rolebus"
	"github.com/emendasgov/emendas/business/sdk/page"
	"github.com/emendasgov/emendas/business/sdk/web"
	"github.com/emendasgov/emendas/business/types/slug"
	"github.com/emendasgov/emendas/business/types/status"
)

type app struct {
	prefeituraBus *prefeiturabus.Core
	emendaBus     *emendabus.Core
}

func newApp(prefeituraBus *prefeiturabus.Core, emendaBus *emendabus.Core) *app {
	return &app{
		prefeituraBus: prefeituraBus,
		emendaBus:     emendaBus,
	}
}

// prefeituras returns the public directory of enabled prefeituras.
func (a *app) prefeituras(ctx context.Context, r *http.Request) web.Encoder {
	prefs, err := a.prefeituraBus.QueryAll(ctx, true)
	if err != nil {
		return errs.Errorf(errs.Internal, "queryall: %s", err)
	}

	return toAppPrefeituras(prefs)
}

// emendas returns the paged emenda listing for one prefeitura.
func (a *app) emendas(ctx context.Context, r *http.Request) web.Encoder {
	pref, encErr := a.queryPrefeitura(ctx, r)
	if encErr != nil {
		return encErr
	}

	values := r.URL.Query()

	pg, err := page.Parse(values.Get("page"), values.Get("rows"))
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	filter, err := parsePublicFilter(values.Get("status"), values.Get("ano"))
	if err != nil {
		if v, ok := err.(*errs.Error); ok {
			return v
		}
		return errs.NewFieldErrors("filter", err)
	}

	scope := rolebus.ScopePrefeitura(pref.ID)

	emendas, err := a.emendaBus.QueryScoped(ctx, scope, filter, emendabus.DefaultOrderBy, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.emendaBus.CountScoped(ctx, scope, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppEmendas(emendas), total, pg)
}

// resumo returns the aggregate transparency view for one prefeitura.
func (a *app) resumo(ctx context.Context, r *http.Request) web.Encoder {
	pref, encErr := a.queryPrefeitura(ctx, r)
	if encErr != nil {
		return encErr
	}

	scope := rolebus.ScopePrefeitura(pref.ID)

	emendas, err := a.emendaBus.QueryAllScoped(ctx, scope, emendabus.QueryFilter{}, emendabus.DefaultOrderBy)
	if err != nil {
		return errs.Errorf(errs.Internal, "queryallscoped: %s", err)
	}

	ano := r.URL.Query().Get("ano")
	resumo := relatoriobus.Aggregate(emendas, ano)
	anos := relatoriobus.AnosDisponiveis(emendas)

	return toAppResumo(pref, resumo, anos)
}

// queryPrefeitura resolves the slug to an enabled prefeitura. Disabled
// prefeituras answer not found, exactly like missing ones.
func (a *app) queryPrefeitura(ctx context.Context, r *http.Request) (prefeiturabus.Prefeitura, web.Encoder) {
	sl, err := slug.Parse(web.Param(r, "slug"))
	if err != nil {
		return prefeiturabus.Prefeitura{}, errs.NewFieldErrors("slug", err)
	}

	pref, err := a.prefeituraBus.QueryBySlug(ctx, sl)
	if err != nil {
		if errors.Is(err, prefeiturabus.ErrNotFound) {
			return prefeiturabus.Prefeitura{}, errs.New(errs.NotFound, err)
		}
		return prefeiturabus.Prefeitura{}, errs.Errorf(errs.Internal, "querybyslug: slug[%s]: %s", sl, err)
	}

	if !pref.Enabled {
		return prefeiturabus.Prefeitura{}, errs.Errorf(errs.NotFound, "prefeitura not found: slug[%s]", sl)
	}

	return pref, nil
}

func parsePublicFilter(sts string, ano string) (emendabus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter emendabus.QueryFilter

	if sts != "" {
		s, err := status.Parse(sts)
		switch err {
		case nil:
			filter.Status = &s
		default:
			fieldErrors.Add("status", err)
		}
	}

	if ano != "" && ano != relatoriobus.AnoTodos {
		year, err := strconv.Atoi(ano)
		switch err {
		case nil:
			filter.Ano = &year
		default:
			fieldErrors.Add("ano", err)
		}
	}

	if fieldErrors != nil {
		return emendabus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
