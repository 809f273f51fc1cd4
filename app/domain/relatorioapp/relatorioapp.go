// Package relatorioapp maintains the app layer api for the relatorio domain.
package relatorioapp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/emendasgov/emendas/app/sdk/errs"
	"github.com/emendasgov/emendas/app/sdk/mid"
	"github.com/emendasgov/emendas/business/domain/emendabus"
	"github.com/emendasgov/emendas/business/domain/exportbus"
	"github.com/emendasgov/emendas/business/domain/prefeiturabus"
	"github.com/emendasgov/emendas/business/domain/relatoriobus"
	"github.com/emendasgov/emendas/business/sdk/web"
)

type app struct {
	emendaBus     *emendabus.Core
	prefeituraBus *prefeiturabus.Core
}

func newApp(emendaBus *emendabus.Core, prefeituraBus *prefeiturabus.Core) *app {
	return &app{
		emendaBus:     emendaBus,
		prefeituraBus: prefeituraBus,
	}
}

func (a *app) resumo(ctx context.Context, r *http.Request) web.Encoder {
	scope, err := mid.GetScope(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	emendas, err := a.emendaBus.QueryAllScoped(ctx, scope, emendabus.QueryFilter{}, emendabus.DefaultOrderBy)
	if err != nil {
		return errs.Errorf(errs.Internal, "queryallscoped: %s", err)
	}

	ano := r.URL.Query().Get("ano")
	resumo := relatoriobus.Aggregate(emendas, ano)
	anos := relatoriobus.AnosDisponiveis(emendas)

	return toAppResumo(resumo, anos)
}

func (a *app) exportarCSV(ctx context.Context, r *http.Request) web.Encoder {
	scope, err := mid.GetScope(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	emendas, err := a.emendaBus.QueryAllScoped(ctx, scope, emendabus.QueryFilter{}, emendabus.DefaultOrderBy)
	if err != nil {
		return errs.Errorf(errs.Internal, "queryallscoped: %s", err)
	}

	ano := r.URL.Query().Get("ano")
	filtradas := relatoriobus.FiltrarAno(emendas, ano)

	return fileResponse{
		data:        exportbus.CSV(filtradas),
		contentType: "text/csv; charset=utf-8",
		disposition: fmt.Sprintf("attachment; filename=%q", csvFilename(ano)),
	}
}

func (a *app) exportarImpressao(ctx context.Context, r *http.Request) web.Encoder {
	scope, err := mid.GetScope(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	emendas, err := a.emendaBus.QueryAllScoped(ctx, scope, emendabus.QueryFilter{}, emendabus.DefaultOrderBy)
	if err != nil {
		return errs.Errorf(errs.Internal, "queryallscoped: %s", err)
	}

	ano := r.URL.Query().Get("ano")
	filtradas := relatoriobus.FiltrarAno(emendas, ano)

	doc := exportbus.PrintDoc{
		Prefeitura: "Todas as prefeituras",
		Filtro:     filtroLabel(ano),
		GeradoEm:   time.Now(),
		Emendas:    filtradas,
		Resumo:     relatoriobus.Aggregate(filtradas, relatoriobus.AnoTodos),
	}

	if prefeituraID, ok := scope.PrefeituraID(); ok {
		pref, err := a.prefeituraBus.QueryByID(ctx, prefeituraID)
		if err != nil {
			return errs.Errorf(errs.Internal, "querybyid: prefeituraID[%s]: %s", prefeituraID, err)
		}
		doc.Prefeitura = pref.Nome.String()
	}

	data, err := exportbus.Print(doc)
	if err != nil {
		return errs.Errorf(errs.Internal, "print: %s", err)
	}

	resp := fileResponse{
		data:        data,
		contentType: "text/html; charset=utf-8",
	}

	// The download flag serves the exact same bytes with an attachment
	// disposition so the user can save the report when the browser cannot
	// print it.
	if r.URL.Query().Get("download") == "1" {
		resp.disposition = fmt.Sprintf("attachment; filename=%q", htmlFilename(ano))
	}

	return resp
}

func csvFilename(ano string) string {
	if ano == "" || ano == relatoriobus.AnoTodos {
		return "emendas.csv"
	}
	return fmt.Sprintf("emendas-%s.csv", ano)
}

func htmlFilename(ano string) string {
	if ano == "" || ano == relatoriobus.AnoTodos {
		return "relatorio-emendas.html"
	}
	return fmt.Sprintf("relatorio-emendas-%s.html", ano)
}

func filtroLabel(ano string) string {
	if ano == "" || ano == relatoriobus.AnoTodos {
		return "Todos os anos"
	}
	return ano
}
