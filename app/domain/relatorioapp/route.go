package relatorioapp

import (
	"net/http"

	"github.com/emendasgov/emendas/app/sdk/auth"
	"github.com/emendasgov/emendas/app/sdk/mid"
	"github.com/emendasgov/emendas/business/domain/emendabus"
	"github.com/emendasgov/emendas/business/domain/prefeiturabus"
	"github.com/emendasgov/emendas/business/domain/rolebus"
	"github.com/emendasgov/emendas/business/sdk/web"
	"github.com/emendasgov/emendas/business/types/role"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth          *auth.Auth
	EmendaBus     *emendabus.Core
	PrefeituraBus *prefeiturabus.Core
	RoleBus       *rolebus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth, cfg.RoleBus)
	anyRole := mid.Authorize(cfg.Auth, role.SuperAdmin, role.PrefeituraAdmin, role.PrefeituraUser)

	api := newApp(cfg.EmendaBus, cfg.PrefeituraBus)

	app.HandlerFunc(http.MethodGet, version, "/relatorios/resumo", api.resumo, authen, anyRole)
	app.HandlerFunc(http.MethodGet, version, "/relatorios/exportar/csv", api.exportarCSV, authen, anyRole)
	app.HandlerFunc(http.MethodGet, version, "/relatorios/exportar/impressao", api.exportarImpressao, authen, anyRole)
}
