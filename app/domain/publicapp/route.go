package publicapp

import (
	"net/http"

	"github.com/emendasgov/emendas/business/domain/emendabus"
	"github.com/emendasgov/emendas/business/domain/prefeiturabus"
	"github.com/emendasgov/emendas/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	PrefeituraBus *prefeiturabus.Core
	EmendaBus     *emendabus.Core
}

// Routes adds specific routes for this group. These endpoints carry no
// authentication, the slug pins every read to one enabled prefeitura.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	api := newApp(cfg.PrefeituraBus, cfg.EmendaBus)

	app.HandlerFunc(http.MethodGet, version, "/publico/prefeituras", api.prefeituras)
	app.HandlerFunc(http.MethodGet, version, "/publico/{slug}/emendas", api.emendas)
	app.HandlerFunc(http.MethodGet, version, "/publico/{slug}/resumo", api.resumo)
}
