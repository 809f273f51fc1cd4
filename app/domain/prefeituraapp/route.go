package prefeituraapp

import (
	"net/http"

	"github.com/emendasgov/emendas/app/sdk/auth"
	"github.com/emendasgov/emendas/app/sdk/mid"
	"github.com/emendasgov/emendas/business/domain/prefeiturabus"
	"github.com/emendasgov/emendas/business/domain/rolebus"
	"github.com/emendasgov/emendas/business/sdk/web"
	"github.com/emendasgov/emendas/business/types/role"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth          *auth.Auth
	PrefeituraBus *prefeiturabus.Core
	RoleBus       *rolebus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth, cfg.RoleBus)
	superOnly := mid.Authorize(cfg.Auth, role.SuperAdmin)

	api := newApp(cfg.PrefeituraBus)

	app.HandlerFunc(http.MethodGet, version, "/prefeituras", api.query, authen, superOnly)
	app.HandlerFunc(http.MethodGet, version, "/prefeituras/{prefeitura_id}", api.queryByID, authen, superOnly)
	app.HandlerFunc(http.MethodPost, version, "/prefeituras", api.create, authen, superOnly)
	app.HandlerFunc(http.MethodPut, version, "/prefeituras/{prefeitura_id}", api.update, authen, superOnly)
	app.HandlerFunc(http.MethodDelete, version, "/prefeituras/{prefeitura_id}", api.delete, authen, superOnly)
}
