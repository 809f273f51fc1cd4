package usuarioapp

import (
	"net/http"

	"github.com/emendasgov/emendas/app/sdk/auth"
	"github.com/emendasgov/emendas/app/sdk/mid"
	"github.com/emendasgov/emendas/business/domain/rolebus"
	"github.com/emendasgov/emendas/business/domain/userbus"
	"github.com/emendasgov/emendas/business/sdk/web"
	"github.com/emendasgov/emendas/business/types/role"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth    *auth.Auth
	UserBus *userbus.Core
	RoleBus *rolebus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth, cfg.RoleBus)
	admins := mid.Authorize(cfg.Auth, role.SuperAdmin, role.PrefeituraAdmin)

	api := newApp(cfg.UserBus, cfg.RoleBus)

	app.HandlerFunc(http.MethodGet, version, "/usuarios", api.query, authen, admins)
	app.HandlerFunc(http.MethodGet, version, "/usuarios/{user_id}", api.queryByID, authen, admins)
	app.HandlerFunc(http.MethodPost, version, "/usuarios", api.create, authen, admins)
	app.HandlerFunc(http.MethodPut, version, "/usuarios/{user_id}", api.update, authen, admins)
	app.HandlerFunc(http.MethodPost, version, "/usuarios/{user_id}/vinculos", api.grant, authen, admins)
	app.HandlerFunc(http.MethodDelete, version, "/usuarios/{user_id}/vinculos/{vinculo_id}", api.revoke, authen, admins)
}
