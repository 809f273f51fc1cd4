// Package all binds every route group into the single service instance.
package all

import (
	"github.com/emendasgov/emendas/app/domain/checkapp"
	"github.com/emendasgov/emendas/app/domain/emendaapp"
	"github.com/emendasgov/emendas/app/domain/prefeituraapp"
	"github.com/emendasgov/emendas/app/domain/publicapp"
	"github.com/emendasgov/emendas/app/domain/relatorioapp"
	"github.com/emendasgov/emendas/app/domain/usuarioapp"
	"github.com/emendasgov/emendas/app/sdk/mux"
	"github.com/emendasgov/emendas/business/sdk/web"
)

// Routes constructs the add value which provides the implementation of
// of RouteAdder for specifying what routes to bind to this instance.
func Routes() add {
	return add{}
}

type add struct{}

func (add) Add(app *web.App, cfg mux.Config) {
	checkapp.Routes(app, checkapp.Config{
		Build: cfg.Build,
		Log:   cfg.Log,
		DB:    cfg.DB,
	})

	usuarioapp.Routes(app, usuarioapp.Config{
		Auth:    cfg.AuthConfig.Auth,
		UserBus: cfg.BusConfig.UserBus,
		RoleBus: cfg.BusConfig.RoleBus,
	})

	prefeituraapp.Routes(app, prefeituraapp.Config{
		Auth:          cfg.AuthConfig.Auth,
		PrefeituraBus: cfg.BusConfig.PrefeituraBus,
		RoleBus:       cfg.BusConfig.RoleBus,
	})

	emendaapp.Routes(app, emendaapp.Config{
		Auth:      cfg.AuthConfig.Auth,
		EmendaBus: cfg.BusConfig.EmendaBus,
		RoleBus:   cfg.BusConfig.RoleBus,
	})

	relatorioapp.Routes(app, relatorioapp.Config{
		Auth:          cfg.AuthConfig.Auth,
		EmendaBus:     cfg.BusConfig.EmendaBus,
		PrefeituraBus: cfg.BusConfig.PrefeituraBus,
		RoleBus:       cfg.BusConfig.RoleBus,
	})

	publicapp.Routes(app, publicapp.Config{
		PrefeituraBus: cfg.BusConfig.PrefeituraBus,
		EmendaBus:     cfg.BusConfig.EmendaBus,
	})
}
