// Package prefeituraapp maintains the app layer api for the prefeitura
// domain, restricted to platform operators.
package prefeituraapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/emendasgov/emendas/app/sdk/errs"
	"github.com/emendasgov/emendas/business/domain/prefeiturabus"
	"github.com/emendasgov/emendas/business/sdk/web"
	"github.com/google/uuid"
)

type app struct {
	prefeituraBus *prefeiturabus.Core
}

func newApp(prefeituraBus *prefeiturabus.Core) *app {
	return &app{
		prefeituraBus: prefeituraBus,
	}
}

// create adds a new prefeitura to the system.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewPrefeitura
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	np, err := toBusNewPrefeitura(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	pref, err := a.prefeituraBus.Create(ctx, np)
	if err != nil {
		if errors.Is(err, prefeiturabus.ErrUniqueSlug) {
			return errs.New(errs.Aborted, prefeiturabus.ErrUniqueSlug)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: pref[%+v]: %s", app, err)
	}

	return toAppPrefeitura(pref)
}

// update updates an existing prefeitura.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdatePrefeitura
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	pref, errResp := a.queryPrefeitura(ctx, r)
	if errResp != nil {
		return errResp
	}

	up, err := toBusUpdatePrefeitura(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updPref, err := a.prefeituraBus.Update(ctx, pref, up)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "update: prefeituraID[%s]: %s", pref.ID, err)
	}

	return toAppPrefeitura(updPref)
}

// delete removes a prefeitura from the system.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	pref, errResp := a.queryPrefeitura(ctx, r)
	if errResp != nil {
		return errResp
	}

	if err := a.prefeituraBus.Delete(ctx, pref); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: prefeituraID[%s]: %s", pref.ID, err)
	}

	return nil
}

// query returns the list of prefeituras, including disabled ones.
func (a *app) query(ctx context.Context, _ *http.Request) web.Encoder {
	prefs, err := a.prefeituraBus.QueryAll(ctx, false)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	return Prefeituras(toAppPrefeituras(prefs))
}

// queryByID returns a prefeitura by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	pref, errResp := a.queryPrefeitura(ctx, r)
	if errResp != nil {
		return errResp
	}

	return toAppPrefeitura(pref)
}

func (a *app) queryPrefeitura(ctx context.Context, r *http.Request) (prefeiturabus.Prefeitura, web.Encoder) {
	prefeituraID, err := uuid.Parse(r.PathValue("prefeitura_id"))
	if err != nil {
		return prefeiturabus.Prefeitura{}, errs.NewFieldErrors("prefeitura_id", err)
	}

	pref, err := a.prefeituraBus.QueryByID(ctx, prefeituraID)
	if err != nil {
		if errors.Is(err, prefeiturabus.ErrNotFound) {
			return prefeiturabus.Prefeitura{}, errs.New(errs.NotFound, err)
		}
		return prefeiturabus.Prefeitura{}, errs.Errorf(errs.InternalOnlyLog, "query: prefeituraID[%s]: %s", prefeituraID, err)
	}

	return pref, nil
}
