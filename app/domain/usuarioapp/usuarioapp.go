// Package usuarioapp maintains the app layer api for the usuario domain.
package usuarioapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/emendasgov/emendas/app/sdk/errs"
	"github.com/emendasgov/emendas/app/sdk/mid"
	"github.com/emendasgov/emendas/app/sdk/query"
	"github.com/emendasgov/emendas/business/domain/rolebus"
	"github.com/emendasgov/emendas/business/domain/userbus"
	"github.com/emendasgov/emendas/business/sdk/order"
	"github.com/emendasgov/emendas/business/sdk/page"
	"github.com/emendasgov/emendas/business/sdk/web"
	"github.com/google/uuid"
)

type app struct {
	userBus *userbus.Core
	roleBus *rolebus.Core
}

func newApp(userBus *userbus.Core, roleBus *rolebus.Core) *app {
	return &app{
		userBus: userBus,
		roleBus: roleBus,
	}
}

// create provisions a new account: identity in the external provider, then
// profile and role assignment locally.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewUsuario
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	acting, err := mid.GetAssignments(ctx)
	if err != nil {
		return errs.New(errs.Internal, userbus.ErrPolicyUnavailable)
	}

	nu, err := toBusNewUsuario(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	usr, _, err := a.userBus.Provision(ctx, acting, nu)
	if err != nil {
		var policyErr *userbus.PolicyDeniedError
		switch {
		case errors.As(err, &policyErr):
			return errs.New(errs.PermissionDenied, policyErr)
		case errors.Is(err, userbus.ErrUniqueEmail):
			return errs.New(errs.Aborted, userbus.ErrUniqueEmail)
		case errors.Is(err, rolebus.ErrInvalidAssignment):
			return errs.New(errs.InvalidArgument, err)
		}
		return errs.Errorf(errs.Internal, "provision: %s", err)
	}

	return toAppCreatedUsuario(usr)
}

// update applies partial changes to an existing account.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateUsuario
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	acting, err := mid.GetAssignments(ctx)
	if err != nil {
		return errs.New(errs.Internal, userbus.ErrPolicyUnavailable)
	}

	userID, err := uuid.Parse(r.PathValue("user_id"))
	if err != nil {
		return errs.NewFieldErrors("user_id", err)
	}

	usr, err := a.userBus.QueryByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "query user: %s", err)
	}

	uu, err := toBusUpdateUsuario(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	if _, err := a.userBus.Update(ctx, acting, usr, uu); err != nil {
		var policyErr *userbus.PolicyDeniedError
		switch {
		case errors.As(err, &policyErr):
			return errs.New(errs.PermissionDenied, policyErr)
		case errors.Is(err, userbus.ErrUniqueEmail):
			return errs.New(errs.Aborted, userbus.ErrUniqueEmail)
		}
		return errs.Errorf(errs.Internal, "update: userID[%s]: %s", usr.ID, err)
	}

	return Success{Success: true}
}

// grant adds a role assignment to an existing account. A role change is a
// revoke of the old assignment followed by a grant of the new one.
func (a *app) grant(ctx context.Context, r *http.Request) web.Encoder {
	var app NewVinculo
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	acting, err := mid.GetAssignments(ctx)
	if err != nil {
		return errs.New(errs.Internal, userbus.ErrPolicyUnavailable)
	}

	userID, err := uuid.Parse(r.PathValue("user_id"))
	if err != nil {
		return errs.NewFieldErrors("user_id", err)
	}

	usr, err := a.userBus.QueryByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "query user: %s", err)
	}

	rl, prefeituraID, err := toBusNewVinculo(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	asg, err := a.userBus.Grant(ctx, acting, usr, rl, prefeituraID)
	if err != nil {
		var policyErr *userbus.PolicyDeniedError
		switch {
		case errors.As(err, &policyErr):
			return errs.New(errs.PermissionDenied, policyErr)
		case errors.Is(err, rolebus.ErrInvalidAssignment):
			return errs.New(errs.InvalidArgument, err)
		case errors.Is(err, rolebus.ErrDuplicateAssignment):
			return errs.New(errs.Aborted, rolebus.ErrDuplicateAssignment)
		}
		return errs.Errorf(errs.Internal, "grant: userID[%s]: %s", usr.ID, err)
	}

	return toAppVinculo(asg)
}

// revoke removes a role assignment from an account.
func (a *app) revoke(ctx context.Context, r *http.Request) web.Encoder {
	acting, err := mid.GetAssignments(ctx)
	if err != nil {
		return errs.New(errs.Internal, userbus.ErrPolicyUnavailable)
	}

	userID, err := uuid.Parse(r.PathValue("user_id"))
	if err != nil {
		return errs.NewFieldErrors("user_id", err)
	}

	vinculoID, err := uuid.Parse(r.PathValue("vinculo_id"))
	if err != nil {
		return errs.NewFieldErrors("vinculo_id", err)
	}

	asg, err := a.roleBus.QueryByID(ctx, vinculoID)
	if err != nil {
		if errors.Is(err, rolebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "query assignment: %s", err)
	}

	if asg.UserID != userID {
		return errs.New(errs.NotFound, rolebus.ErrNotFound)
	}

	if err := a.userBus.Revoke(ctx, acting, asg); err != nil {
		var policyErr *userbus.PolicyDeniedError
		if errors.As(err, &policyErr) {
			return errs.New(errs.PermissionDenied, policyErr)
		}
		return errs.Errorf(errs.Internal, "revoke: vinculoID[%s]: %s", vinculoID, err)
	}

	return Success{Success: true}
}

// query returns a scoped list of users with paging.
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

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, userbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	scope, err := mid.GetScope(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "scope missing in context: %s", err)
	}

	usrs, err := a.userBus.QueryScoped(ctx, scope, filter, orderBy, page)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.userBus.CountScoped(ctx, scope, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppUsuarios(usrs), total, page)
}

// queryByID returns a user by its ID. Accounts outside the requester's
// reach answer not found.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	acting, err := mid.GetAssignments(ctx)
	if err != nil {
		return errs.New(errs.Internal, userbus.ErrPolicyUnavailable)
	}

	userID, err := uuid.Parse(r.PathValue("user_id"))
	if err != nil {
		return errs.NewFieldErrors("user_id", err)
	}

	usr, err := a.userBus.QueryByIDFor(ctx, acting, userID)
	if err != nil {
		if errors.Is(err, userbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "query: userID[%s]: %s", userID, err)
	}

	return toAppUsuario(usr)
}
