package mid

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/emendasgov/emendas/app/sdk/auth"
	"github.com/emendasgov/emendas/app/sdk/errs"
	"github.com/emendasgov/emendas/business/domain/rolebus"
	"github.com/emendasgov/emendas/business/domain/userbus"
	"github.com/emendasgov/emendas/business/sdk/web"
	"github.com/google/uuid"
)

// Authenticate validates the JWT in the Authorization header, then loads the
// requester's role assignments and resolves their access scope. Handlers
// never query without a scope in the context: if the assignments cannot be
// loaded the request fails before any handler runs, it never defaults to an
// unfiltered view.
func Authenticate(a *auth.Auth, roleBus *rolebus.Core) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			authStr := r.Header.Get("authorization")
			if authStr == "" {
				return errs.New(errs.Unauthenticated, errors.New("missing authorization header"))
			}

			parts := strings.Split(authStr, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return errs.New(errs.Unauthenticated, errors.New("expected authorization header format: Bearer <token>"))
			}

			claims, err := a.Authenticate(ctx, authStr)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return errs.New(errs.Unauthenticated, fmt.Errorf("invalid user id: %w", err))
			}

			assignments, err := roleBus.QueryByUserID(ctx, userID)
			if err != nil {
				return errs.New(errs.Internal, fmt.Errorf("%w: %w", userbus.ErrPolicyUnavailable, err))
			}

			scope, err := rolebus.ResolveScope(assignments)
			if err != nil {
				return errs.New(errs.PermissionDenied, err)
			}

			ctx = setClaims(ctx, claims)
			ctx = setUserID(ctx, userID)
			ctx = setAssignments(ctx, assignments)
			ctx = setScope(ctx, scope)

			return next(ctx, r)
		}

		return h
	}

	return m
}
