// Package mid provides app level middleware support.
package mid

import (
	"context"
	"errors"

	"github.com/emendasgov/emendas/app/sdk/auth"
	"github.com/emendasgov/emendas/business/domain/rolebus"
	"github.com/emendasgov/emendas/business/domain/userbus"
	"github.com/emendasgov/emendas/business/sdk/web"
	"github.com/google/uuid"
)

func checkIsError(e web.Encoder) error {
	err, hasError := e.(error)
	if hasError {
		return err
	}

	return nil
}

// =============================================================================

type ctxKey int

const (
	claimKey ctxKey = iota + 1
	userIDKey
	userKey
	assignmentsKey
	scopeKey
)

func setClaims(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, claimKey, claims)
}

// GetClaims returns the claims from the context.
func GetClaims(ctx context.Context) auth.Claims {
	v, ok := ctx.Value(claimKey).(auth.Claims)
	if !ok {
		return auth.Claims{}
	}
	return v
}

func setUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID returns the user id from the context.
func GetUserID(ctx context.Context) (uuid.UUID, error) {
	v, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok {
		return uuid.UUID{}, errors.New("user id not found in context")
	}

	return v, nil
}

func setUser(ctx context.Context, usr userbus.User) context.Context {
	return context.WithValue(ctx, userKey, usr)
}

// GetUser returns the user from the context.
func GetUser(ctx context.Context) (userbus.User, error) {
	v, ok := ctx.Value(userKey).(userbus.User)
	if !ok {
		return userbus.User{}, errors.New("user not found in context")
	}

	return v, nil
}

func setAssignments(ctx context.Context, assignments []rolebus.Assignment) context.Context {
	return context.WithValue(ctx, assignmentsKey, assignments)
}

// GetAssignments returns the requester's role assignments from the context.
func GetAssignments(ctx context.Context) ([]rolebus.Assignment, error) {
	v, ok := ctx.Value(assignmentsKey).([]rolebus.Assignment)
	if !ok {
		return nil, errors.New("assignments not found in context")
	}

	return v, nil
}

func setScope(ctx context.Context, scope rolebus.Scope) context.Context {
	return context.WithValue(ctx, scopeKey, scope)
}

// GetScope returns the resolved access scope from the context.
func GetScope(ctx context.Context) (rolebus.Scope, error) {
	v, ok := ctx.Value(scopeKey).(rolebus.Scope)
	if !ok {
		return rolebus.Scope{}, errors.New("scope not found in context")
	}

	return v, nil
}
