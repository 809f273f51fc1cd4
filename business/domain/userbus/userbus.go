// Package userbus provides business access to user profiles and the
// provisioning flow that spans the identity provider and the local store.
package userbus

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/emendasgov/emendas/business/domain/rolebus"
	"github.com/emendasgov/emendas/business/sdk/order"
	"github.com/emendasgov/emendas/business/sdk/page"
	"github.com/emendasgov/emendas/business/sdk/sqldb"
	"github.com/emendasgov/emendas/business/types/role"
	"github.com/emendasgov/emendas/foundation/logger"
	"github.com/emendasgov/emendas/foundation/otel"
	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrUniqueEmail       = errors.New("email is not unique")
	ErrPolicyUnavailable = errors.New("access policy unavailable")
)

// PolicyDeniedError is returned when the privilege policy denies an
// operation. The reason is part of the API contract and is surfaced to the
// caller verbatim.
type PolicyDeniedError struct {
	Reason string
}

// Error implements the error interface.
func (e *PolicyDeniedError) Error() string {
	return e.Reason
}

// PartialUpdateError is returned when an update succeeded against the
// identity provider but a later step failed, leaving the two systems out of
// sync. Applied lists the identity fields that were already written. The
// condition is reported, never repaired automatically.
type PartialUpdateError struct {
	Applied []string
	Err     error
}

// Error implements the error interface.
func (e *PartialUpdateError) Error() string {
	return fmt.Sprintf("partial update: applied[%s]: %s", strings.Join(e.Applied, ","), e.Err)
}

// Unwrap supports errors.Is/As on the underlying cause.
func (e *PartialUpdateError) Unwrap() error {
	return e.Err
}

type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, usr User) error
	Update(ctx context.Context, usr User) error
	Delete(ctx context.Context, usr User) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]User, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, userID uuid.UUID) (User, error)
	QueryByEmail(ctx context.Context, email mail.Address) (User, error)
}

// Core manages the set of APIs for user access.
type Core struct {
	log      *logger.Logger
	db       sqldb.Beginner
	storer   Storer
	identity Identity
	roleBus  *rolebus.Core
}

// NewCore constructs a user core for api access.
func NewCore(log *logger.Logger, db sqldb.Beginner, storer Storer, identity Identity, roleBus *rolebus.Core) *Core {
	return &Core{
		log:      log,
		db:       db,
		storer:   storer,
		identity: identity,
		roleBus:  roleBus,
	}
}

// Provision creates an account end to end: privilege check, identity
// creation in the external provider, then profile and role assignment in a
// single local transaction. If the local step fails the identity is deleted
// so a retry starts clean.
func (c *Core) Provision(ctx context.Context, acting []rolebus.Assignment, nu NewUser) (User, rolebus.Assignment, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.provision")
	defer span.End()

	var targetPrefeitura uuid.UUID
	if nu.PrefeituraID != nil {
		targetPrefeitura = *nu.PrefeituraID
	}

	if d := rolebus.DecideGrant(acting, nu.Role, targetPrefeitura); !d.Allowed() {
		return User{}, rolebus.Assignment{}, &PolicyDeniedError{Reason: d.Reason()}
	}

	if nu.Role.RequiresPrefeitura() == (nu.PrefeituraID == nil) {
		return User{}, rolebus.Assignment{}, fmt.Errorf("role[%s]: %w", nu.Role, rolebus.ErrInvalidAssignment)
	}

	identityID, err := c.identity.Create(ctx, nu.Email, nu.Password)
	if err != nil {
		return User{}, rolebus.Assignment{}, fmt.Errorf("identity create: %w", err)
	}

	now := time.Now()

	usr := User{
		ID:           identityID,
		Email:        nu.Email,
		NomeCompleto: nu.NomeCompleto,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	asg, err := c.provisionLocal(ctx, usr, nu)
	if err != nil {
		if derr := c.identity.Delete(ctx, identityID); derr != nil {
			c.log.Error(ctx, "provision: compensating identity delete failed", "user_id", identityID, "err", derr)
		}
		return User{}, rolebus.Assignment{}, err
	}

	return usr, asg, nil
}

func (c *Core) provisionLocal(ctx context.Context, usr User, nu NewUser) (rolebus.Assignment, error) {
	tx, err := c.db.Begin()
	if err != nil {
		return rolebus.Assignment{}, fmt.Errorf("begin: %w", err)
	}

	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		tx.Rollback()
		return rolebus.Assignment{}, fmt.Errorf("storer tx: %w", err)
	}

	roleBus, err := c.roleBus.NewWithTx(tx)
	if err != nil {
		tx.Rollback()
		return rolebus.Assignment{}, fmt.Errorf("rolebus tx: %w", err)
	}

	if err := storer.Create(ctx, usr); err != nil {
		tx.Rollback()
		return rolebus.Assignment{}, fmt.Errorf("create: %w", err)
	}

	asg, err := roleBus.Create(ctx, rolebus.NewAssignment{
		UserID:       usr.ID,
		Role:         nu.Role,
		PrefeituraID: nu.PrefeituraID,
	})
	if err != nil {
		tx.Rollback()
		return rolebus.Assignment{}, fmt.Errorf("assignment create: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return rolebus.Assignment{}, fmt.Errorf("commit: %w", err)
	}

	return asg, nil
}

// Update applies changes to an existing user. Email and password go to the
// identity provider first, nome completo and enabled to the local profile.
// If the profile write fails after an identity write succeeded, the result
// is a PartialUpdateError.
func (c *Core) Update(ctx context.Context, acting []rolebus.Assignment, usr User, uu UpdateUser) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.update")
	defer span.End()

	target, err := c.roleBus.QueryByUserID(ctx, usr.ID)
	if err != nil {
		return User{}, fmt.Errorf("query assignments: userID[%s]: %w", usr.ID, err)
	}

	if d := rolebus.DecideUpdate(acting, target); !d.Allowed() {
		return User{}, &PolicyDeniedError{Reason: d.Reason()}
	}

	var applied []string

	if uu.Email != nil {
		if err := c.identity.UpdateEmail(ctx, usr.ID, *uu.Email); err != nil {
			return User{}, fmt.Errorf("identity update email: %w", err)
		}
		applied = append(applied, "email")
		usr.Email = *uu.Email
	}

	if uu.Password != nil {
		if err := c.identity.UpdatePassword(ctx, usr.ID, *uu.Password); err != nil {
			if len(applied) > 0 {
				return User{}, &PartialUpdateError{Applied: applied, Err: err}
			}
			return User{}, fmt.Errorf("identity update password: %w", err)
		}
		applied = append(applied, "password")
	}

	if uu.NomeCompleto != nil {
		usr.NomeCompleto = *uu.NomeCompleto
	}

	if uu.Enabled != nil {
		usr.Enabled = *uu.Enabled
	}

	usr.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, usr); err != nil {
		if len(applied) > 0 {
			return User{}, &PartialUpdateError{Applied: applied, Err: err}
		}
		return User{}, fmt.Errorf("update: %w", err)
	}

	return usr, nil
}

// Grant adds a role assignment to an existing account. It runs the same
// privilege policy as provisioning, so a role change completes as a revoke
// followed by a grant without recreating the identity.
func (c *Core) Grant(ctx context.Context, acting []rolebus.Assignment, usr User, r role.Role, prefeituraID *uuid.UUID) (rolebus.Assignment, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.grant")
	defer span.End()

	var targetPrefeitura uuid.UUID
	if prefeituraID != nil {
		targetPrefeitura = *prefeituraID
	}

	if d := rolebus.DecideGrant(acting, r, targetPrefeitura); !d.Allowed() {
		return rolebus.Assignment{}, &PolicyDeniedError{Reason: d.Reason()}
	}

	asg, err := c.roleBus.Create(ctx, rolebus.NewAssignment{
		UserID:       usr.ID,
		Role:         r,
		PrefeituraID: prefeituraID,
	})
	if err != nil {
		return rolebus.Assignment{}, fmt.Errorf("assignment create: userID[%s]: %w", usr.ID, err)
	}

	return asg, nil
}

// Revoke removes a role assignment after re-validating the requester's
// privileges against the target's current assignments.
func (c *Core) Revoke(ctx context.Context, acting []rolebus.Assignment, asg rolebus.Assignment) error {
	ctx, span := otel.AddSpan(ctx, "business.userbus.revoke")
	defer span.End()

	target, err := c.roleBus.QueryByUserID(ctx, asg.UserID)
	if err != nil {
		return fmt.Errorf("query assignments: userID[%s]: %w", asg.UserID, err)
	}

	if d := rolebus.DecideUpdate(acting, target); !d.Allowed() {
		return &PolicyDeniedError{Reason: d.Reason()}
	}

	if err := c.roleBus.Delete(ctx, asg); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}

	return nil
}

// QueryScoped retrieves a list of users visible within the given scope. A
// None scope returns an empty list without touching the store.
func (c *Core) QueryScoped(ctx context.Context, scope rolebus.Scope, filter QueryFilter, orderBy order.By, page page.Page) ([]User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.queryScoped")
	defer span.End()

	if scope.IsNone() {
		return []User{}, nil
	}

	if prefeituraID, ok := scope.PrefeituraID(); ok {
		filter.PrefeituraID = &prefeituraID
	}

	users, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return users, nil
}

// CountScoped returns the total number of users visible within the scope.
func (c *Core) CountScoped(ctx context.Context, scope rolebus.Scope, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.countScoped")
	defer span.End()

	if scope.IsNone() {
		return 0, nil
	}

	if prefeituraID, ok := scope.PrefeituraID(); ok {
		filter.PrefeituraID = &prefeituraID
	}

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the user by the specified ID.
func (c *Core) QueryByID(ctx context.Context, userID uuid.UUID) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.queryByID")
	defer span.End()

	usr, err := c.storer.QueryByID(ctx, userID)
	if err != nil {
		return User{}, fmt.Errorf("query: userID[%s]: %w", userID, err)
	}

	return usr, nil
}

// QueryByIDFor finds the user by ID on behalf of the acting principal. An
// account the requester could not manage is reported as not found so its
// existence is not disclosed.
func (c *Core) QueryByIDFor(ctx context.Context, acting []rolebus.Assignment, userID uuid.UUID) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.queryByIDFor")
	defer span.End()

	usr, err := c.storer.QueryByID(ctx, userID)
	if err != nil {
		return User{}, fmt.Errorf("query: userID[%s]: %w", userID, err)
	}

	target, err := c.roleBus.QueryByUserID(ctx, userID)
	if err != nil {
		return User{}, fmt.Errorf("query assignments: userID[%s]: %w", userID, err)
	}

	if d := rolebus.DecideUpdate(acting, target); !d.Allowed() {
		return User{}, ErrNotFound
	}

	return usr, nil
}

// QueryByEmail finds the user by a specified user email.
func (c *Core) QueryByEmail(ctx context.Context, email mail.Address) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.queryByEmail")
	defer span.End()

	usr, err := c.storer.QueryByEmail(ctx, email)
	if err != nil {
		return User{}, fmt.Errorf("query: email[%s]: %w", email, err)
	}

	return usr, nil
}
