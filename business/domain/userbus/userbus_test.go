package userbus_test

import (
	"context"
	"errors"
	"io"
	"net/mail"
	"testing"

	"github.com/emendasgov/emendas/business/domain/rolebus"
	"github.com/emendasgov/emendas/business/domain/userbus"
	"github.com/emendasgov/emendas/business/sdk/order"
	"github.com/emendasgov/emendas/business/sdk/page"
	"github.com/emendasgov/emendas/business/sdk/sqldb"
	"github.com/emendasgov/emendas/business/types/name"
	"github.com/emendasgov/emendas/business/types/password"
	"github.com/emendasgov/emendas/business/types/role"
	"github.com/emendasgov/emendas/foundation/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var (
	prefA      = uuid.MustParse("7b9f0a52-1f5e-4a2d-9c3b-0d6f1a2b3c4d")
	prefB      = uuid.MustParse("9d1c3e5f-7a2b-4c6d-8e0f-1a3b5c7d9e0f")
	identityID = uuid.MustParse("3f8e1c9a-5b2d-4e7f-a1b3-c5d7e9f0a2b4")
)

// world holds the observable state of both stores so the tests can assert
// what survived a provisioning run. Writes are staged until the transaction
// commits, mirroring how the real stores behave.
type world struct {
	users []userbus.User
	asgs  []rolebus.Assignment

	stagedUsers []userbus.User
	stagedAsgs  []rolebus.Assignment
}

func (w *world) Begin() (sqldb.CommitRollbacker, error) {
	return &worldTx{w: w}, nil
}

type worldTx struct {
	w *world
}

func (tx *worldTx) Commit() error {
	tx.w.users = append(tx.w.users, tx.w.stagedUsers...)
	tx.w.asgs = append(tx.w.asgs, tx.w.stagedAsgs...)
	tx.w.stagedUsers = nil
	tx.w.stagedAsgs = nil
	return nil
}

func (tx *worldTx) Rollback() error {
	tx.w.stagedUsers = nil
	tx.w.stagedAsgs = nil
	return nil
}

// =============================================================================

type userStore struct {
	w         *world
	createErr error
	updateErr error
}

func (s *userStore) NewWithTx(tx sqldb.CommitRollbacker) (userbus.Storer, error) {
	return s, nil
}

func (s *userStore) Create(ctx context.Context, usr userbus.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.w.stagedUsers = append(s.w.stagedUsers, usr)
	return nil
}

func (s *userStore) Update(ctx context.Context, usr userbus.User) error {
	return s.updateErr
}

func (s *userStore) Delete(ctx context.Context, usr userbus.User) error {
	return nil
}

func (s *userStore) Query(ctx context.Context, filter userbus.QueryFilter, orderBy order.By, page page.Page) ([]userbus.User, error) {
	return s.w.users, nil
}

func (s *userStore) Count(ctx context.Context, filter userbus.QueryFilter) (int, error) {
	return len(s.w.users), nil
}

func (s *userStore) QueryByID(ctx context.Context, userID uuid.UUID) (userbus.User, error) {
	for _, usr := range s.w.users {
		if usr.ID == userID {
			return usr, nil
		}
	}
	return userbus.User{}, userbus.ErrNotFound
}

func (s *userStore) QueryByEmail(ctx context.Context, email mail.Address) (userbus.User, error) {
	for _, usr := range s.w.users {
		if usr.Email == email {
			return usr, nil
		}
	}
	return userbus.User{}, userbus.ErrNotFound
}

// =============================================================================

type roleStore struct {
	w         *world
	inTx      bool
	createErr error
}

func (s *roleStore) NewWithTx(tx sqldb.CommitRollbacker) (rolebus.Storer, error) {
	c := *s
	c.inTx = true
	return &c, nil
}

func (s *roleStore) Create(ctx context.Context, a rolebus.Assignment) error {
	if s.createErr != nil {
		return s.createErr
	}
	if s.inTx {
		s.w.stagedAsgs = append(s.w.stagedAsgs, a)
		return nil
	}
	s.w.asgs = append(s.w.asgs, a)
	return nil
}

func (s *roleStore) Delete(ctx context.Context, a rolebus.Assignment) error {
	kept := s.w.asgs[:0]
	for _, have := range s.w.asgs {
		if have.ID != a.ID {
			kept = append(kept, have)
		}
	}
	s.w.asgs = kept
	return nil
}

func (s *roleStore) QueryByID(ctx context.Context, assignmentID uuid.UUID) (rolebus.Assignment, error) {
	return rolebus.Assignment{}, rolebus.ErrNotFound
}

func (s *roleStore) QueryByUserID(ctx context.Context, userID uuid.UUID) ([]rolebus.Assignment, error) {
	var out []rolebus.Assignment
	for _, a := range s.w.asgs {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

// =============================================================================

type identityProvider struct {
	createErr  error
	emailErr   error
	passErr    error
	deleteErr  error
	created    int
	deleted    int
	emailCalls int
	passCalls  int
}

func (p *identityProvider) Create(ctx context.Context, email mail.Address, pass password.Password) (uuid.UUID, error) {
	if p.createErr != nil {
		return uuid.UUID{}, p.createErr
	}
	p.created++
	return identityID, nil
}

func (p *identityProvider) UpdateEmail(ctx context.Context, userID uuid.UUID, email mail.Address) error {
	if p.emailErr != nil {
		return p.emailErr
	}
	p.emailCalls++
	return nil
}

func (p *identityProvider) UpdatePassword(ctx context.Context, userID uuid.UUID, pass password.Password) error {
	if p.passErr != nil {
		return p.passErr
	}
	p.passCalls++
	return nil
}

func (p *identityProvider) Delete(ctx context.Context, userID uuid.UUID) error {
	p.deleted++
	return p.deleteErr
}

// =============================================================================

type harness struct {
	w        *world
	users    *userStore
	roles    *roleStore
	identity *identityProvider
	core     *userbus.Core
}

func newHarness() *harness {
	w := &world{}
	users := &userStore{w: w}
	roles := &roleStore{w: w}
	identity := &identityProvider{}

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	core := userbus.NewCore(log, w, users, identity, rolebus.NewCore(roles))

	return &harness{
		w:        w,
		users:    users,
		roles:    roles,
		identity: identity,
		core:     core,
	}
}

func newUserFixture(r role.Role, prefID *uuid.UUID) userbus.NewUser {
	return userbus.NewUser{
		Email:        mail.Address{Address: "maria@prefeitura.gov.br"},
		Password:     password.MustParse("segredo123"),
		NomeCompleto: name.MustParse("Maria Souza"),
		Role:         r,
		PrefeituraID: prefID,
	}
}

func superActing() []rolebus.Assignment {
	return []rolebus.Assignment{{Role: role.SuperAdmin}}
}

// =============================================================================

func Test_Provision(t *testing.T) {
	h := newHarness()

	usr, asg, err := h.core.Provision(context.Background(), superActing(), newUserFixture(role.PrefeituraUser, &prefA))
	require.NoError(t, err)

	require.Equal(t, identityID, usr.ID)
	require.Equal(t, usr.ID, asg.UserID)
	require.Len(t, h.w.users, 1)
	require.Len(t, h.w.asgs, 1)
	require.Equal(t, 0, h.identity.deleted)
}

func Test_Provision_PolicyDenied(t *testing.T) {
	h := newHarness()

	acting := []rolebus.Assignment{{Role: role.PrefeituraUser, PrefeituraID: &prefA}}

	_, _, err := h.core.Provision(context.Background(), acting, newUserFixture(role.PrefeituraUser, &prefA))

	var denied *userbus.PolicyDeniedError
	require.ErrorAs(t, err, &denied)
	require.Equal(t, rolebus.ReasonInsufficientPrivilege, denied.Reason)

	// Denial happens before any write.
	require.Equal(t, 0, h.identity.created)
	require.Empty(t, h.w.users)
	require.Empty(t, h.w.asgs)
}

func Test_Provision_InvalidAssignment(t *testing.T) {
	h := newHarness()

	// A tenant role without a prefeitura violates the assignment invariant.
	_, _, err := h.core.Provision(context.Background(), superActing(), newUserFixture(role.PrefeituraUser, nil))
	require.ErrorIs(t, err, rolebus.ErrInvalidAssignment)
	require.Equal(t, 0, h.identity.created)

	// So does a platform role carrying one.
	_, _, err = h.core.Provision(context.Background(), superActing(), newUserFixture(role.SuperAdmin, &prefA))
	require.ErrorIs(t, err, rolebus.ErrInvalidAssignment)
	require.Equal(t, 0, h.identity.created)
}

func Test_Provision_IdentityFailure(t *testing.T) {
	h := newHarness()
	h.identity.createErr = errors.New("identity provider down")

	_, _, err := h.core.Provision(context.Background(), superActing(), newUserFixture(role.PrefeituraUser, &prefA))
	require.Error(t, err)

	require.Equal(t, 0, h.identity.deleted)
	require.Empty(t, h.w.users)
	require.Empty(t, h.w.asgs)
}

// A role assignment write failure after a successful identity create must
// trigger exactly one compensating identity delete and leave no local state.
func Test_Provision_Compensation(t *testing.T) {
	h := newHarness()
	h.roles.createErr = errors.New("assignment insert failed")

	_, _, err := h.core.Provision(context.Background(), superActing(), newUserFixture(role.PrefeituraUser, &prefA))
	require.Error(t, err)

	require.Equal(t, 1, h.identity.created)
	require.Equal(t, 1, h.identity.deleted)
	require.Empty(t, h.w.users)
	require.Empty(t, h.w.asgs)
}

// Even when the compensating delete itself fails, it is attempted once and
// the original error is the one reported.
func Test_Provision_CompensationFailure(t *testing.T) {
	h := newHarness()
	h.users.createErr = errors.New("profile insert failed")
	h.identity.deleteErr = errors.New("identity provider down")

	_, _, err := h.core.Provision(context.Background(), superActing(), newUserFixture(role.PrefeituraUser, &prefA))
	require.ErrorContains(t, err, "profile insert failed")

	require.Equal(t, 1, h.identity.deleted)
	require.Empty(t, h.w.users)
	require.Empty(t, h.w.asgs)
}

// =============================================================================

func seedTarget(t *testing.T, h *harness) userbus.User {
	t.Helper()

	usr, _, err := h.core.Provision(context.Background(), superActing(), newUserFixture(role.PrefeituraUser, &prefA))
	require.NoError(t, err)

	return usr
}

func Test_Update(t *testing.T) {
	h := newHarness()
	usr := seedTarget(t, h)

	email := mail.Address{Address: "novo@prefeitura.gov.br"}
	n := name.MustParse("Maria de Souza")

	updated, err := h.core.Update(context.Background(), superActing(), usr, userbus.UpdateUser{
		Email:        &email,
		NomeCompleto: &n,
	})
	require.NoError(t, err)

	require.Equal(t, email, updated.Email)
	require.Equal(t, n, updated.NomeCompleto)
	require.Equal(t, 1, h.identity.emailCalls)
}

func Test_Update_PolicyDenied(t *testing.T) {
	h := newHarness()
	usr := seedTarget(t, h)

	acting := []rolebus.Assignment{{Role: role.PrefeituraUser, PrefeituraID: &prefA}}

	n := name.MustParse("Maria de Souza")
	_, err := h.core.Update(context.Background(), acting, usr, userbus.UpdateUser{NomeCompleto: &n})

	var denied *userbus.PolicyDeniedError
	require.ErrorAs(t, err, &denied)
	require.Equal(t, rolebus.ReasonInsufficientPrivilege, denied.Reason)
}

// When the identity email update lands but the profile write fails, the
// caller is told which pieces applied. Nothing is rolled back or retried.
func Test_Update_PartialFailure(t *testing.T) {
	h := newHarness()
	usr := seedTarget(t, h)

	h.users.updateErr = errors.New("profile update failed")

	email := mail.Address{Address: "novo@prefeitura.gov.br"}
	_, err := h.core.Update(context.Background(), superActing(), usr, userbus.UpdateUser{Email: &email})

	var partial *userbus.PartialUpdateError
	require.ErrorAs(t, err, &partial)
	require.Equal(t, []string{"email"}, partial.Applied)
	require.Equal(t, 1, h.identity.emailCalls)
}

// A password failure after a successful email update reports the email as
// applied so the caller can retry only the password.
func Test_Update_PartialIdentityFailure(t *testing.T) {
	h := newHarness()
	usr := seedTarget(t, h)

	h.identity.passErr = errors.New("weak password rejected upstream")

	email := mail.Address{Address: "novo@prefeitura.gov.br"}
	pass := password.MustParse("outrosegredo")
	_, err := h.core.Update(context.Background(), superActing(), usr, userbus.UpdateUser{
		Email:    &email,
		Password: &pass,
	})

	var partial *userbus.PartialUpdateError
	require.ErrorAs(t, err, &partial)
	require.Equal(t, []string{"email"}, partial.Applied)
}

// =============================================================================

// A role change is a revoke of the old assignment followed by a grant of the
// new one on the same identity. Nothing is recreated in the identity provider.
func Test_Grant_AfterRevoke(t *testing.T) {
	h := newHarness()
	usr := seedTarget(t, h)

	require.NoError(t, h.core.Revoke(context.Background(), superActing(), h.w.asgs[0]))
	require.Empty(t, h.w.asgs)

	asg, err := h.core.Grant(context.Background(), superActing(), usr, role.PrefeituraAdmin, &prefA)
	require.NoError(t, err)

	require.Equal(t, usr.ID, asg.UserID)
	require.Len(t, h.w.asgs, 1)
	require.Equal(t, role.PrefeituraAdmin, h.w.asgs[0].Role)
	require.Equal(t, 1, h.identity.created)
}

func Test_Grant_PolicyDenied(t *testing.T) {
	h := newHarness()
	usr := seedTarget(t, h)

	acting := []rolebus.Assignment{{Role: role.PrefeituraAdmin, PrefeituraID: &prefA}}

	_, err := h.core.Grant(context.Background(), acting, usr, role.SuperAdmin, nil)

	var denied *userbus.PolicyDeniedError
	require.ErrorAs(t, err, &denied)
	require.Equal(t, rolebus.ReasonPlatformScope, denied.Reason)
	require.Len(t, h.w.asgs, 1)
}

func Test_Grant_InvalidAssignment(t *testing.T) {
	h := newHarness()
	usr := seedTarget(t, h)

	_, err := h.core.Grant(context.Background(), superActing(), usr, role.PrefeituraUser, nil)
	require.ErrorIs(t, err, rolebus.ErrInvalidAssignment)
	require.Len(t, h.w.asgs, 1)
}

// =============================================================================

func Test_QueryByIDFor(t *testing.T) {
	h := newHarness()
	usr := seedTarget(t, h)

	// Platform admins reach any account.
	got, err := h.core.QueryByIDFor(context.Background(), superActing(), usr.ID)
	require.NoError(t, err)
	require.Equal(t, usr.ID, got.ID)

	// A tenant admin reaches accounts of its own prefeitura.
	actingA := []rolebus.Assignment{{Role: role.PrefeituraAdmin, PrefeituraID: &prefA}}
	_, err = h.core.QueryByIDFor(context.Background(), actingA, usr.ID)
	require.NoError(t, err)
}

// An admin of another prefeitura gets not found, not a denial, so the
// account's existence is not disclosed across tenants.
func Test_QueryByIDFor_OutsideTenant(t *testing.T) {
	h := newHarness()
	usr := seedTarget(t, h)

	actingB := []rolebus.Assignment{{Role: role.PrefeituraAdmin, PrefeituraID: &prefB}}

	_, err := h.core.QueryByIDFor(context.Background(), actingB, usr.ID)
	require.ErrorIs(t, err, userbus.ErrNotFound)
}

// =============================================================================

func Test_QueryScoped_None(t *testing.T) {
	h := newHarness()
	seedTarget(t, h)

	users, err := h.core.QueryScoped(context.Background(), rolebus.ScopeNone(), userbus.QueryFilter{}, userbus.DefaultOrderBy, page.MustParse("1", "10"))
	require.NoError(t, err)
	require.Empty(t, users)

	count, err := h.core.CountScoped(context.Background(), rolebus.ScopeNone(), userbus.QueryFilter{})
	require.NoError(t, err)
	require.Zero(t, count)
}
