// Package rolecache contains assignment related CRUD functionality with a
// read-through cache. Authentication resolves the caller's assignments on
// every request, so the by-user lookup is the hottest read in the system.
package rolecache

import (
	"context"
	"time"

	"github.com/emendasgov/emendas/business/domain/rolebus"
	"github.com/emendasgov/emendas/business/sdk/sqldb"
	"github.com/emendasgov/emendas/foundation/logger"
	"github.com/google/uuid"
	"github.com/viccon/sturdyc"
)

// Store manages the set of APIs for assignment data and caching.
type Store struct {
	log    *logger.Logger
	storer rolebus.Storer
	cache  *sturdyc.Client[[]rolebus.Assignment]
}

// NewStore constructs the api for data and caching access.
func NewStore(log *logger.Logger, storer rolebus.Storer, ttl time.Duration) *Store {
	const capacity = 10000
	const numShards = 10
	const evictionPercentage = 10

	return &Store{
		log:    log,
		storer: storer,
		cache:  sturdyc.New[[]rolebus.Assignment](capacity, numShards, ttl, evictionPercentage),
	}
}

// NewWithTx constructs a new Store value replacing the storer value with a
// storer value that is currently inside a transaction. Writes inside a
// transaction bypass the cache until the invalidation on commit paths.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (rolebus.Storer, error) {
	storer, err := s.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log:    s.log,
		storer: storer,
		cache:  s.cache,
	}

	return &store, nil
}

// Create inserts a new assignment and invalidates the user's cached set.
func (s *Store) Create(ctx context.Context, a rolebus.Assignment) error {
	if err := s.storer.Create(ctx, a); err != nil {
		return err
	}

	s.cache.Delete(a.UserID.String())

	return nil
}

// Delete removes an assignment and invalidates the user's cached set.
func (s *Store) Delete(ctx context.Context, a rolebus.Assignment) error {
	if err := s.storer.Delete(ctx, a); err != nil {
		return err
	}

	s.cache.Delete(a.UserID.String())

	return nil
}

// QueryByID gets the specified assignment from the database. ID lookups are
// rare (revocation only) and are not cached.
func (s *Store) QueryByID(ctx context.Context, assignmentID uuid.UUID) (rolebus.Assignment, error) {
	return s.storer.QueryByID(ctx, assignmentID)
}

// QueryByUserID gets the assignments held by the specified user, reading
// through the cache.
func (s *Store) QueryByUserID(ctx context.Context, userID uuid.UUID) ([]rolebus.Assignment, error) {
	fetch := func(ctx context.Context) ([]rolebus.Assignment, error) {
		return s.storer.QueryByUserID(ctx, userID)
	}

	assignments, err := s.cache.GetOrFetch(ctx, userID.String(), fetch)
	if err != nil {
		return nil, err
	}

	return assignments, nil
}
