package store

import (
	"context"
	"errors"
	"time"

	"github.com/meusdesafios/auth/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	RefreshSessions() RefreshSessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to run the multi-step session operations that must be
	// atomic (refresh rotation, revoke-then-insert on issue).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByProvider looks up the account linked to a provider identity.
	GetUserByProvider(ctx context.Context, provider domain.Provider, providerID string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUserProfile mutates display fields and bumps updated_at.
	UpdateUserProfile(ctx context.Context, userID, firstName, lastName, displayName string) error
}

type RefreshSessions interface {
	// CreateRefreshSession stores a new ACTIVE session record.
	CreateRefreshSession(ctx context.Context, s domain.RefreshSession) error

	// GetRefreshSessionByHash returns the session by token fingerprint,
	// including sessions that are already revoked. Replay detection depends
	// on seeing consumed rows.
	GetRefreshSessionByHash(ctx context.Context, hash string) (domain.RefreshSession, error)

	// RevokeRefreshSession atomically claims the session: it sets revoked_at
	// and last_used_at only if the row is still unrevoked, and reports
	// whether this call won the claim. Concurrent callers racing on the same
	// token see exactly one true.
	RevokeRefreshSession(ctx context.Context, hash string, now time.Time) (bool, error)

	// RevokeActiveRefreshSessions bulk-revokes every ACTIVE session for a
	// (user, device) pair. This is the replay-containment primitive.
	RevokeActiveRefreshSessions(ctx context.Context, userID, deviceID string, now time.Time) error

	// CountActiveRefreshSessions returns the number of unrevoked sessions
	// for a (user, device) pair.
	CountActiveRefreshSessions(ctx context.Context, userID, deviceID string) (int, error)

	// DeleteExpiredRefreshSessions is housekeeping; it removes rows whose
	// expiry has long passed regardless of state.
	DeleteExpiredRefreshSessions(ctx context.Context) error
}
