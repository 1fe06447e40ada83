package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/meusdesafios/auth/internal/auth/domain"
	"github.com/meusdesafios/auth/internal/auth/store"
	"github.com/meusdesafios/auth/internal/auth/store/drivers/sqlite"
	"github.com/meusdesafios/auth/pkg/cryptox"
	"github.com/meusdesafios/auth/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedUser(t *testing.T, s store.Store) domain.User {
	t.Helper()

	now := time.Now().UTC()
	u := domain.User{
		ID:          idx.New().String(),
		Provider:    domain.ProviderGoogle,
		ProviderID:  idx.New().String(),
		Email:       "alice@example.com",
		Handle:      "alice",
		DisplayName: "Alice",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestIssueSessionReplacesPriorDeviceSession(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	u := seedUser(t, st)
	svc := &SessionService{Store: st, RefreshTTL: time.Hour}

	first, err := svc.IssueSession(ctx, u.ID, "device-a")
	require.NoError(t, err)

	second, err := svc.IssueSession(ctx, u.ID, "device-a")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	n, err := st.RefreshSessions().CountActiveRefreshSessions(ctx, u.ID, "device-a")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// The displaced token is treated as consumed; presenting it is a replay
	// and kills the survivor too.
	_, err = svc.Rotate(ctx, first)
	require.ErrorIs(t, err, ErrInvalidRefresh)

	n, err = st.RefreshSessions().CountActiveRefreshSessions(ctx, u.ID, "device-a")
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestRotateIssuesSuccessorAndConsumesPredecessor(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	u := seedUser(t, st)
	svc := &SessionService{Store: st, RefreshTTL: time.Hour}

	raw, err := svc.IssueSession(ctx, u.ID, "device-a")
	require.NoError(t, err)

	rotated, err := svc.Rotate(ctx, raw)
	require.NoError(t, err)
	require.Equal(t, u.ID, rotated.UserID)
	require.Equal(t, "device-a", rotated.DeviceID)
	require.NotEqual(t, raw, rotated.RefreshToken)

	// Exactly one active session survives rotation.
	n, err := st.RefreshSessions().CountActiveRefreshSessions(ctx, u.ID, "device-a")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// The successor rotates in turn.
	again, err := svc.Rotate(ctx, rotated.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, rotated.RefreshToken, again.RefreshToken)
}

func TestRotateReplayRevokesDeviceSessions(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	u := seedUser(t, st)
	svc := &SessionService{Store: st, RefreshTTL: time.Hour}

	raw, err := svc.IssueSession(ctx, u.ID, "device-a")
	require.NoError(t, err)

	rotated, err := svc.Rotate(ctx, raw)
	require.NoError(t, err)

	// Replaying the consumed token rejects and tears down the successor.
	_, err = svc.Rotate(ctx, raw)
	require.ErrorIs(t, err, ErrInvalidRefresh)

	n, err := st.RefreshSessions().CountActiveRefreshSessions(ctx, u.ID, "device-a")
	require.NoError(t, err)
	require.Equal(t, 0, n)

	// The successor token is now dead as well.
	_, err = svc.Rotate(ctx, rotated.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestRotateUnknownTokenIsNoOp(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	u := seedUser(t, st)
	svc := &SessionService{Store: st, RefreshTTL: time.Hour}

	raw, err := svc.IssueSession(ctx, u.ID, "device-a")
	require.NoError(t, err)

	unknown, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)

	_, err = svc.Rotate(ctx, unknown)
	require.ErrorIs(t, err, ErrInvalidRefresh)

	// The real session is untouched and still rotates.
	_, err = svc.Rotate(ctx, raw)
	require.NoError(t, err)
}

func TestRotateExpiredTokenRevokesOnlyThatSession(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	u := seedUser(t, st)
	svc := &SessionService{Store: st, RefreshTTL: time.Hour}

	// A stale session on device-a, expired but never consumed.
	staleRaw, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)
	now := time.Now().UTC()
	stale := domain.RefreshSession{
		ID:         idx.New().String(),
		UserID:     u.ID,
		DeviceID:   "device-a",
		TokenHash:  cryptox.FingerprintToken(staleRaw),
		ExpiresAt:  now.Add(-time.Minute),
		LastUsedAt: now.Add(-time.Hour),
		CreatedAt:  now.Add(-time.Hour),
	}
	require.NoError(t, st.RefreshSessions().CreateRefreshSession(ctx, stale))

	// A live session on another device for the same user.
	liveRaw, err := svc.IssueSession(ctx, u.ID, "device-b")
	require.NoError(t, err)

	_, err = svc.Rotate(ctx, staleRaw)
	require.ErrorIs(t, err, ErrInvalidRefresh)

	// Expiry is staleness, not theft: no cascade, device-b survives.
	_, err = svc.Rotate(ctx, liveRaw)
	require.NoError(t, err)

	// A second presentation of the expired token is still just rejected.
	_, err = svc.Rotate(ctx, staleRaw)
	require.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestRotateDeviceIsolation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	u := seedUser(t, st)
	svc := &SessionService{Store: st, RefreshTTL: time.Hour}

	rawA, err := svc.IssueSession(ctx, u.ID, "device-a")
	require.NoError(t, err)
	rawB, err := svc.IssueSession(ctx, u.ID, "device-b")
	require.NoError(t, err)

	// Replay on device-a must not disturb device-b.
	_, err = svc.Rotate(ctx, rawA)
	require.NoError(t, err)
	_, err = svc.Rotate(ctx, rawA)
	require.ErrorIs(t, err, ErrInvalidRefresh)

	_, err = svc.Rotate(ctx, rawB)
	require.NoError(t, err)
}

func TestRotateConcurrentSingleWinner(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	u := seedUser(t, st)
	svc := &SessionService{Store: st, RefreshTTL: time.Hour}

	raw, err := svc.IssueSession(ctx, u.ID, "device-a")
	require.NoError(t, err)

	type outcome struct {
		rotated *domain.RotatedSession
		err     error
	}
	results := make([]outcome, 2)

	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := svc.Rotate(ctx, raw)
			results[i] = outcome{rotated: r, err: err}
		}(i)
	}
	wg.Wait()

	var wins, losses int
	for _, r := range results {
		switch {
		case r.err == nil:
			require.NotNil(t, r.rotated)
			wins++
		default:
			require.ErrorIs(t, r.err, ErrInvalidRefresh)
			losses++
		}
	}
	require.Equal(t, 1, wins)
	require.Equal(t, 1, losses)
}

func TestRevokeDevice(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	u := seedUser(t, st)
	svc := &SessionService{Store: st, RefreshTTL: time.Hour}

	rawA, err := svc.IssueSession(ctx, u.ID, "device-a")
	require.NoError(t, err)
	rawB, err := svc.IssueSession(ctx, u.ID, "device-b")
	require.NoError(t, err)

	require.NoError(t, svc.RevokeDevice(ctx, u.ID, "device-a"))

	_, err = svc.Rotate(ctx, rawA)
	require.ErrorIs(t, err, ErrInvalidRefresh)

	_, err = svc.Rotate(ctx, rawB)
	require.NoError(t, err)
}

func TestRevokeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	u := seedUser(t, st)
	svc := &SessionService{Store: st, RefreshTTL: time.Hour}

	raw, err := svc.IssueSession(ctx, u.ID, "device-a")
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, raw))
	require.NoError(t, svc.Revoke(ctx, raw))

	unknown, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)
	require.NoError(t, svc.Revoke(ctx, unknown))

	_, err = svc.Rotate(ctx, raw)
	require.ErrorIs(t, err, ErrInvalidRefresh)
}
