package sqlite

import (
	"context"
	"time"

	"github.com/meusdesafios/auth/internal/auth/domain"
)

type refreshSessionsRepo struct {
	q dbtx
}

func (r *refreshSessionsRepo) CreateRefreshSession(ctx context.Context, s domain.RefreshSession) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO refresh_sessions (id, user_id, device_id, token_hash, expires_at, revoked_at, last_used_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID,
		s.UserID,
		s.DeviceID,
		s.TokenHash,
		s.ExpiresAt,
		mapOptionalTime(s.RevokedAt),
		s.LastUsedAt,
		s.CreatedAt,
	)
	return err
}

func (r *refreshSessionsRepo) GetRefreshSessionByHash(
	ctx context.Context,
	hash string,
) (domain.RefreshSession, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, user_id, device_id, token_hash, expires_at, revoked_at, last_used_at, created_at
		FROM refresh_sessions
		WHERE token_hash = ?
		ORDER BY created_at DESC
		LIMIT 1`,
		hash,
	)

	s, err := scanRefreshSession(row)
	if err != nil {
		return domain.RefreshSession{}, mapNotFound(err)
	}
	return s, nil
}

// RevokeRefreshSession is the atomic claim at the heart of rotation: the
// conditional WHERE clause and the affected-row count together guarantee that
// of any number of concurrent callers presenting the same token, exactly one
// observes claimed=true.
func (r *refreshSessionsRepo) RevokeRefreshSession(
	ctx context.Context,
	hash string,
	now time.Time,
) (bool, error) {
	res, err := r.q.ExecContext(ctx, `
		UPDATE refresh_sessions
		SET revoked_at = ?, last_used_at = ?
		WHERE token_hash = ? AND revoked_at IS NULL`,
		now, now, hash,
	)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *refreshSessionsRepo) RevokeActiveRefreshSessions(
	ctx context.Context,
	userID, deviceID string,
	now time.Time,
) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE refresh_sessions
		SET revoked_at = ?
		WHERE user_id = ? AND device_id = ? AND revoked_at IS NULL`,
		now, userID, deviceID,
	)
	return err
}

func (r *refreshSessionsRepo) CountActiveRefreshSessions(
	ctx context.Context,
	userID, deviceID string,
) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM refresh_sessions
		WHERE user_id = ? AND device_id = ? AND revoked_at IS NULL`,
		userID, deviceID,
	).Scan(&n)
	return n, err
}

func (r *refreshSessionsRepo) DeleteExpiredRefreshSessions(ctx context.Context) error {
	_, err := r.q.ExecContext(ctx, `
		DELETE FROM refresh_sessions
		WHERE expires_at < ?`,
		time.Now().UTC(),
	)
	return err
}
