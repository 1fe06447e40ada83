package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/meusdesafios/auth/internal/auth/domain"
	"github.com/meusdesafios/auth/internal/auth/store"
	"github.com/meusdesafios/auth/pkg/cryptox"
	"github.com/meusdesafios/auth/pkg/idx"
	"github.com/meusdesafios/auth/pkg/slogx"
)

// ErrInvalidRefresh covers every way a refresh token can fail: unknown,
// expired, already consumed, replayed. Like access tokens, the caller never
// learns which.
var ErrInvalidRefresh = errors.New("invalid_refresh_token")

// errClaimLost is internal: the conditional revoke found the row already
// consumed, meaning another rotation raced us to it.
var errClaimLost = errors.New("service: session claim lost")

// SessionService owns the refresh-session lifecycle: issuance, the rotation
// state machine, and revocation. Sessions move ACTIVE -> {rotated, expired,
// revoked} and never back.
type SessionService struct {
	Store      store.Store
	RefreshTTL time.Duration
}

// IssueSession creates a new ACTIVE refresh session for (userID, deviceID)
// and returns the raw opaque token. Any prior ACTIVE session for the same
// device is revoked in the same transaction, so the one-active-per-device
// invariant holds even against a concurrent issue or rotation.
//
// The returned string is the only copy of the raw token that will ever exist
// server-side; the store keeps just its fingerprint.
func (s *SessionService) IssueSession(ctx context.Context, userID, deviceID string) (string, error) {
	var raw string
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		raw, err = s.issueSessionTx(ctx, tx, userID, deviceID, time.Now().UTC())
		return err
	})
	if err != nil {
		return "", err
	}
	return raw, nil
}

// issueSessionTx is the transactional body of IssueSession, shared with
// Rotate so a successor is created under the same transaction that consumed
// its predecessor.
func (s *SessionService) issueSessionTx(
	ctx context.Context,
	tx store.Tx,
	userID, deviceID string,
	now time.Time,
) (string, error) {
	raw, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", err
	}

	if err := tx.RefreshSessions().RevokeActiveRefreshSessions(ctx, userID, deviceID, now); err != nil {
		return "", err
	}

	session := domain.RefreshSession{
		ID:         idx.New().String(),
		UserID:     userID,
		DeviceID:   deviceID,
		TokenHash:  cryptox.FingerprintToken(raw),
		ExpiresAt:  now.Add(s.RefreshTTL),
		LastUsedAt: now,
		CreatedAt:  now,
	}
	if err := tx.RefreshSessions().CreateRefreshSession(ctx, session); err != nil {
		return "", err
	}

	return raw, nil
}

// Rotate redeems a refresh token for its single successor. The branch order
// defines the security/availability trade-off and must not be reordered:
//
//  1. unknown token: reject, touch nothing
//  2. known but already consumed: replay; revoke every ACTIVE session for
//     that device, then reject
//  3. known, ACTIVE, but past expiry: revoke just this session, reject
//  4. known, ACTIVE, in date: consume it and issue the successor
//
// The consume step in case 4 is a conditional update that only succeeds while
// the row is still unrevoked; of two concurrent calls with the same token,
// the loser falls into the replay branch. A replayed token is treated as
// evidence of theft, and revoking the whole device's sessions deliberately
// trades a false-positive logout for hard containment.
func (s *SessionService) Rotate(ctx context.Context, oldRaw string) (*domain.RotatedSession, error) {
	now := time.Now().UTC()
	hash := cryptox.FingerprintToken(oldRaw)
	l := slogx.FromContext(ctx)

	session, err := s.Store.RefreshSessions().GetRefreshSessionByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}

	if !session.Active() {
		return nil, s.containReplay(ctx, l, session, now)
	}

	if session.Expired(now) {
		// Stale, not hostile: close out this session only, siblings on
		// other tokens are untouched.
		if _, err := s.Store.RefreshSessions().RevokeRefreshSession(ctx, hash, now); err != nil {
			return nil, err
		}
		return nil, ErrInvalidRefresh
	}

	var newRaw string
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		claimed, err := tx.RefreshSessions().RevokeRefreshSession(ctx, hash, now)
		if err != nil {
			return err
		}
		if !claimed {
			return errClaimLost
		}

		newRaw, err = s.issueSessionTx(ctx, tx, session.UserID, session.DeviceID, now)
		return err
	})
	if errors.Is(err, errClaimLost) {
		return nil, s.containReplay(ctx, l, session, now)
	}
	if err != nil {
		return nil, err
	}

	return &domain.RotatedSession{
		UserID:       session.UserID,
		DeviceID:     session.DeviceID,
		RefreshToken: newRaw,
	}, nil
}

// containReplay handles a second presentation of an already-consumed token.
// The token has provably left the legitimate rotation chain, so any ACTIVE
// successor on the same device is assumed compromised and revoked with it.
func (s *SessionService) containReplay(
	ctx context.Context,
	l *slog.Logger,
	session domain.RefreshSession,
	now time.Time,
) error {
	l.Warn("refresh token replay detected, revoking device sessions",
		"user_id", session.UserID,
		"device_id", session.DeviceID,
	)
	if err := s.Store.RefreshSessions().RevokeActiveRefreshSessions(ctx, session.UserID, session.DeviceID, now); err != nil {
		return err
	}
	return ErrInvalidRefresh
}

// RevokeDevice bulk-revokes every ACTIVE session for a (user, device) pair,
// logging the device out everywhere its refresh credential could be used.
func (s *SessionService) RevokeDevice(ctx context.Context, userID, deviceID string) error {
	return s.Store.RefreshSessions().RevokeActiveRefreshSessions(ctx, userID, deviceID, time.Now().UTC())
}

// Revoke consumes the session for the presented token (logout). Revocation is
// idempotent: an unknown or already-revoked token is not an error, there is
// simply nothing left to revoke.
func (s *SessionService) Revoke(ctx context.Context, raw string) error {
	hash := cryptox.FingerprintToken(raw)
	_, err := s.Store.RefreshSessions().RevokeRefreshSession(ctx, hash, time.Now().UTC())
	return err
}
