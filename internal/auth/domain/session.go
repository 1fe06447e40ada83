package domain

import "time"

// RefreshSession is the persisted record of one outstanding refresh credential
// for one (user, device) pair. The raw refresh token is never stored; TokenHash
// is its SHA-256 hex digest.
//
// Lifecycle is monotonic: a session starts ACTIVE (RevokedAt nil) and ends at
// exactly one of rotated, revoked or expired. It never returns to ACTIVE. At
// most one ACTIVE session exists per (UserID, DeviceID) at any instant.
type RefreshSession struct {
	ID         string
	UserID     string
	DeviceID   string
	TokenHash  string
	ExpiresAt  time.Time
	RevokedAt  *time.Time
	LastUsedAt time.Time
	CreatedAt  time.Time
}

// Active reports whether the session can still be redeemed.
func (s RefreshSession) Active() bool { return s.RevokedAt == nil }

// Expired reports whether the session's lifetime has elapsed at the given time.
func (s RefreshSession) Expired(now time.Time) bool { return now.After(s.ExpiresAt) }
