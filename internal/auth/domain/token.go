package domain

import "time"

// TokenPair is what the mobile token endpoints return: a short-lived signed
// access token and the opaque refresh token that succeeds it.
type TokenPair struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type,omitempty"` // always "Bearer"
	ExpiresIn    time.Duration `json:"expires_in"`           // seconds until access token expiry
}

// RotatedSession is the outcome of a successful refresh rotation: the identity
// the consumed session belonged to plus its single successor's raw token.
// Access token minting is the caller's concern.
type RotatedSession struct {
	UserID       string
	DeviceID     string
	RefreshToken string
}
