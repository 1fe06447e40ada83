package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTL constants. These provide sensible security defaults but
// are overridden from configuration per-deployment.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh sessions.
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

// TokenTypeAccess is the value of the "type" claim for access tokens. The
// claim exists so a refresh credential accidentally shaped like a JWT can
// never pass access-token verification.
const TokenTypeAccess = "access"

// Claims are the access-token claims. We keep the set small: the subject is
// the user ID and "type" pins the token's purpose.
type Claims struct {
	jwt.RegisteredClaims

	// TokenType discriminates access tokens from anything else signed with
	// the same secret.
	TokenType string `json:"type,omitempty"`
}

// NewAccessClaims builds minimally-correct access token claims.
func NewAccessClaims(subject, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType: TokenTypeAccess,
	}
}

// ValidateIssuer checks if the issuer matches the expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateTokenType ensures the "type" claim marks this as an access token.
func (c *Claims) ValidateTokenType() error {
	if c.TokenType != TokenTypeAccess {
		return ErrTokenType
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired.
func (c *Claims) ValidateExpiry() error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}
	if time.Now().UTC().After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	return nil
}
