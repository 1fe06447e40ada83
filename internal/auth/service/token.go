package service

import (
	"context"
	"errors"
	"time"

	"github.com/meusdesafios/auth/pkg/jwtx"
	"github.com/meusdesafios/auth/pkg/slogx"
)

// ErrInvalidToken is the single error any access-token verification failure
// collapses into. Callers cannot distinguish a bad signature from an expired
// token from a wrong issuer; handing out the reason would give an attacker an
// oracle on why a forged token was rejected.
var ErrInvalidToken = errors.New("invalid_token")

// TokenService is the stateless access-token codec: it signs and verifies
// short-lived bearer tokens and nothing else. Refresh state lives in
// SessionService.
type TokenService struct {
	signer   *jwtx.HS256Signer
	verifier *jwtx.HS256Verifier

	Issuer    string
	AccessTTL time.Duration
}

func NewTokenService(secret []byte, issuer string, accessTTL time.Duration) (*TokenService, error) {
	if len(secret) < jwtx.MinSecretLen {
		return nil, jwtx.ErrWeakSecret
	}
	signer, err := jwtx.NewSignerHS256(secret)
	if err != nil {
		return nil, err
	}
	verifier, err := jwtx.NewVerifierHS256(secret, issuer)
	if err != nil {
		return nil, err
	}

	return &TokenService{
		signer:    signer,
		verifier:  verifier,
		Issuer:    issuer,
		AccessTTL: accessTTL,
	}, nil
}

// Issue mints a signed access token for the user. Pure function of the
// configured secret and TTL; nothing is persisted and the token can never be
// individually revoked, it simply expires.
func (s *TokenService) Issue(userID string) (string, error) {
	claims := jwtx.NewAccessClaims(userID, s.Issuer, s.AccessTTL, time.Now().UTC())
	return s.signer.Sign(claims)
}

// Verify checks the token and returns the subject user ID. The detailed
// rejection reason is logged for operators and then discarded.
func (s *TokenService) Verify(ctx context.Context, token string) (string, error) {
	claims, err := s.verifier.Verify(token)
	if err != nil {
		slogx.FromContext(ctx).Debug("access token rejected", "err", err)
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
