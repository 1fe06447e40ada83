package service

import (
	"context"
	"errors"

	"github.com/meusdesafios/auth/internal/auth/domain"
	"github.com/meusdesafios/auth/internal/auth/identity"
	"github.com/meusdesafios/auth/pkg/slogx"
)

// ErrInvalidIdentity is returned when the provider identity token does not
// verify, or the named provider is not enabled in this deployment.
var ErrInvalidIdentity = errors.New("invalid_identity")

// LoginService runs provider sign-in end to end: verify the provider token,
// find or create the account, mint credentials.
type LoginService struct {
	Providers identity.Registry
	Users     *UserService
	Sessions  *SessionService
	Tokens    *TokenService
}

// LoginMobile signs a mobile client in and returns the account plus a full
// token pair. Issuing the refresh session revokes any prior session on the
// same device.
func (s *LoginService) LoginMobile(ctx context.Context, provider domain.Provider, identityToken, deviceID string) (domain.User, domain.TokenPair, error) {
	user, err := s.login(ctx, provider, identityToken)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	access, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	refresh, err := s.Sessions.IssueSession(ctx, user.ID, deviceID)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	slogx.FromContext(ctx).Info("mobile login",
		"user_id", user.ID,
		"provider", provider,
	)

	return user, domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    s.Tokens.AccessTTL,
	}, nil
}

// LoginWeb signs a web client in. The caller is expected to persist the
// returned user into the sealed cookie session; no refresh session is
// created, the cookie is the whole credential.
func (s *LoginService) LoginWeb(ctx context.Context, provider domain.Provider, identityToken string) (domain.User, error) {
	user, err := s.login(ctx, provider, identityToken)
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("web login",
		"user_id", user.ID,
		"provider", provider,
	)
	return user, nil
}

func (s *LoginService) login(ctx context.Context, provider domain.Provider, identityToken string) (domain.User, error) {
	verifier, ok := s.Providers.Verifier(provider)
	if !ok {
		return domain.User{}, ErrInvalidIdentity
	}

	profile, err := verifier.Verify(ctx, identityToken)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidIdentityToken) {
			return domain.User{}, ErrInvalidIdentity
		}
		return domain.User{}, err
	}

	return s.Users.FindOrCreateUser(ctx, profile)
}
