// Package identity verifies provider-issued identity tokens. The actual
// OAuth/OIDC handshake happens on the client; this package only checks the
// resulting token with the provider and extracts a profile.
package identity

import (
	"context"
	"errors"

	"github.com/meusdesafios/auth/internal/auth/domain"
)

// ErrInvalidIdentityToken is returned for any identity token the provider
// does not vouch for.
var ErrInvalidIdentityToken = errors.New("invalid_identity_token")

// Verifier checks a provider identity token and returns the verified profile.
type Verifier interface {
	Verify(ctx context.Context, identityToken string) (domain.ProviderProfile, error)
}

// Registry maps providers to their verifiers. Providers without an entry are
// not accepted for login.
type Registry map[domain.Provider]Verifier

// Verifier returns the verifier for the provider, or false when the provider
// is unsupported in this deployment.
func (r Registry) Verifier(p domain.Provider) (Verifier, bool) {
	v, ok := r[p]
	return v, ok
}
