package domain

import (
	"errors"
	"strings"
)

// Provider is the closed set of identity providers mobile and web clients can
// sign in with.
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderApple  Provider = "apple"
)

// ErrUnknownProvider reports a provider outside the supported set.
var ErrUnknownProvider = errors.New("domain: unknown identity provider")

// ParseProvider validates a client-supplied provider name.
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(s))) {
	case ProviderGoogle:
		return ProviderGoogle, nil
	case ProviderApple:
		return ProviderApple, nil
	default:
		return "", ErrUnknownProvider
	}
}

// ProviderProfile is the verified identity an external provider attests to.
// Verification of the provider's credential happens outside this core; by the
// time a profile exists here it is trusted.
type ProviderProfile struct {
	Provider Provider
	Subject  string // provider-scoped stable user identifier
	Email    string
	Name     string
}
