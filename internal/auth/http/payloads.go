package http

import "github.com/meusdesafios/auth/internal/auth/domain"

// MobileLoginRequest is the body for POST /v1/auth/mobile/{provider}.
type MobileLoginRequest struct {
	// IdentityToken is the provider-issued credential (a Google ID token or
	// Apple identity token) obtained by the native sign-in SDK.
	IdentityToken string `json:"identity_token"`

	// DeviceID is a client-chosen stable identifier for the installation.
	// Refresh sessions are scoped to it.
	DeviceID string `json:"device_id"`
}

// WebLoginRequest is the body for POST /v1/auth/web/{provider}.
type WebLoginRequest struct {
	IdentityToken string `json:"identity_token"`
}

// RefreshRequest is the body for POST /v1/auth/mobile/refresh and
// POST /v1/auth/mobile/logout.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse carries a freshly minted credential pair.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// LoginResponse is the mobile login payload: the account plus its first
// credential pair.
type LoginResponse struct {
	User  domain.User   `json:"user"`
	Token TokenResponse `json:"token"`
}

// HealthChecks reports the status of each critical dependency.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
