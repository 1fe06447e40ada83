package authsdk

import (
	"fmt"
	"net/http"
)

// Error codes returned by the service.
const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeInvalidGrant   = "invalid_grant"
	ErrorCodeInvalidToken   = "invalid_token"
	ErrorCodeServerError    = "server_error"
)

// APIError is a typed error response from the service.
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Code is the machine-readable error code.
	Code string

	// Description is a human-readable description of the error.
	Description string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Unauthenticated reports whether the service rejected the credential, as
// opposed to an infrastructure failure. Clients should treat this as "logged
// out" rather than retrying.
func (e *APIError) Unauthenticated() bool {
	return e.StatusCode == http.StatusUnauthorized
}
