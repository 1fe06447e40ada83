package domain

import "time"

// User is an account created or linked through a provider login. A user is
// keyed by (Provider, ProviderID); the same person signing in with a different
// provider is a different account.
type User struct {
	ID          string   `json:"id"`
	Provider    Provider `json:"provider"`
	ProviderID  string   `json:"-"`
	Email       string   `json:"email"`
	Handle      string   `json:"handle"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	DisplayName string   `json:"displayName"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
