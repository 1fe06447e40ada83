// Package cookiex implements the sealed, client-held session used by the web
// client. The whole session rides in the cookie value, encrypted and
// authenticated server-side; the server keeps no session state.
package cookiex

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/meusdesafios/auth/pkg/cryptox"
)

// DefaultCookieName is the cookie the session is stored under.
const DefaultCookieName = "md_session"

// DefaultMaxAge is the fixed session cookie lifetime.
const DefaultMaxAge = 7 * 24 * time.Hour

// sealInfo domain-separates the HKDF-derived cookie key from any other key
// derived from the same secret.
const sealInfo = "meusdesafios/cookie-session/v1"

// Session is the client-held session payload. It is authoritative only when
// IsLoggedIn is true and UserID is non-empty; everything else is display data
// kept alongside so the web client can render without a profile fetch.
type Session struct {
	UserID      string `json:"userId"`
	Handle      string `json:"handle"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	IsLoggedIn  bool   `json:"isLoggedIn"`
	Provider    string `json:"provider,omitempty"`
}

// Authenticated reports whether this session may be used as an identity.
func (s Session) Authenticated() bool {
	return s.IsLoggedIn && s.UserID != ""
}

type Config struct {
	// Secret seals the cookie. Production startup enforces a minimum length
	// before this package ever sees it.
	Secret string

	// Secure marks the cookie Secure; enabled outside development.
	Secure bool

	// Name overrides DefaultCookieName, mainly for tests.
	Name string
}

// Manager seals and unseals the session cookie.
type Manager struct {
	sealer *cryptox.Sealer
	name   string
	secure bool
}

func New(cfg Config) (*Manager, error) {
	sealer, err := cryptox.NewSealer(cfg.Secret, sealInfo)
	if err != nil {
		return nil, err
	}

	name := cfg.Name
	if name == "" {
		name = DefaultCookieName
	}

	return &Manager{sealer: sealer, name: name, secure: cfg.Secure}, nil
}

// Load unseals the session from the request. A missing, malformed or tampered
// cookie yields the zero session (logged out); it never returns an error
// because "no session" is an ordinary state, not a failure.
func (m *Manager) Load(r *http.Request) Session {
	c, err := r.Cookie(m.name)
	if err != nil || c.Value == "" {
		return Session{}
	}

	sealed, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return Session{}
	}

	plaintext, err := m.sealer.Unseal(sealed)
	if err != nil {
		return Session{}
	}

	var s Session
	if err := json.Unmarshal(plaintext, &s); err != nil {
		return Session{}
	}
	return s
}

// Save reseals the session and sets the cookie with the fixed 7-day max-age.
func (m *Manager) Save(w http.ResponseWriter, s Session) error {
	plaintext, err := json.Marshal(s)
	if err != nil {
		return err
	}

	sealed, err := m.sealer.Seal(plaintext)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    base64.RawURLEncoding.EncodeToString(sealed),
		Path:     "/",
		MaxAge:   int(DefaultMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Destroy overwrites the cookie with an immediately-expired empty value.
func (m *Manager) Destroy(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
