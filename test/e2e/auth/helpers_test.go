package auth_test

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/meusdesafios/auth/internal/auth/domain"
	httpapi "github.com/meusdesafios/auth/internal/auth/http"
	"github.com/meusdesafios/auth/internal/auth/identity"
	"github.com/meusdesafios/auth/internal/auth/service"
	"github.com/meusdesafios/auth/internal/auth/store/drivers/sqlite"
	"github.com/meusdesafios/auth/pkg/authsdk"
	"github.com/meusdesafios/auth/pkg/cookiex"
	"github.com/stretchr/testify/require"
)

/*
 * End-to-end tests for the auth service. The full HTTP stack runs in-process
 * against an in-memory database, with a stand-in Google tokeninfo endpoint so
 * identity verification exercises its real HTTP path.
 */

const (
	testGoogleClientID = "e2e-client-id"
	testJWTSecret      = "e2e-jwt-secret-0123456789abcdef0000"
	testCookieSecret   = "e2e-cookie-secret-0123456789abcdef00"
)

// tokenInfoStub mimics Google's tokeninfo endpoint: identity tokens minted
// through mint() validate, everything else is rejected.
type tokenInfoStub struct {
	mu     sync.Mutex
	tokens map[string]map[string]string
	next   int
}

func newTokenInfoStub() *tokenInfoStub {
	return &tokenInfoStub{tokens: make(map[string]map[string]string)}
}

func (s *tokenInfoStub) mint(sub, email, name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	token := fmt.Sprintf("id-token-%d", s.next)
	s.tokens[token] = map[string]string{
		"aud":   testGoogleClientID,
		"sub":   sub,
		"email": email,
		"name":  name,
	}
	return token
}

func (s *tokenInfoStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	info, ok := s.tokens[r.URL.Query().Get("id_token")]
	s.mu.Unlock()

	if !ok {
		http.Error(w, `{"error":"invalid_token"}`, http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(info)
}

// env is one running service instance plus its supporting stubs.
type env struct {
	BaseURL string
	SDK     *authsdk.SDKClient
	Google  *tokenInfoStub
}

func newEnv(t *testing.T) *env {
	t.Helper()

	google := newTokenInfoStub()
	tokeninfo := httptest.NewServer(google)
	t.Cleanup(tokeninfo.Close)

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	tokens, err := service.NewTokenService([]byte(testJWTSecret), "meusdesafios", 15*time.Minute)
	require.NoError(t, err)

	cookies, err := cookiex.New(cookiex.Config{Secret: testCookieSecret})
	require.NoError(t, err)

	verifier := identity.NewGoogleVerifier(testGoogleClientID)
	verifier.Endpoint = tokeninfo.URL

	users := &service.UserService{Store: st}
	sessions := &service.SessionService{Store: st, RefreshTTL: 30 * 24 * time.Hour}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := httpapi.NewRouter("e2e", st, logger)
	router.LoginService = &service.LoginService{
		Providers: identity.Registry{domain.ProviderGoogle: verifier},
		Users:     users,
		Sessions:  sessions,
		Tokens:    tokens,
	}
	router.SessionService = sessions
	router.TokenService = tokens
	router.UserService = users
	router.ResolverService = &service.ResolverService{Tokens: tokens, Cookies: cookies}
	router.Cookies = cookies
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &env{
		BaseURL: srv.URL,
		SDK:     authsdk.NewSDKClient(srv.URL),
		Google:  google,
	}
}

// requireAPIError asserts err is an APIError with the given status and code.
func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()

	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}

// postJSON is a raw helper for endpoints the SDK does not cover.
func postJSON(t *testing.T, client *http.Client, url, body string) *http.Response {
	t.Helper()

	resp, err := client.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}
