package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meusdesafios/auth/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func newTokenInfoServer(t *testing.T, handler http.HandlerFunc) *GoogleVerifier {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	v := NewGoogleVerifier("client-id-1")
	v.Endpoint = srv.URL
	return v
}

func TestGoogleVerifier(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		v := newTokenInfoServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "the-id-token", r.URL.Query().Get("id_token"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"aud": "client-id-1",
				"sub": "sub-123",
				"email": "maria@example.com",
				"email_verified": "true",
				"name": "Maria Silva"
			}`))
		})

		profile, err := v.Verify(ctx, "the-id-token")
		require.NoError(t, err)
		require.Equal(t, domain.ProviderGoogle, profile.Provider)
		require.Equal(t, "sub-123", profile.Subject)
		require.Equal(t, "maria@example.com", profile.Email)
		require.Equal(t, "Maria Silva", profile.Name)
	})

	t.Run("provider rejects token", func(t *testing.T) {
		v := newTokenInfoServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"invalid_token"}`, http.StatusBadRequest)
		})

		_, err := v.Verify(ctx, "bad-token")
		require.ErrorIs(t, err, ErrInvalidIdentityToken)
	})

	t.Run("audience mismatch", func(t *testing.T) {
		v := newTokenInfoServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"aud": "someone-elses-client", "sub": "sub-123"}`))
		})

		_, err := v.Verify(ctx, "stolen-token")
		require.ErrorIs(t, err, ErrInvalidIdentityToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		v := newTokenInfoServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"aud": "client-id-1"}`))
		})

		_, err := v.Verify(ctx, "odd-token")
		require.ErrorIs(t, err, ErrInvalidIdentityToken)
	})
}
