package auth_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/meusdesafios/auth/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestRefreshRotatesTokenPair(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	session, err := e.SDK.LoginMobile(ctx, "google", e.Google.mint("sub-1", "maria@example.com", "Maria Silva"), "device-a")
	require.NoError(t, err)

	original := session.RefreshToken()

	pair, err := e.SDK.Refresh(ctx, original)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEqual(t, original, pair.RefreshToken)

	// The successor keeps rotating.
	next, err := e.SDK.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, pair.RefreshToken, next.RefreshToken)
}

func TestRefreshReplayKillsDeviceSessions(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	session, err := e.SDK.LoginMobile(ctx, "google", e.Google.mint("sub-1", "maria@example.com", "Maria Silva"), "device-a")
	require.NoError(t, err)

	original := session.RefreshToken()
	pair, err := e.SDK.Refresh(ctx, original)
	require.NoError(t, err)

	// Presenting the consumed token again is a replay.
	_, err = e.SDK.Refresh(ctx, original)
	requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidGrant)

	// The cascade revoked the legitimate successor too.
	_, err = e.SDK.Refresh(ctx, pair.RefreshToken)
	requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidGrant)
}

func TestRefreshDoesNotCrossDevices(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	idToken := func() string { return e.Google.mint("sub-1", "maria@example.com", "Maria Silva") }

	deviceA, err := e.SDK.LoginMobile(ctx, "google", idToken(), "device-a")
	require.NoError(t, err)
	deviceB, err := e.SDK.LoginMobile(ctx, "google", idToken(), "device-b")
	require.NoError(t, err)

	// Replay on device-a.
	stolen := deviceA.RefreshToken()
	_, err = e.SDK.Refresh(ctx, stolen)
	require.NoError(t, err)
	_, err = e.SDK.Refresh(ctx, stolen)
	requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidGrant)

	// device-b is unaffected.
	_, err = e.SDK.Refresh(ctx, deviceB.RefreshToken())
	require.NoError(t, err)
}

func TestRefreshUnknownTokenRejected(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.SDK.Refresh(ctx, "bm90LWEtcmVhbC10b2tlbi1hdC1hbGwtanVzdC1iYXNlNjQ")
	requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidGrant)
}

func TestLogoutRevokesSession(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	session, err := e.SDK.LoginMobile(ctx, "google", e.Google.mint("sub-1", "maria@example.com", "Maria Silva"), "device-a")
	require.NoError(t, err)

	refresh := session.RefreshToken()
	require.NoError(t, session.Logout(ctx))

	// Logout is idempotent and the token no longer rotates.
	require.NoError(t, e.SDK.Logout(ctx, refresh))
	_, err = e.SDK.Refresh(ctx, refresh)
	requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidGrant)
}
