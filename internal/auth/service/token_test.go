package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = []byte(strings.Repeat("s", 32))

func TestTokenServiceRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, err := NewTokenService(testSecret, "meusdesafios", 15*time.Minute)
	require.NoError(t, err)

	token, err := svc.Issue("user-123")
	require.NoError(t, err)

	userID, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "user-123", userID)
}

func TestTokenServiceUniformError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, err := NewTokenService(testSecret, "meusdesafios", 15*time.Minute)
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Verify(ctx, "not-a-jwt")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewTokenService([]byte(strings.Repeat("x", 32)), "meusdesafios", 15*time.Minute)
		require.NoError(t, err)

		token, err := other.Issue("user-123")
		require.NoError(t, err)

		_, err = svc.Verify(ctx, token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other, err := NewTokenService(testSecret, "someone-else", 15*time.Minute)
		require.NoError(t, err)

		token, err := other.Issue("user-123")
		require.NoError(t, err)

		_, err = svc.Verify(ctx, token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		short, err := NewTokenService(testSecret, "meusdesafios", -time.Minute)
		require.NoError(t, err)

		token, err := short.Issue("user-123")
		require.NoError(t, err)

		_, err = svc.Verify(ctx, token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewTokenServiceRejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService([]byte("too-short"), "meusdesafios", 15*time.Minute)
	require.Error(t, err)
}
