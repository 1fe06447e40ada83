package app

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "meusdesafios", cfg.Issuer)
	require.Equal(t, 15*time.Minute, cfg.AccessTTL)
	require.Equal(t, 30*24*time.Hour, cfg.RefreshTTL)
	require.Equal(t, 8080, cfg.Port)
	require.False(t, cfg.Production())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ACCESS_TTL_MINUTES", "5")
	t.Setenv("REFRESH_TTL_DAYS", "7")
	t.Setenv("AUTH_ISSUER", "staging-issuer")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 5*time.Minute, cfg.AccessTTL)
	require.Equal(t, 7*24*time.Hour, cfg.RefreshTTL)
	require.Equal(t, "staging-issuer", cfg.Issuer)
}

func TestLoadConfigProductionRequiresSecrets(t *testing.T) {
	strong := strings.Repeat("s", 32)

	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("ENV", "prod")
		t.Setenv("COOKIE_SEAL_SECRET", strong)

		_, err := LoadConfig()
		require.ErrorContains(t, err, "JWT_SECRET")
	})

	t.Run("short cookie secret", func(t *testing.T) {
		t.Setenv("ENV", "prod")
		t.Setenv("JWT_SECRET", strong)
		t.Setenv("COOKIE_SEAL_SECRET", "short")

		_, err := LoadConfig()
		require.ErrorContains(t, err, "COOKIE_SEAL_SECRET")
	})

	t.Run("both secrets present", func(t *testing.T) {
		t.Setenv("ENV", "prod")
		t.Setenv("JWT_SECRET", strong)
		t.Setenv("COOKIE_SEAL_SECRET", strong)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.True(t, cfg.Production())
	})
}
