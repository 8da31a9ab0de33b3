package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:5001/")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "http://localhost:5001", cfg.APIBaseURL)
	assert.Equal(t, "/api/health", cfg.APIHealthPath)
	assert.Equal(t, 500*time.Millisecond, cfg.ToastDelay)
	assert.Equal(t, 10*time.Second, cfg.BannerTTL)
	assert.False(t, cfg.AuthProbeEnabled)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins())
	assert.Empty(t, cfg.TrustedProxies())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AUTH_PROBE_ENABLED", "true")
	t.Setenv("BANNER_TTL", "3s")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.True(t, cfg.AuthProbeEnabled)
	assert.Equal(t, 3*time.Second, cfg.BannerTTL)
}

func TestAllowedOrigins(t *testing.T) {
	cfg := Config{CORSAllowOrigins: "http://a.test, ,http://b.test"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())
}

func TestTrustedProxies(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.1")

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, cfg.TrustedProxies())
}
