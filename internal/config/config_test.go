package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.OpenWeatherAPIKey)
	assert.Equal(t, "https://api.openweathermap.org", cfg.OpenWeatherBaseURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Zero(t, cfg.UpstreamMaxRetries)
	assert.Equal(t, uint32(5), cfg.BreakerMaxRequests)
	assert.Equal(t, 15*time.Minute, cfg.ProbeInterval)
	assert.Equal(t, "London", cfg.ProbeQuery)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "abc123")
	t.Setenv("OPENWEATHER_BASE_URL", "http://localhost:9000")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("UPSTREAM_MAX_RETRIES", "2")
	t.Setenv("PROBE_INTERVAL", "0s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "abc123", cfg.OpenWeatherAPIKey)
	assert.Equal(t, "http://localhost:9000", cfg.OpenWeatherBaseURL)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2, cfg.UpstreamMaxRetries)
	assert.Zero(t, cfg.ProbeInterval)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "9090", cfg.Port)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"bad duration":  {"HTTP_TIMEOUT", "soon"},
		"zero timeout":  {"HTTP_TIMEOUT", "0s"},
		"bad log level": {"LOG_LEVEL", "verbose"},
		"bad base url":  {"OPENWEATHER_BASE_URL", "not a url"},
		"many retries":  {"UPSTREAM_MAX_RETRIES", "9"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
