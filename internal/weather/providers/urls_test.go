package providers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWeatherURL(t *testing.T) {
	got := BuildWeatherURL(DefaultBaseURL, "São Paulo", "k&y")
	assert.Equal(t,
		"https://api.openweathermap.org/data/2.5/weather?appid=k%26y&q=S%C3%A3o+Paulo&units=metric",
		got)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "São Paulo", u.Query().Get("q"))
	assert.Equal(t, "k&y", u.Query().Get("appid"))
}

func TestBuildGeocodingURL(t *testing.T) {
	got := BuildGeocodingURL("http://127.0.0.1:9999/", "Berlin", "key", 3)
	assert.Equal(t, "http://127.0.0.1:9999/geo/1.0/direct?appid=key&limit=3&q=Berlin", got)
}

func TestBuildGeocodingURLDefaultLimit(t *testing.T) {
	u, err := url.Parse(BuildGeocodingURL(DefaultBaseURL, "Be", "key", 0))
	require.NoError(t, err)
	assert.Equal(t, "5", u.Query().Get("limit"))
}

func TestBuildIconURL(t *testing.T) {
	assert.Equal(t, "https://openweathermap.org/img/wn/10n@2x.png", BuildIconURL("10n", ""))
	assert.Equal(t, "https://openweathermap.org/img/wn/01d@4x.png", BuildIconURL("01d", "4x"))
}
