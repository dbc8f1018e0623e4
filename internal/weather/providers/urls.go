package providers

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultBaseURL is the OpenWeatherMap API root.
	DefaultBaseURL = "https://api.openweathermap.org"

	// DefaultGeocodingLimit is used when a non-positive limit is requested.
	DefaultGeocodingLimit = 5

	currentWeatherPath = "/data/2.5/weather"
	geocodingPath      = "/geo/1.0/direct"
	iconBaseURL        = "https://openweathermap.org/img/wn"
	defaultIconSize    = "2x"
)

// BuildWeatherURL returns the current-weather URL for city in metric units.
func BuildWeatherURL(baseURL, city, apiKey string) string {
	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", apiKey)
	values.Set("units", "metric")
	return joinURL(baseURL, currentWeatherPath, values)
}

// BuildGeocodingURL returns the direct-geocoding URL for query.
func BuildGeocodingURL(baseURL, query, apiKey string, limit int) string {
	if limit <= 0 {
		limit = DefaultGeocodingLimit
	}
	values := url.Values{}
	values.Set("q", query)
	values.Set("appid", apiKey)
	values.Set("limit", strconv.Itoa(limit))
	return joinURL(baseURL, geocodingPath, values)
}

// BuildIconURL returns the image URL for a provider icon code, e.g. "01d".
func BuildIconURL(icon, size string) string {
	if size == "" {
		size = defaultIconSize
	}
	return iconBaseURL + "/" + url.PathEscape(icon) + "@" + url.PathEscape(size) + ".png"
}

func joinURL(baseURL, path string, values url.Values) string {
	return strings.TrimRight(baseURL, "/") + path + "?" + values.Encode()
}
