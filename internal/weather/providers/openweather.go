package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-proxy/internal/weather"
)

const (
	endpointGeocoding = "geocoding"
	endpointCurrent   = "current_weather"
)

// OpenWeatherOptions tunes the provider. Zero values fall back to defaults.
type OpenWeatherOptions struct {
	BaseURL string
	Backoff BackoffConfig
	Breaker BreakerConfig
}

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string, opts OpenWeatherOptions) *OpenWeatherProvider {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	breaker := opts.Breaker
	if breaker.MaxRequests == 0 {
		breaker.MaxRequests = 5
	}
	if breaker.Interval == 0 {
		breaker.Interval = 1 * time.Minute
	}
	if breaker.Timeout == 0 {
		breaker.Timeout = 2 * time.Minute
	}

	backoff := opts.Backoff
	if backoff.InitialInterval == 0 {
		backoff.InitialInterval = 500 * time.Millisecond
	}
	if backoff.MaxInterval == 0 {
		backoff.MaxInterval = 5 * time.Second
	}

	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: backoff,
		},
		circuit: newCircuitBreaker("openweather", breaker),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

type geocodingEntry struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state"`
}

// Geocode resolves a free-text place name into at most limit hits.
func (p *OpenWeatherProvider) Geocode(ctx context.Context, query string, limit int) ([]weather.Place, error) {
	if p.apiKey == "" {
		return nil, weather.ErrAPIKeyMissing
	}

	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, BuildGeocodingURL(p.baseURL, query, p.apiKey, limit), nil)
	}

	resp, err := doRequestWithResilience(ctx, endpointGeocoding, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload []geocodingEntry
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", weather.ErrMalformedPayload, err)
	}

	places := make([]weather.Place, 0, len(payload))
	for _, e := range payload {
		places = append(places, weather.Place{
			Name:    e.Name,
			State:   e.State,
			Country: e.Country,
			Coords:  weather.Coords{Lat: e.Lat, Lon: e.Lon},
		})
	}
	return places, nil
}

type currentPayload struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
		Pressure int     `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
}

// Current fetches current conditions for city in metric units.
// An upstream 404 is reported as *weather.NotFoundError.
func (p *OpenWeatherProvider) Current(ctx context.Context, city string) (weather.Conditions, error) {
	if p.apiKey == "" {
		return weather.Conditions{}, weather.ErrAPIKeyMissing
	}

	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, BuildWeatherURL(p.baseURL, city, p.apiKey), nil)
	}

	resp, err := doRequestWithResilience(ctx, endpointCurrent, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		var upErr *weather.UpstreamError
		if errors.As(err, &upErr) && upErr.StatusCode == http.StatusNotFound {
			return weather.Conditions{}, &weather.NotFoundError{City: city}
		}
		return weather.Conditions{}, err
	}
	defer resp.Body.Close()

	var payload currentPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Conditions{}, fmt.Errorf("%w: %v", weather.ErrMalformedPayload, err)
	}
	if len(payload.Weather) == 0 {
		return weather.Conditions{}, fmt.Errorf("%w: empty weather list", weather.ErrMalformedPayload)
	}

	w := payload.Weather[0]
	return weather.Conditions{
		City:        payload.Name,
		Country:     payload.Sys.Country,
		Temperature: payload.Main.Temp,
		Condition:   w.Main,
		Description: w.Description,
		Icon:        w.Icon,
		IconURL:     BuildIconURL(w.Icon, ""),
		Humidity:    payload.Main.Humidity,
		WindSpeed:   payload.Wind.Speed,
		Pressure:    payload.Main.Pressure,
		Coords:      weather.Coords{Lat: payload.Coord.Lat, Lon: payload.Coord.Lon},
	}, nil
}
