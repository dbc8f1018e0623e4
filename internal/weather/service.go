package weather

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"
)

const (
	// citySearchLimit is the number of geocoding hits requested per search.
	citySearchLimit = 5

	// minQueryLength is the shortest query (in runes) that reaches the upstream.
	minQueryLength = 2
)

// Service turns upstream answers into the descriptors served to the front-end.
type Service struct {
	provider Provider
	probes   ProbeStore
	logger   *slog.Logger
}

// NewService creates a new Service. probes may be nil when probing is disabled.
func NewService(provider Provider, probes ProbeStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		provider: provider,
		probes:   probes,
		logger:   logger.With(slog.String("component", "weather")),
	}
}

// SearchCities geocodes a partial city name. Queries shorter than two
// characters return an empty list without touching the upstream.
func (s *Service) SearchCities(ctx context.Context, query string) ([]CityDescriptor, error) {
	if utf8.RuneCountInString(query) < minQueryLength {
		return []CityDescriptor{}, nil
	}

	places, err := s.provider.Geocode(ctx, query, citySearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search cities %q: %w", query, err)
	}

	cities := DedupePlaces(places)
	s.logger.DebugContext(ctx, "cities resolved",
		slog.String("query", query),
		slog.Int("hits", len(places)),
		slog.Int("unique", len(cities)),
	)
	return cities, nil
}

// CurrentWeather fetches and reshapes the current weather for city.
func (s *Service) CurrentWeather(ctx context.Context, city string) (WeatherDescriptor, error) {
	if city == "" {
		return WeatherDescriptor{}, ErrMissingCity
	}

	cond, err := s.provider.Current(ctx, city)
	if err != nil {
		return WeatherDescriptor{}, fmt.Errorf("current weather %q: %w", city, err)
	}

	return NewWeatherDescriptor(cond), nil
}

// Probe issues a minimal geocoding request and records whether the upstream answered.
func (s *Service) Probe(ctx context.Context, query string) ProbeResult {
	start := time.Now()
	_, err := s.provider.Geocode(ctx, query, 1)

	res := ProbeResult{
		CheckedAt: start.UTC(),
		OK:        err == nil,
		Latency:   time.Since(start),
	}
	if err != nil {
		res.Reason = FailureReason(err)
		s.logger.WarnContext(ctx, "upstream probe failed",
			slog.String("provider", s.provider.Name()),
			slog.Any("error", err),
		)
	}

	if s.probes != nil {
		s.probes.SaveResult(res)
	}
	return res
}

// RecentProbes returns the retained probe results, oldest first.
func (s *Service) RecentProbes() []ProbeResult {
	if s.probes == nil {
		return nil
	}
	return s.probes.History()
}

// LatestProbe returns the most recent probe result, if any was recorded.
func (s *Service) LatestProbe() (ProbeResult, bool) {
	if s.probes == nil {
		return ProbeResult{}, false
	}
	res, err := s.probes.Latest()
	if err != nil {
		return ProbeResult{}, false
	}
	return res, true
}
