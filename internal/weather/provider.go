package weather

import (
	"context"
)

// Provider abstracts the upstream geocoding and current-weather source.
type Provider interface {
	Name() string
	Geocode(ctx context.Context, query string, limit int) ([]Place, error)
	Current(ctx context.Context, city string) (Conditions, error)
}

// ProbeStore is the contract for keeping recent upstream probe results.
type ProbeStore interface {
	SaveResult(result ProbeResult)
	Latest() (ProbeResult, error)
	History() []ProbeResult
}
