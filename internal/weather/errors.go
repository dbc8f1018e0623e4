package weather

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	// ErrMissingCity is returned when a weather lookup has no city.
	ErrMissingCity = errors.New("city parameter is required")

	// ErrAPIKeyMissing is returned before any upstream call when no API key is configured.
	ErrAPIKeyMissing = errors.New("openweathermap api key not configured")

	// ErrMalformedPayload is returned when the upstream answered 2xx with a body we cannot reshape.
	ErrMalformedPayload = errors.New("malformed upstream payload")

	// ErrTransport wraps network failures reaching the upstream. The wrapped
	// error never carries the request URL, which holds the API key.
	ErrTransport = errors.New("upstream transport failure")

	// ErrCircuitOpen is returned while the upstream circuit breaker rejects calls.
	ErrCircuitOpen = errors.New("circuit breaker open")
)

// NotFoundError reports that the upstream has no weather for the requested city.
type NotFoundError struct {
	City string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("City %q not found", e.City)
}

// UpstreamError reports a non-success status from the upstream provider.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s returned %d", e.Endpoint, e.StatusCode)
}

// FailureReason classifies err into a short label that is safe to expose
// and to use as a metric label. It returns "" for a nil error.
func FailureReason(err error) string {
	var (
		nf     *NotFoundError
		up     *UpstreamError
		netErr net.Error
	)

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAPIKeyMissing):
		return "configuration"
	case errors.Is(err, ErrCircuitOpen):
		return "circuit_open"
	case errors.As(err, &nf):
		return "not_found"
	case errors.As(err, &up):
		return fmt.Sprintf("status_%d", up.StatusCode)
	case errors.Is(err, ErrMalformedPayload):
		return "malformed_payload"
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	case errors.Is(err, ErrTransport):
		return "transport"
	default:
		return "unexpected"
	}
}
