package weather

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return false }

func TestFailureReason(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrAPIKeyMissing, "configuration"},
		{fmt.Errorf("weather request: %w: gobreaker: circuit breaker is open", ErrCircuitOpen), "circuit_open"},
		{fmt.Errorf("current weather: %w", &NotFoundError{City: "Atlantis"}), "not_found"},
		{&UpstreamError{Endpoint: "geocoding", StatusCode: 502}, "status_502"},
		{fmt.Errorf("decode: %w", ErrMalformedPayload), "malformed_payload"},
		{fmt.Errorf("weather request: %w: %w", ErrTransport, timeoutErr{}), "timeout"},
		{context.DeadlineExceeded, "timeout"},
		{fmt.Errorf("weather request: %w: connection refused", ErrTransport), "transport"},
		{errors.New("boom"), "unexpected"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FailureReason(tc.err), "FailureReason(%v)", tc.err)
	}
}
