package bridge

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

// RequestTimeout bounds every network call the pairing core makes.
const RequestTimeout = 10 * time.Second

// Service wraps a Transport with the uniform deadline and the failure
// classification the pairing flow depends on.
type Service struct {
	transport Transport
	timeout   time.Duration
}

// NewService creates a Service using the standard request timeout.
func NewService(t Transport) *Service {
	return &Service{transport: t, timeout: RequestTimeout}
}

// Discover returns the gateways visible on the network. Discovery failure
// is never fatal: on timeout or transport error the result is empty and the
// caller falls back to manual entry.
func (s *Service) Discover(ctx context.Context) []Candidate {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	candidates, err := s.transport.Discover(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("Gateway discovery failed, continuing with manual entry")
		return nil
	}
	return candidates
}

// Negotiate performs the link-button handshake against one gateway.
// ErrLinkButtonNotPressed is passed through so the flow can re-prompt with
// the right reason; every other failure (including the deadline) comes back
// classified but equally retryable.
func (s *Service) Negotiate(ctx context.Context, host string, port int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	key, err := s.transport.GetAPIKey(ctx, host, port)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", err
	}
	return key, nil
}

// ResolveID retrieves and normalizes the gateway's canonical identifier.
// Called only when the flow does not already know which gateway it paired
// with; a timeout here is fatal to the flow because retrying could bind the
// credential to the wrong device.
func (s *Service) ResolveID(ctx context.Context, host string, port int, apiKey string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.transport.GetBridgeID(ctx, host, port, apiKey)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", err
	}
	return NormalizeID(raw), nil
}
