package bridge

import "context"

// Candidate is a gateway located on the network but not yet paired.
// RawID is empty when the candidate was entered manually.
type Candidate struct {
	ID   string `json:"id"`
	Host string `json:"host"`
	Port int    `json:"port"`
}

// Transport defines the wire operations the pairing core needs from a
// gateway. Implementations talk to real hardware; tests substitute fakes.
type Transport interface {
	// Discover returns the gateways currently visible on the network.
	Discover(ctx context.Context) ([]Candidate, error)

	// GetAPIKey performs the link-button handshake against one gateway
	// and returns the negotiated API key. Fails with
	// ErrLinkButtonNotPressed when the button was not pressed in time,
	// ErrRequest/ErrResponse otherwise.
	GetAPIKey(ctx context.Context, host string, port int) (string, error)

	// GetBridgeID retrieves the gateway's own identifier using an
	// already-negotiated key. The returned id is raw, not normalized.
	GetBridgeID(ctx context.Context, host string, port int, apiKey string) (string, error)
}
