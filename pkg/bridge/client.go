package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// DefaultDiscoveryURL is the vendor portal that gateways register with on
// the local network's behalf.
const DefaultDiscoveryURL = "https://discovery.bridgeway.dev/discover"

// deviceType is the name the handshake registers with the gateway.
const deviceType = "bridgeway"

// linkButtonErrorType is the gateway API error code returned when the
// physical link button has not been pressed.
const linkButtonErrorType = 101

// Client implements Transport against the gateway's REST API.
type Client struct {
	http         *http.Client
	discoveryURL string
}

// NewClient creates a Client. An empty discoveryURL selects the default
// vendor portal. Call deadlines are the caller's responsibility (via ctx);
// the underlying http.Client carries no timeout of its own.
func NewClient(discoveryURL string) *Client {
	if discoveryURL == "" {
		discoveryURL = DefaultDiscoveryURL
	}
	return &Client{
		http:         &http.Client{},
		discoveryURL: discoveryURL,
	}
}

type discoveryEntry struct {
	ID                string `json:"id"`
	InternalIPAddress string `json:"internalipaddress"`
	InternalPort      int    `json:"internalport"`
}

// Discover queries the discovery portal for gateways on this network.
func (c *Client) Discover(ctx context.Context) ([]Candidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.discoveryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: discovery returned status %d", ErrResponse, resp.StatusCode)
	}

	var entries []discoveryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponse, err)
	}

	candidates := make([]Candidate, 0, len(entries))
	for _, e := range entries {
		candidates = append(candidates, Candidate{
			ID:   e.ID,
			Host: e.InternalIPAddress,
			Port: e.InternalPort,
		})
	}
	return candidates, nil
}

type apiKeyResult struct {
	Success *struct {
		Username string `json:"username"`
	} `json:"success"`
	Error *struct {
		Type        int    `json:"type"`
		Description string `json:"description"`
	} `json:"error"`
}

// GetAPIKey performs the link-button handshake.
func (c *Client) GetAPIKey(ctx context.Context, host string, port int) (string, error) {
	body, _ := json.Marshal(map[string]string{"devicetype": deviceType})
	url := fmt.Sprintf("http://%s:%d/api", host, port)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer resp.Body.Close()

	var results []apiKeyResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return "", fmt.Errorf("%w: %v", ErrResponse, err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("%w: empty result", ErrResponse)
	}

	r := results[0]
	if r.Error != nil {
		if r.Error.Type == linkButtonErrorType {
			return "", ErrLinkButtonNotPressed
		}
		return "", fmt.Errorf("%w: %s", ErrResponse, r.Error.Description)
	}
	if r.Success == nil || r.Success.Username == "" {
		return "", fmt.Errorf("%w: missing api key", ErrResponse)
	}
	return r.Success.Username, nil
}

// GetBridgeID retrieves the gateway's identifier from its config endpoint.
func (c *Client) GetBridgeID(ctx context.Context, host string, port int, apiKey string) (string, error) {
	url := fmt.Sprintf("http://%s:%d/api/%s/config", host, port, apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequest, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: config returned status %d", ErrResponse, resp.StatusCode)
	}

	var cfg struct {
		BridgeID string `json:"bridgeid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		return "", fmt.Errorf("%w: %v", ErrResponse, err)
	}
	if cfg.BridgeID == "" {
		return "", fmt.Errorf("%w: missing bridge id", ErrResponse)
	}
	return cfg.BridgeID, nil
}
