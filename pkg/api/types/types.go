package types

import "time"

// --- Request DTOs ---

// StartFlowRequest is the request body for POST /pairing/flows
type StartFlowRequest struct {
	Trigger  string `json:"trigger" binding:"required"`
	BridgeID string `json:"bridge_id,omitempty"`
}

// StepRequest is the request body for POST /pairing/flows/:id/steps
type StepRequest struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`
}

// AddonRequest is the request body for POST /pairing/addon
type AddonRequest struct {
	ID     string `json:"id" binding:"required"`
	Host   string `json:"host" binding:"required"`
	Port   int    `json:"port" binding:"required"`
	APIKey string `json:"api_key" binding:"required"`
	Addon  string `json:"addon,omitempty"`
}

// OptionsRequest is the request body for PUT /bridges/:id/options.
// All three toggles are required: options are replaced as a whole.
type OptionsRequest struct {
	AllowVirtualSensors *bool `json:"allow_virtual_sensors" binding:"required"`
	AllowGroups         *bool `json:"allow_groups" binding:"required"`
	AllowNewDevices     *bool `json:"allow_new_devices" binding:"required"`
}

// --- Response DTOs ---

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// FlowResponse is a pairing flow step result. Kind is form, created or
// abort; flow_id is only present while the flow expects more input.
type FlowResponse struct {
	FlowID       string            `json:"flow_id,omitempty"`
	Kind         string            `json:"kind"`
	Step         string            `json:"step,omitempty"`
	Reason       string            `json:"reason,omitempty"`
	Choices      []string          `json:"choices,omitempty"`
	Placeholders map[string]string `json:"placeholders,omitempty"`
	BridgeID     string            `json:"bridge_id,omitempty"`
}

// BridgeInfo is a registered bridge. The API key is never exposed.
type BridgeInfo struct {
	ID        string          `json:"id"`
	Host      string          `json:"host"`
	Port      int             `json:"port"`
	Source    string          `json:"source"`
	Options   OptionsResponse `json:"options"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ListBridgesResponse is returned from GET /bridges
type ListBridgesResponse struct {
	Bridges []BridgeInfo `json:"bridges"`
	Count   int          `json:"count"`
}

// BridgeResponse is returned from GET /bridges/:id
type BridgeResponse struct {
	Bridge BridgeInfo `json:"bridge"`
}

// OptionsResponse is returned from GET/PUT /bridges/:id/options
type OptionsResponse struct {
	AllowVirtualSensors bool `json:"allow_virtual_sensors"`
	AllowGroups         bool `json:"allow_groups"`
	AllowNewDevices     bool `json:"allow_new_devices"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Bridges   int       `json:"bridges"`
	Timestamp time.Time `json:"timestamp"`
}
