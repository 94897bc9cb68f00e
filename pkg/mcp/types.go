package mcp

import (
	"github.com/mkrogh/bridgeway/pkg/db"
	"github.com/mkrogh/bridgeway/pkg/flow"
)

// --- Health Tool ---

// GetHealthOutput is the output for the get_health tool
type GetHealthOutput struct {
	Status    string `json:"status" jsonschema:"description=Overall health status (healthy or degraded)"`
	Bridges   int    `json:"bridges" jsonschema:"description=Number of registered bridges"`
	Timestamp string `json:"timestamp" jsonschema:"description=ISO8601 timestamp"`
}

// --- List Bridges Tool ---

// ListBridgesOutput is the output for the list_bridges tool
type ListBridgesOutput struct {
	Bridges []BridgeInfo `json:"bridges" jsonschema:"description=List of registered bridges"`
	Count   int          `json:"count" jsonschema:"description=Total number of bridges"`
}

// BridgeInfo represents a registered bridge in tool outputs. The API key
// never appears here.
type BridgeInfo struct {
	ID      string      `json:"id" jsonschema:"description=Canonical bridge id"`
	Host    string      `json:"host" jsonschema:"description=Bridge address"`
	Port    int         `json:"port" jsonschema:"description=Bridge API port"`
	Source  string      `json:"source" jsonschema:"description=How the record was registered (user/announce/addon)"`
	Options OptionsInfo `json:"options" jsonschema:"description=Behavior options"`
}

// OptionsInfo represents bridge behavior options in tool outputs
type OptionsInfo struct {
	AllowVirtualSensors bool `json:"allow_virtual_sensors" jsonschema:"description=Expose server-side virtual sensors"`
	AllowGroups         bool `json:"allow_groups" jsonschema:"description=Expose bridge light groups"`
	AllowNewDevices     bool `json:"allow_new_devices" jsonschema:"description=Automatically add newly joined devices"`
}

// --- Get Bridge Tool ---

// GetBridgeOutput is the output for the get_bridge tool
type GetBridgeOutput struct {
	Bridge BridgeInfo `json:"bridge" jsonschema:"description=Bridge information"`
}

// --- Remove Bridge Tool ---

// RemoveBridgeOutput is the output for the remove_bridge tool
type RemoveBridgeOutput struct {
	Success bool   `json:"success" jsonschema:"description=Whether the removal succeeded"`
	Message string `json:"message" jsonschema:"description=Status message"`
}

// --- Pairing Tools ---

// PairingOutput is the output for the start_pairing and pairing_step tools
type PairingOutput struct {
	FlowID       string            `json:"flow_id,omitempty" jsonschema:"description=Handle for the in-progress flow (absent once terminal)"`
	Kind         string            `json:"kind" jsonschema:"description=Result kind: form, created or abort"`
	Step         string            `json:"step,omitempty" jsonschema:"description=Pending step awaiting input"`
	Reason       string            `json:"reason,omitempty" jsonschema:"description=Re-prompt or abort reason code"`
	Choices      []string          `json:"choices,omitempty" jsonschema:"description=Selectable values for a choose step"`
	Placeholders map[string]string `json:"placeholders,omitempty" jsonschema:"description=Values to render into the step prompt"`
	BridgeID     string            `json:"bridge_id,omitempty" jsonschema:"description=Canonical id of the registered bridge"`
}

// CancelPairingOutput is the output for the cancel_pairing tool
type CancelPairingOutput struct {
	Success bool   `json:"success" jsonschema:"description=Whether the flow was abandoned"`
	Message string `json:"message" jsonschema:"description=Status message"`
}

// --- Options Tools ---

// BridgeOptionsOutput is the output for the get_bridge_options and
// set_bridge_options tools
type BridgeOptionsOutput struct {
	BridgeID string      `json:"bridge_id" jsonschema:"description=Canonical bridge id"`
	Options  OptionsInfo `json:"options" jsonschema:"description=Current behavior options"`
}

// --- Helper conversions ---

// BridgeToInfo converts a db.Bridge to BridgeInfo
func BridgeToInfo(b *db.Bridge) BridgeInfo {
	return BridgeInfo{
		ID:      b.ID,
		Host:    b.Host,
		Port:    b.Port,
		Source:  b.Source,
		Options: OptionsToInfo(b.Options),
	}
}

// OptionsToInfo converts db.Options to OptionsInfo
func OptionsToInfo(o db.Options) OptionsInfo {
	return OptionsInfo{
		AllowVirtualSensors: o.AllowVirtualSensors,
		AllowGroups:         o.AllowGroups,
		AllowNewDevices:     o.AllowNewDevices,
	}
}

func pairingOutput(id string, res flow.Result) PairingOutput {
	out := PairingOutput{
		Kind:         string(res.Kind),
		Step:         res.Step,
		Reason:       res.Reason,
		Choices:      res.Choices,
		Placeholders: res.Placeholders,
		BridgeID:     res.BridgeID,
	}
	if !res.Terminal() {
		out.FlowID = id
	}
	return out
}
