package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mkrogh/bridgeway/pkg/db"
	"github.com/mkrogh/bridgeway/pkg/flow"
)

func (s *Server) handleGetHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := "healthy"
	count := 0

	bridges, err := s.store.List(ctx)
	if err != nil {
		status = "degraded"
	} else {
		count = len(bridges)
	}

	out := GetHealthOutput{
		Status:    status,
		Bridges:   count,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListBridges(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bridges, err := s.store.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list bridges: %s", err)), nil
	}

	infos := make([]BridgeInfo, 0, len(bridges))
	for _, b := range bridges {
		infos = append(infos, BridgeToInfo(b))
	}

	out := ListBridgesOutput{
		Bridges: infos,
		Count:   len(infos),
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetBridge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	b, err := s.store.Get(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("bridge not found: %s", err)), nil
	}

	out := GetBridgeOutput{Bridge: BridgeToInfo(b)}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleRemoveBridge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to remove bridge: %s", err)), nil
	}

	out := RemoveBridgeOutput{
		Success: true,
		Message: fmt.Sprintf("Bridge %q removed", id),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleStartPairing(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	trigger := flow.TriggerUser
	if t, ok := request.GetArguments()["trigger"].(string); ok && t != "" {
		trigger = flow.Trigger(t)
	}

	seed := flow.Seed{Trigger: trigger}

	switch trigger {
	case flow.TriggerUser:
	case flow.TriggerReauth:
		bridgeID, err := requiredString(request, "bridge_id")
		if err != nil {
			return mcp.NewToolResultError("reauth requires bridge_id"), nil
		}
		b, err := s.store.Get(ctx, bridgeID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("bridge not found: %s", err)), nil
		}
		seed.Host = b.Host
		seed.Port = b.Port
		seed.RawID = b.ID
	default:
		// Announcement-class flows come in over the network, not tools.
		return mcp.NewToolResultError(fmt.Sprintf("trigger %q cannot be started here", trigger)), nil
	}

	id, res, err := s.manager.Start(ctx, seed)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to start pairing: %s", err)), nil
	}

	return mcp.NewToolResultText(formatJSON(pairingOutput(id, res))), nil
}

func (s *Server) handlePairingStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	flowID, err := requiredString(request, "flow_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	in := flow.Input{}
	args := request.GetArguments()
	if h, ok := args["host"].(string); ok {
		in.Host = h
	}
	if p, ok := args["port"].(float64); ok {
		in.Port = int(p)
	}

	res, err := s.manager.Advance(ctx, flowID, in)
	if errors.Is(err, flow.ErrFlowNotFound) {
		return mcp.NewToolResultError("no pairing flow with that handle"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to advance pairing: %s", err)), nil
	}

	return mcp.NewToolResultText(formatJSON(pairingOutput(flowID, res))), nil
}

func (s *Server) handleCancelPairing(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	flowID, err := requiredString(request, "flow_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.manager.Cancel(flowID); err != nil {
		return mcp.NewToolResultError("no pairing flow with that handle"), nil
	}

	out := CancelPairingOutput{
		Success: true,
		Message: fmt.Sprintf("Pairing flow %q abandoned", flowID),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetBridgeOptions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	opts, err := s.options.Current(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get options: %s", err)), nil
	}

	out := BridgeOptionsOutput{BridgeID: id, Options: OptionsToInfo(opts)}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleSetBridgeOptions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	next := db.Options{}
	for key, dst := range map[string]*bool{
		"allow_virtual_sensors": &next.AllowVirtualSensors,
		"allow_groups":          &next.AllowGroups,
		"allow_new_devices":     &next.AllowNewDevices,
	} {
		v, ok := args[key].(bool)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("required parameter %q is missing or not a boolean", key)), nil
		}
		*dst = v
	}

	opts, err := s.options.Apply(ctx, id, next)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set options: %s", err)), nil
	}

	out := BridgeOptionsOutput{BridgeID: id, Options: OptionsToInfo(opts)}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

// --- helpers ---

func requiredString(request mcp.CallToolRequest, key string) (string, error) {
	args := request.GetArguments()
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("required parameter %q is missing", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("parameter %q must be a non-empty string", key)
	}
	return s, nil
}

func formatJSON(v any) string {
	b, err := encodeJSON(v)
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal response: %s"}`, err)
	}
	return string(b)
}

func encodeJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
