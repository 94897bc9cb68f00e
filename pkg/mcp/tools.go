package mcp

import "github.com/mark3labs/mcp-go/mcp"

// registerTools registers all MCP tools with the server
func (s *Server) registerTools() {
	// Health check
	s.mcpServer.AddTool(
		mcp.NewTool("get_health",
			mcp.WithDescription("Check the health status of the Bridgeway service and the bridge record store"),
		),
		s.handleGetHealth,
	)

	// List bridges
	s.mcpServer.AddTool(
		mcp.NewTool("list_bridges",
			mcp.WithDescription("List all registered bridges with their connection parameters and options"),
		),
		s.handleListBridges,
	)

	// Get bridge
	s.mcpServer.AddTool(
		mcp.NewTool("get_bridge",
			mcp.WithDescription("Get detailed information about a registered bridge by its canonical id"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Canonical bridge id (lowercase, separators stripped)"),
			),
		),
		s.handleGetBridge,
	)

	// Remove bridge
	s.mcpServer.AddTool(
		mcp.NewTool("remove_bridge",
			mcp.WithDescription("Remove a registered bridge record"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Canonical bridge id"),
			),
		),
		s.handleRemoveBridge,
	)

	// Start pairing
	s.mcpServer.AddTool(
		mcp.NewTool("start_pairing",
			mcp.WithDescription("Start a pairing flow. A 'user' flow discovers bridges and walks through the link-button handshake; a 'reauth' flow re-proves the credential of an already-registered bridge."),
			mcp.WithString("trigger",
				mcp.Description("Flow trigger: 'user' (default) or 'reauth'"),
			),
			mcp.WithString("bridge_id",
				mcp.Description("Registered bridge to re-authenticate (required for 'reauth')"),
			),
		),
		s.handleStartPairing,
	)

	// Advance pairing
	s.mcpServer.AddTool(
		mcp.NewTool("pairing_step",
			mcp.WithDescription("Submit input to a pairing flow's pending step. For the choose step pass host='manual' or a discovered address; for manual_input pass host and port; for link and addon_confirm submit with no input after pressing the bridge's link button."),
			mcp.WithString("flow_id",
				mcp.Required(),
				mcp.Description("Flow handle returned by start_pairing"),
			),
			mcp.WithString("host",
				mcp.Description("Bridge address, discovered choice, or 'manual'"),
			),
			mcp.WithNumber("port",
				mcp.Description("Bridge API port (default 80)"),
			),
		),
		s.handlePairingStep,
	)

	// Cancel pairing
	s.mcpServer.AddTool(
		mcp.NewTool("cancel_pairing",
			mcp.WithDescription("Abandon an in-progress pairing flow. Nothing is persisted."),
			mcp.WithString("flow_id",
				mcp.Required(),
				mcp.Description("Flow handle returned by start_pairing"),
			),
		),
		s.handleCancelPairing,
	)

	// Get bridge options
	s.mcpServer.AddTool(
		mcp.NewTool("get_bridge_options",
			mcp.WithDescription("Get a registered bridge's behavior options"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Canonical bridge id"),
			),
		),
		s.handleGetBridgeOptions,
	)

	// Set bridge options
	s.mcpServer.AddTool(
		mcp.NewTool("set_bridge_options",
			mcp.WithDescription("Replace a registered bridge's behavior options. All three toggles must be provided."),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Canonical bridge id"),
			),
			mcp.WithBoolean("allow_virtual_sensors",
				mcp.Required(),
				mcp.Description("Expose server-side virtual sensors"),
			),
			mcp.WithBoolean("allow_groups",
				mcp.Required(),
				mcp.Description("Expose bridge light groups"),
			),
			mcp.WithBoolean("allow_new_devices",
				mcp.Required(),
				mcp.Description("Automatically add newly joined devices"),
			),
		),
		s.handleSetBridgeOptions,
	)
}
