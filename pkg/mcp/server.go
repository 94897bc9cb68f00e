package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/mkrogh/bridgeway/pkg/db"
	"github.com/mkrogh/bridgeway/pkg/flow"
)

// Server wraps the MCP server with Bridgeway's pairing and registry tools
type Server struct {
	mcpServer *server.MCPServer
	manager   *flow.Manager
	store     db.BridgeStore
	options   *flow.OptionsNegotiator
}

// NewServer creates a new MCP server for bridge pairing and management
func NewServer(manager *flow.Manager, store db.BridgeStore, options *flow.OptionsNegotiator) *Server {
	s := &Server{
		manager: manager,
		store:   store,
		options: options,
	}

	// Create MCP server
	s.mcpServer = server.NewMCPServer(
		"bridgeway",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Register all tools
	s.registerTools()

	return s
}

// ServeStdio starts the MCP server using stdio transport
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
