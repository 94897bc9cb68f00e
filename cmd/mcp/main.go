package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mkrogh/bridgeway/pkg/bridge"
	"github.com/mkrogh/bridgeway/pkg/db"
	"github.com/mkrogh/bridgeway/pkg/flow"
	bridgewaymcp "github.com/mkrogh/bridgeway/pkg/mcp"
	"github.com/mkrogh/bridgeway/pkg/registry"
)

func main() {
	// Logging must go to stderr — stdout is the MCP transport
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Parse flags
	dbPath := flag.String("db", "", "Path to database file (default: ~/.config/bridgeway/bridgeway.db)")
	discoveryURL := flag.String("discovery", "", "Bridge discovery portal URL (overrides stored setting)")
	flag.Parse()

	ctx := context.Background()

	// Open database
	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	log.Info().Str("path", database.Path()).Msg("Database opened")

	// Run migrations
	if err := database.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Bootstrap if needed (first run)
	needsBootstrap, err := database.NeedsBootstrap(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to check bootstrap status")
	}
	if needsBootstrap {
		log.Info().Msg("First run detected, bootstrapping database...")
		if err := database.Bootstrap(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to bootstrap database")
		}
		log.Info().Msg("Database bootstrapped successfully")
	}

	// Load settings
	settings, err := database.LoadSettings(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load settings")
	}
	if *discoveryURL != "" {
		settings.DiscoveryURL = *discoveryURL
	}

	// Wire the pairing stack
	client := bridge.NewClient(settings.DiscoveryURL)
	svc := bridge.NewService(client)
	store := database.Bridges()
	ledger := registry.NewLedger(store)
	manager := flow.NewManager(svc, ledger)
	options := flow.NewOptionsNegotiator(store)

	// Create and start MCP server
	mcpServer := bridgewaymcp.NewServer(manager, store, options)

	log.Info().Msg("Starting MCP server on stdio")

	if err := mcpServer.ServeStdio(); err != nil {
		log.Fatal().Err(err).Msg("MCP server failed")
	}
}
