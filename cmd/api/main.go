package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mkrogh/bridgeway/pkg/announce"
	"github.com/mkrogh/bridgeway/pkg/api"
	"github.com/mkrogh/bridgeway/pkg/bridge"
	"github.com/mkrogh/bridgeway/pkg/db"
	"github.com/mkrogh/bridgeway/pkg/flow"
	"github.com/mkrogh/bridgeway/pkg/registry"

	_ "github.com/mkrogh/bridgeway/docs"
)

// @title           Bridgeway API
// @version         1.0
// @description     REST API for discovering, pairing and managing gateway bridges

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

func main() {
	// Configure logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Parse flags
	dbPath := flag.String("db", "", "Path to database file (default: ~/.config/bridgeway/bridgeway.db)")
	discoveryURL := flag.String("discovery", "", "Bridge discovery portal URL (overrides stored setting)")
	mqttBroker := flag.String("mqtt", "", "MQTT broker URL for gateway announcements (overrides stored setting)")
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
	if *mqttBroker != "" {
		settings.MQTTBroker = *mqttBroker
	}

	log.Info().
		Str("api_address", settings.Address()).
		Str("discovery_url", settings.DiscoveryURL).
		Msg("Settings loaded")

	// Wire the pairing stack
	client := bridge.NewClient(settings.DiscoveryURL)
	svc := bridge.NewService(client)
	store := database.Bridges()
	ledger := registry.NewLedger(store)
	manager := flow.NewManager(svc, ledger)
	options := flow.NewOptionsNegotiator(store)

	// Listen for gateway announcements when a broker is configured
	if settings.MQTTBroker != "" {
		listener, err := announce.NewListener(settings.MQTTBroker, manager)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create announcement listener")
		}
		if err := listener.Start(); err != nil {
			log.Fatal().Err(err).Str("broker", settings.MQTTBroker).Msg("Failed to start announcement listener")
		}
		defer listener.Close()
	} else {
		log.Info().Msg("No MQTT broker configured, announcement flows disabled")
	}

	// Create and start API router
	router := api.NewRouter(manager, store, options)

	// Handle shutdown gracefully
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("Shutting down...")
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
		os.Exit(0)
	}()

	// Start server
	addr := settings.Address()
	log.Info().Str("address", addr).Msg("Starting API server")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
