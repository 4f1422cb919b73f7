// Hearth Core - live smart-home state synchronisation.
//
// This is the main entry point for the Hearth Core daemon. It maintains
// a continuously-updated model of the installation (areas, lights,
// environmental sensors) by consuming the hub's registry+event stream,
// and exposes that model plus a lighting command surface to adapters.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/nerrad567/hearth-core/internal/command"
	"github.com/nerrad567/hearth-core/internal/hub"
	"github.com/nerrad567/hearth-core/internal/infrastructure/config"
	"github.com/nerrad567/hearth-core/internal/infrastructure/logging"
	"github.com/nerrad567/hearth-core/internal/state"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for
// testability. Returning an error allows main to handle exit codes
// consistently.
func run(ctx context.Context) error {
	log := logging.Default()
	log.Info("starting Hearth Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// A .env file is a development convenience; absence is normal.
	if err := godotenv.Load(); err == nil {
		log.Info("loaded environment from .env")
	}

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath, "areas", len(cfg.Areas))

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)

	manager := state.NewManager(cfg.Areas)
	manager.SetLogger(log.With("component", "state"))

	client := hub.NewClient(cfg.Hub, cfg.GetRefreshInterval(), manager)
	client.SetLogger(log.With("component", "hub"))

	if err := client.Connect(); err != nil {
		return fmt.Errorf("connecting to hub: %w", err)
	}
	defer func() {
		log.Info("disconnecting from hub")
		if closeErr := client.Close(); closeErr != nil {
			log.Error("error closing hub connection", "error", closeErr)
		}
	}()

	// The dispatcher is the command surface handed to adapters (CLI,
	// tool bridge). None ship in this binary yet.
	dispatcher := command.NewDispatcher(client, manager)
	dispatcher.SetLogger(log.With("component", "command"))

	log.Info("hearth core running",
		"hub", fmt.Sprintf("%s:%d", cfg.Hub.Host, cfg.Hub.Port),
		"refresh_interval", cfg.GetRefreshInterval(),
	)

	<-ctx.Done()

	stats := manager.GetStats()
	log.Info("shutting down",
		"areas", stats.Areas,
		"lights", stats.Lights,
		"sensors", stats.Sensors,
		"synced", stats.Synced,
	)
	return nil
}

// getConfigPath returns the config file path from the HEARTH_CONFIG
// environment variable, falling back to the default.
func getConfigPath() string {
	if path := os.Getenv("HEARTH_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
