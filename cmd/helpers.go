package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/moneysupermarket/component-catalog/internal/catalog"
	"github.com/moneysupermarket/component-catalog/internal/config"
	"github.com/moneysupermarket/component-catalog/internal/depgraph"
	"github.com/moneysupermarket/component-catalog/internal/logging"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `catalog-app init` to create a config file", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the process logger from config and installs it as the
// slog default.
func newLogger(cfg *config.Config) *slog.Logger {
	logger := logging.New(cfg.Log, Version, os.Stderr)
	slog.SetDefault(logger)
	return logger
}

// newCatalogClient creates the catalog service client used server side.
func newCatalogClient(cfg *config.Config) (*catalog.Client, error) {
	return catalog.NewClient(cfg.Service.ServerSideBaseURL, catalog.ClientOptions{
		Timeout:   time.Duration(cfg.Service.TimeoutSeconds) * time.Second,
		CacheSize: cfg.Service.CacheSize,
		CacheTTL:  time.Duration(cfg.Service.CacheTTLSeconds) * time.Second,
	})
}

// selectionMode maps the re-click option onto the graph view's behaviour.
func selectionMode(cfg *config.Config) depgraph.SelectionMode {
	if cfg.Graph.ReclickToggles {
		return depgraph.ToggleOnReclick
	}
	return depgraph.KeepOnReclick
}
