package commands

import (
	"context"
	"fmt"

	"github.com/oortis/tempscore/internal/pipeline"
	"github.com/oortis/tempscore/internal/providers"
	"github.com/oortis/tempscore/pkg/config"
	"github.com/oortis/tempscore/pkg/logger"
)

// app bundles everything a command needs after bootstrap.
type app struct {
	cfg          *config.Config
	providersCfg *config.Providers
	registry     *providers.Registry
	pipeline     *pipeline.Pipeline
	logger       *logger.Logger
}

// bootstrap loads configuration, builds the provider registry and wires the
// pipeline. Every command starts here so flags and env behave identically.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if providersFile != "" {
		cfg.ProvidersFile = providersFile
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "tempscore",
	})

	providersCfg, err := config.LoadProviders(cfg.ProvidersFile)
	if err != nil {
		return nil, fmt.Errorf("load providers: %w", err)
	}

	registry, err := providers.Build(ctx, cfg, providersCfg, log)
	if err != nil {
		return nil, fmt.Errorf("build providers: %w", err)
	}

	p := pipeline.New(registry, pipeline.Options{
		ProviderTimeout: cfg.ProviderTimeout,
	}, log)

	return &app{
		cfg:          cfg,
		providersCfg: providersCfg,
		registry:     registry,
		pipeline:     p,
		logger:       log,
	}, nil
}
