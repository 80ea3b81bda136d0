package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/oortis/tempscore/internal/providers/csvfile"
	"github.com/oortis/tempscore/internal/providers/jsonfile"
	"github.com/oortis/tempscore/internal/providers/postgres"
	"github.com/oortis/tempscore/internal/providers/remote"
	"github.com/oortis/tempscore/pkg/config"
	"github.com/oortis/tempscore/pkg/database"
	"github.com/oortis/tempscore/pkg/httputil"
	"github.com/oortis/tempscore/pkg/logger"
)

// Build constructs a registry from the provider configuration. Adapters are
// created once here and reused for the life of the process.
func Build(ctx context.Context, cfg *config.Config, providersCfg *config.Providers, log *logger.Logger) (*Registry, error) {
	provs := make([]Provider, 0, len(providersCfg.DataProviders))

	for _, spec := range providersCfg.DataProviders {
		p, err := buildOne(ctx, cfg, spec, log)
		if err != nil {
			return nil, fmt.Errorf("build provider %q: %w", spec.Name, err)
		}
		provs = append(provs, p)

		log.WithFields(map[string]interface{}{
			"name": spec.Name,
			"type": spec.Type,
		}).Info("Configured data provider")
	}

	return NewRegistry(provs, providersCfg.StrictProviders, log), nil
}

func buildOne(ctx context.Context, cfg *config.Config, spec config.ProviderSpec, log *logger.Logger) (Provider, error) {
	params := spec.Parameters

	switch spec.Type {
	case "csv":
		return csvfile.New(spec.Name, params["company_data"], params["target_data"])

	case "json":
		return jsonfile.New(spec.Name, params["path"])

	case "postgres":
		url := params["url"]
		if url == "" {
			url = cfg.Database.URL
		}
		if url == "" {
			return nil, fmt.Errorf("no database URL configured")
		}
		db, err := database.New(ctx, url, cfg.Database)
		if err != nil {
			return nil, err
		}
		return postgres.New(spec.Name, db.Pool), nil

	case "remote":
		timeout := cfg.ProviderTimeout
		if raw := params["timeout"]; raw != "" {
			parsed, err := time.ParseDuration(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid timeout %q: %w", raw, err)
			}
			timeout = parsed
		}
		client := httputil.New(log, httputil.Options{Timeout: timeout})
		return remote.New(spec.Name, params["base_url"], client)

	default:
		return nil, fmt.Errorf("unsupported provider type %q", spec.Type)
	}
}
