package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oortis/tempscore/internal/api"
	"github.com/oortis/tempscore/internal/api/handlers"
	"github.com/oortis/tempscore/internal/scheduler"
)

// serveCmd starts the REST API server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the REST API server.

Endpoints:
  GET  /health                - health check
  POST /temperature_score     - compute portfolio temperature scores
  GET  /data_providers        - list configured data providers
  POST /parse_portfolio       - parse an uploaded portfolio CSV
  POST /import_data_provider  - replace a CSV provider's data file

Example:
  tempscore serve --port 8080`,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (default from PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	if servePort != "" {
		a.cfg.Port = servePort
	}

	scoreHandler := handlers.NewScoreHandler(a.pipeline, a.providersCfg, a.logger)
	providerHandler := handlers.NewProviderHandler(a.registry, a.providersCfg.DataProviders, a.logger)
	portfolioHandler := handlers.NewPortfolioHandler(a.logger)

	router := api.NewRouter(scoreHandler, providerHandler, portfolioHandler, a.logger)
	server := api.New(a.cfg, a.logger, router)

	if a.cfg.HealthCheckEnabled {
		monitor := scheduler.NewHealthMonitor(a.registry, a.cfg.ProviderTimeout, a.logger)
		if err := monitor.Start(a.cfg.HealthCheckSchedule); err != nil {
			return err
		}
		defer monitor.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		a.logger.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
