// Package scheduler runs periodic provider health checks so operators see
// a failing data source before requests start degrading.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/oortis/tempscore/internal/providers"
	"github.com/oortis/tempscore/pkg/logger"
)

// HealthMonitor pings every configured provider on a cron schedule.
type HealthMonitor struct {
	registry *providers.Registry
	cron     *cron.Cron
	timeout  time.Duration
	logger   *logger.Logger
}

// NewHealthMonitor creates a monitor. The timeout bounds each health probe.
func NewHealthMonitor(registry *providers.Registry, timeout time.Duration, log *logger.Logger) *HealthMonitor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HealthMonitor{
		registry: registry,
		cron:     cron.New(),
		timeout:  timeout,
		logger:   log.WithField("module", "healthcheck"),
	}
}

// Start schedules the checks. The schedule accepts standard cron specs and
// the @every form.
func (m *HealthMonitor) Start(schedule string) error {
	if _, err := m.cron.AddFunc(schedule, m.checkAll); err != nil {
		return fmt.Errorf("schedule health checks: %w", err)
	}
	m.cron.Start()

	m.logger.WithField("schedule", schedule).Info("Provider health checks scheduled")
	return nil
}

// Stop stops the scheduler and waits for a running check to finish.
func (m *HealthMonitor) Stop() {
	<-m.cron.Stop().Done()
}

// checkAll probes every provider once.
func (m *HealthMonitor) checkAll() {
	healthy := 0
	for _, p := range m.registry.All() {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		err := p.Health(ctx)
		cancel()

		if err != nil {
			m.logger.WithError(err).WithFields(map[string]interface{}{
				"provider": p.Name(),
				"type":     p.Type(),
			}).Warn("Provider health check failed")
			continue
		}
		healthy++
	}

	m.logger.WithFields(map[string]interface{}{
		"healthy": healthy,
		"total":   len(m.registry.All()),
	}).Debug("Provider health checks completed")
}
