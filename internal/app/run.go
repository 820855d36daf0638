package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/timerwire/internal/config"
	"github.com/specialistvlad/timerwire/internal/ctxlog"
	"github.com/specialistvlad/timerwire/internal/installer"
	"github.com/specialistvlad/timerwire/internal/processor"
)

// Run loads the descriptors, processes every deployment unit and writes the
// installed services to the output. With a health check port configured it
// keeps serving until ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(ctx, a.config.HealthcheckPort)
		defer a.closeHealthcheckServer(ctx)
	}

	defaults := config.Defaults{DataStore: a.config.DefaultDataStore, ThreadPool: a.config.ThreadPool}
	model, err := a.loader.Load(ctx, defaults, a.config.DescriptorPath)
	if err != nil {
		return fmt.Errorf("failed to load descriptors: %w", err)
	}
	units, err := model.Units()
	if err != nil {
		return fmt.Errorf("invalid descriptors: %w", err)
	}
	a.logger.Debug("Descriptors loaded.", "units", len(units))

	proc, err := processor.New(ctx,
		processor.Config{ThreadPoolName: a.config.ThreadPool, DefaultDataStore: a.config.DefaultDataStore},
		a.providers,
		processor.WithInstaller(installer.New(
			installer.WithWorkers(a.config.WorkerCount),
			installer.WithMetrics(a.metrics),
		)),
		processor.WithMetrics(a.metrics),
	)
	if err != nil {
		return err
	}

	if len(units) == 0 {
		a.logger.Warn("No deployments found, nothing to install.")
	}
	for _, u := range units {
		if err := proc.Process(ctx, u, a.target); err != nil {
			return fmt.Errorf("processing deployment %s: %w", u.Name, err)
		}
	}
	a.units = units
	a.ready.Store(true)

	if err := a.writeSummary(ctx, proc.Provider().Name); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	if a.config.HealthcheckPort > 0 {
		a.logger.Info("Deployments processed, serving health checks until interrupted.")
		<-ctx.Done()
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}
