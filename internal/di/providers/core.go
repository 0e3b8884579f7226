// Package providers contains dependency injection providers for the shopbox client.
package providers

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/samber/do/v2"

	"github.com/shopboxapp/shopbox-client/internal/config"
	"github.com/shopboxapp/shopbox-client/internal/logger"
	"github.com/shopboxapp/shopbox-client/internal/metrics"
)

const (
	// shutdownTimeout is the maximum time to wait for graceful shutdown of services.
	shutdownTimeout = 30 * time.Second
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	log.Info("Starting shopbox client",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_path", cfg.Storage.DataPath,
		"backend_url", cfg.Backend.BaseURL,
		"channel_url", cfg.Backend.ChannelURL,
	)

	return log, nil
}

// ProvideSlogLogger provides access to the underlying slog.Logger for packages that need it.
func ProvideSlogLogger(i do.Injector) (*slog.Logger, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return log.Logger, nil
}

// ProvideRegistry provides the prometheus registry backing /metrics.
func ProvideRegistry(i do.Injector) (*prometheus.Registry, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return registry, nil
}

// ProvideMetrics provides the application metric collectors.
func ProvideMetrics(i do.Injector) (*metrics.Metrics, error) {
	registry := do.MustInvoke[*prometheus.Registry](i)
	return metrics.New(registry), nil
}
