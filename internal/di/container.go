// Package di provides dependency injection configuration for the shopbox client.
package di

import (
	"github.com/samber/do/v2"

	"github.com/shopboxapp/shopbox-client/internal/backend"
	"github.com/shopboxapp/shopbox-client/internal/catalog"
	"github.com/shopboxapp/shopbox-client/internal/config"
	"github.com/shopboxapp/shopbox-client/internal/di/providers"
	"github.com/shopboxapp/shopbox-client/internal/logger"
	"github.com/shopboxapp/shopbox-client/internal/metrics"
	"github.com/shopboxapp/shopbox-client/internal/ownership"
	"github.com/shopboxapp/shopbox-client/internal/session"
	"github.com/shopboxapp/shopbox-client/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)
	do.Provide(injector, providers.ProvideRegistry)
	do.Provide(injector, providers.ProvideMetrics)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)

	// Backend access
	do.Provide(injector, providers.ProvideBackendClient)
	do.Provide(injector, providers.ProvidePlatformUser)
	do.Provide(injector, providers.ProvideDispatcher)
	do.Provide(injector, providers.ProvideChannel)

	// Session layer
	do.Provide(injector, providers.ProvideResolver)
	do.Provide(injector, providers.ProvideSession)
	do.Provide(injector, providers.ProvideCatalog)
	do.Provide(injector, providers.ProvideValidator)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*metrics.Metrics](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*backend.Client](injector)
	_ = do.MustInvoke[*providers.ChannelHandle](injector)
	_ = do.MustInvoke[*ownership.Resolver](injector)
	_ = do.MustInvoke[*session.Session](injector)
	_ = do.MustInvoke[*catalog.Service](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
