// Package di provides dependency injection configuration for the KitBoard server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/kitboardapp/kitboard-server/internal/auth"
	"github.com/kitboardapp/kitboard-server/internal/config"
	"github.com/kitboardapp/kitboard-server/internal/di/providers"
	"github.com/kitboardapp/kitboard-server/internal/logger"
	"github.com/kitboardapp/kitboard-server/internal/service"
	"github.com/kitboardapp/kitboard-server/internal/upstream"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Persistence layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideAuditLog)

	// Upstream and auth
	do.Provide(injector, providers.ProvideUpstreamClient)
	do.Provide(injector, providers.ProvideGuard)

	// Business services
	do.Provide(injector, providers.ProvideBookingService)
	do.Provide(injector, providers.ProvideOverrideService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.AuditLogHandle](injector)
	_ = do.MustInvoke[*upstream.Client](injector)
	_ = do.MustInvoke[*auth.Guard](injector)
	_ = do.MustInvoke[*service.BookingService](injector)
	_ = do.MustInvoke[*service.OverrideService](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
