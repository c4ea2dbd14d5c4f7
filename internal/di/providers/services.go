package providers

import (
	"github.com/samber/do/v2"

	"github.com/kitboardapp/kitboard-server/internal/auth"
	"github.com/kitboardapp/kitboard-server/internal/config"
	"github.com/kitboardapp/kitboard-server/internal/logger"
	"github.com/kitboardapp/kitboard-server/internal/service"
	"github.com/kitboardapp/kitboard-server/internal/upstream"
)

// ProvideUpstreamClient provides the booking-API client.
func ProvideUpstreamClient(i do.Injector) (*upstream.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return upstream.New(cfg.Upstream, log.Logger), nil
}

// ProvideGuard provides the technician-secret guard.
func ProvideGuard(i do.Injector) (*auth.Guard, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return auth.NewGuard(cfg.Auth.TechSecret)
}

// ProvideBookingService provides the booking pipeline service.
func ProvideBookingService(i do.Injector) (*service.BookingService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	client := do.MustInvoke[*upstream.Client](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookingService(storeHandle.Store, client, cfg.Window(), log.Logger), nil
}

// ProvideOverrideService provides the override management service.
func ProvideOverrideService(i do.Injector) (*service.OverrideService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	auditHandle := do.MustInvoke[*AuditLogHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewOverrideService(storeHandle.Store, auditHandle.Log, log.Logger), nil
}
