package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/kitboardapp/kitboard-server/internal/audit"
	"github.com/kitboardapp/kitboard-server/internal/config"
	"github.com/kitboardapp/kitboard-server/internal/logger"
	"github.com/kitboardapp/kitboard-server/internal/store"
)

// StoreHandle wraps the override store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the override store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Storage.BasePath, "db")
	db, err := store.New(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Override store initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// AuditLogHandle wraps the audit log with shutdown capability.
type AuditLogHandle struct {
	*audit.Log
}

// Shutdown implements do.Shutdownable.
func (h *AuditLogHandle) Shutdown() error {
	return h.Close()
}

// ProvideAuditLog provides the override audit log.
func ProvideAuditLog(i do.Injector) (*AuditLogHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Storage.BasePath, "audit.db")
	auditLog, err := audit.Open(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Audit log initialized", "path", dbPath)

	return &AuditLogHandle{Log: auditLog}, nil
}
