package providers

import (
	"github.com/samber/do/v2"

	"github.com/shopboxapp/shopbox-client/internal/config"
	"github.com/shopboxapp/shopbox-client/internal/logger"
	"github.com/shopboxapp/shopbox-client/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the persistent key-value store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	db, err := store.New(cfg.Storage.DataPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Store opened", "path", cfg.Storage.DataPath)

	return &StoreHandle{Store: db}, nil
}
