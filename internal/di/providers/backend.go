package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/shopboxapp/shopbox-client/internal/backend"
	"github.com/shopboxapp/shopbox-client/internal/channel"
	"github.com/shopboxapp/shopbox-client/internal/config"
	"github.com/shopboxapp/shopbox-client/internal/domain"
	"github.com/shopboxapp/shopbox-client/internal/errors"
	"github.com/shopboxapp/shopbox-client/internal/logger"
	"github.com/shopboxapp/shopbox-client/internal/metrics"
	"github.com/shopboxapp/shopbox-client/internal/telegram"
)

// ProvideBackendClient provides the REST client for ownership and auth checks.
func ProvideBackendClient(i do.Injector) (*backend.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log.Logger), nil
}

// PlatformUser wraps the parsed init data user. The pointer is nil for
// an unauthenticated session.
type PlatformUser struct {
	User *domain.PlatformUser
}

// ProvidePlatformUser resolves the platform user once at startup:
// first from the Telegram init data, then from a stored access token
// via the backend's me endpoint. A token the backend rejects is
// cleared so the next start does not retry it.
func ProvidePlatformUser(i do.Injector) (*PlatformUser, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	user := telegram.ParseInitData(cfg.Telegram.InitData)
	if user != nil {
		log.Info("Platform user parsed", "user_id", user.ID, "username", user.Username)
		return &PlatformUser{User: user}, nil
	}

	storeHandle := do.MustInvoke[*StoreHandle](i)
	if token := storeHandle.AccessToken(); token != "" {
		client := do.MustInvoke[*backend.Client](i)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Backend.Timeout)
		defer cancel()

		me, err := client.Me(ctx, token)
		if err != nil {
			log.Warn("Stored access token not usable", "error", err)
			if errors.Is(err, errors.ErrUnauthorized) {
				if err := storeHandle.ClearAccessToken(); err != nil {
					log.Warn("Clearing access token", "error", err)
				}
			}
		} else {
			log.Info("Platform user restored from access token", "user_id", me.ID)
			return &PlatformUser{User: me}, nil
		}
	}

	log.Info("No platform user, running unauthenticated")
	return &PlatformUser{User: nil}, nil
}

// ProvideDispatcher provides the inbound message dispatcher.
func ProvideDispatcher(i do.Injector) (*channel.Dispatcher, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return channel.NewDispatcher(log.Logger), nil
}

// ChannelHandle wraps the channel with its context for lifecycle management.
type ChannelHandle struct {
	*channel.Channel
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *ChannelHandle) Shutdown() error {
	h.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Channel.Shutdown(ctx)
}

// ProvideChannel provides the persistent backend channel, connecting in
// the background so startup never blocks on the backend.
func ProvideChannel(i do.Injector) (*ChannelHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	dispatcher := do.MustInvoke[*channel.Dispatcher](i)
	m := do.MustInvoke[*metrics.Metrics](i)

	ch := channel.New(cfg.Backend.ChannelURL, dispatcher, log.Logger, m)

	ctx, cancel := context.WithCancel(context.Background())
	go ch.Start(ctx)

	log.Info("Channel connecting", "url", cfg.Backend.ChannelURL)

	return &ChannelHandle{Channel: ch, cancel: cancel}, nil
}
