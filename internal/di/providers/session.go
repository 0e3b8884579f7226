package providers

import (
	"github.com/samber/do/v2"

	"github.com/shopboxapp/shopbox-client/internal/backend"
	"github.com/shopboxapp/shopbox-client/internal/catalog"
	"github.com/shopboxapp/shopbox-client/internal/logger"
	"github.com/shopboxapp/shopbox-client/internal/metrics"
	"github.com/shopboxapp/shopbox-client/internal/ownership"
	"github.com/shopboxapp/shopbox-client/internal/session"
	"github.com/shopboxapp/shopbox-client/internal/validation"
)

// ProvideResolver provides the ownership resolver.
func ProvideResolver(i do.Injector) (*ownership.Resolver, error) {
	client := do.MustInvoke[*backend.Client](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	m := do.MustInvoke[*metrics.Metrics](i)

	return ownership.NewResolver(client, storeHandle.Store, log.Logger, m), nil
}

// ProvideSession provides the session, restored from the store and
// wired to the channel and the platform user.
func ProvideSession(i do.Injector) (*session.Session, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	resolver := do.MustInvoke[*ownership.Resolver](i)
	log := do.MustInvoke[*logger.Logger](i)
	channelHandle := do.MustInvoke[*ChannelHandle](i)
	platformUser := do.MustInvoke[*PlatformUser](i)

	sess := session.New(storeHandle.Store, resolver, log.Logger)
	sess.SetChannel(channelHandle.Channel)
	sess.SetUser(platformUser.User)

	return sess, nil
}

// ProvideCatalog provides the catalog service over the channel.
func ProvideCatalog(i do.Injector) (*catalog.Service, error) {
	channelHandle := do.MustInvoke[*ChannelHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return catalog.NewService(channelHandle.Channel, log.Logger), nil
}

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}
