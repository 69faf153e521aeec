package providers

import (
	"github.com/samber/do/v2"

	"github.com/gatherly/gatherly-server/internal/auth"
	"github.com/gatherly/gatherly-server/internal/logger"
	"github.com/gatherly/gatherly-server/internal/media/images"
	"github.com/gatherly/gatherly-server/internal/service"
)

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvideTagService provides the tag service.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTagService(storeHandle.Store, log.Logger), nil
}

// ProvideEventService provides the event service.
func ProvideEventService(i do.Injector) (*service.EventService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tagService := do.MustInvoke[*service.TagService](i)
	imageStorage := do.MustInvoke[*images.Storage](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewEventService(storeHandle.Store, tagService, imageStorage, indexHandle.Index, log.Logger), nil
}

// ProvideFavoriteService provides the favorite service.
func ProvideFavoriteService(i do.Injector) (*service.FavoriteService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewFavoriteService(storeHandle.Store, log.Logger), nil
}
