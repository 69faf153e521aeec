package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/gatherly/gatherly-server/internal/api"
	"github.com/gatherly/gatherly-server/internal/config"
	"github.com/gatherly/gatherly-server/internal/geocode"
	"github.com/gatherly/gatherly-server/internal/logger"
	"github.com/gatherly/gatherly-server/internal/media/images"
	"github.com/gatherly/gatherly-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	geocoder := do.MustInvoke[*geocode.Client](i)
	imageStorage := do.MustInvoke[*images.Storage](i)
	processor := do.MustInvoke[*images.Processor](i)

	services := &api.Services{
		Auth:     do.MustInvoke[*service.AuthService](i),
		Event:    do.MustInvoke[*service.EventService](i),
		Tag:      do.MustInvoke[*service.TagService](i),
		Favorite: do.MustInvoke[*service.FavoriteService](i),
		Search:   do.MustInvoke[*service.SearchService](i),
	}

	handler := api.NewServer(cfg, storeHandle.Store, services, geocoder, imageStorage, processor, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
