package providers

import (
	"github.com/samber/do/v2"

	"github.com/gatherly/gatherly-server/internal/config"
	"github.com/gatherly/gatherly-server/internal/geocode"
	"github.com/gatherly/gatherly-server/internal/logger"
)

// ProvideGeocodeClient provides the geocoding client.
func ProvideGeocodeClient(i do.Injector) (*geocode.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := geocode.NewClient(cfg.Geocode.BaseURL, cfg.Geocode.AccessToken, log.Logger)
	if !client.Enabled() {
		log.Warn("Geocoding disabled: no access token configured")
	}

	return client, nil
}
