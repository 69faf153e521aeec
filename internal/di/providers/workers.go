package providers

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"github.com/gatherly/gatherly-server/internal/logger"
	"github.com/gatherly/gatherly-server/internal/service"
)

// sessionCleanupInterval is how often expired sessions are purged.
const sessionCleanupInterval = 1 * time.Hour

// SessionCleanupJob runs periodic session cleanup.
type SessionCleanupJob struct {
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (j *SessionCleanupJob) Shutdown() error {
	j.cancel()
	return nil
}

// ProvideSessionCleanupJob provides the periodic session cleanup job.
func ProvideSessionCleanupJob(i do.Injector) (*SessionCleanupJob, error) {
	authService := do.MustInvoke[*service.AuthService](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		ticker := time.NewTicker(sessionCleanupInterval)
		defer ticker.Stop()

		// Initial cleanup on startup
		if _, err := authService.CleanupExpiredSessions(ctx); err != nil {
			log.Warn("Initial session cleanup failed", "error", err)
		}

		for {
			select {
			case <-ticker.C:
				if _, err := authService.CleanupExpiredSessions(ctx); err != nil {
					log.Warn("Session cleanup failed", "error", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info("Session cleanup job started")

	return &SessionCleanupJob{cancel: cancel}, nil
}

// SearchBootstrap reindexes the store into the search index on startup
// when the index is empty, so a rebuilt or wiped index self-heals.
type SearchBootstrap struct{}

// ProvideSearchBootstrap provides the startup search reindex.
func ProvideSearchBootstrap(i do.Injector) (*SearchBootstrap, error) {
	searchService := do.MustInvoke[*service.SearchService](i)
	log := do.MustInvoke[*logger.Logger](i)

	count, err := searchService.DocumentCount()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		go func() {
			n, err := searchService.RebuildFromStore(context.Background())
			if err != nil {
				log.Warn("Startup search reindex failed", "error", err)
				return
			}
			if n > 0 {
				log.Info("Startup search reindex completed", "events", n)
			}
		}()
	}

	return &SearchBootstrap{}, nil
}
