package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-login-server/internal/config"
	"github.com/MKhiriev/go-login-server/internal/logger"
	"github.com/MKhiriev/go-login-server/internal/store"
)

type Workers struct {
	workers []Worker
	wg      sync.WaitGroup
}

// NewWorkers builds the background workers enabled by cfg.
func NewWorkers(storages *store.Storages, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}

	if cfg.RefreshTokenCleanupInterval > 0 {
		w.workers = append(w.workers, newRefreshTokenCleaner(storages.UserRepository, cfg.RefreshTokenCleanupInterval, logger))
	}

	return w
}

// Run starts every worker in its own goroutine and returns immediately.
// Workers stop when ctx is cancelled; Wait blocks until they have.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			worker.Run(ctx)
		}()
	}
}

// Wait blocks until every started worker has returned.
func (w *Workers) Wait() {
	w.wg.Wait()
}
