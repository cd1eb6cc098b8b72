package workers

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/sky-shelf/internal/config"
	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/internal/service"
	"github.com/MKhiriev/sky-shelf/models"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the background workers enabled by cfg. A zero refresh
// interval disables the refresh job.
func NewWorkers(services *service.Services, cfg config.ClientWorkers, logger *logger.Logger) (*Workers, error) {
	w := &Workers{}
	if cfg.RefreshInterval <= 0 {
		logger.Info().Msg("refresh job disabled")
		return w, nil
	}

	collections, err := refreshCollections(cfg.RefreshCollections)
	if err != nil {
		return nil, err
	}

	w.workers = append(w.workers, &refreshWorker{
		job:         services.RefreshJob,
		collections: collections,
		interval:    cfg.RefreshInterval,
	})
	logger.Info().Dur("interval", cfg.RefreshInterval).Strs("collections", cfg.RefreshCollections).Msg("refresh job configured")

	return w, nil
}

func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}

// Stop stops the workers in reverse start order.
func (w *Workers) Stop() {
	for _, worker := range slices.Backward(w.workers) {
		worker.Stop()
	}
}

// refreshWorker drives the refresh job over a fixed set of collections.
type refreshWorker struct {
	job         service.RefreshJob
	collections []models.Collection
	interval    time.Duration
}

func (r *refreshWorker) Run(ctx context.Context) {
	r.job.Start(ctx, r.collections, r.interval)
}

func (r *refreshWorker) Stop() {
	r.job.Stop()
}

// refreshCollections parses the configured names; none means every
// collection.
func refreshCollections(names []string) ([]models.Collection, error) {
	if len(names) == 0 {
		return slices.Clone(models.Collections), nil
	}

	collections := make([]models.Collection, 0, len(names))
	for _, name := range names {
		c, ok := models.ParseCollection(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRefreshCollection, name)
		}
		if !slices.Contains(collections, c) {
			collections = append(collections, c)
		}
	}
	return collections, nil
}
