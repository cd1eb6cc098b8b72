package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/models"
)

// DefaultRefreshInterval is used when Start is given a non-positive interval.
const DefaultRefreshInterval = 15 * time.Minute

type refreshJob struct {
	orchestrator Orchestrator
	logger       *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRefreshJob creates a refreshJob that force-refetches collections
// through orchestrator on a ticker. The job is idle until Start is called.
func NewRefreshJob(orchestrator Orchestrator, logger *logger.Logger) RefreshJob {
	return &refreshJob{orchestrator: orchestrator, logger: logger}
}

// Start implements RefreshJob. It stops any previously running job, then
// launches a goroutine that refetches every collection once per interval,
// one after another. The goroutine exits when ctx is cancelled or Stop is
// called.
func (j *refreshJob) Start(ctx context.Context, collections []models.Collection, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.refresh(jobCtx, collections)
			}
		}
	}()
}

func (j *refreshJob) refresh(ctx context.Context, collections []models.Collection) {
	for _, c := range collections {
		if ctx.Err() != nil {
			return
		}

		_, err := j.orchestrator.Refetch(ctx, c)
		switch {
		case err == nil:
			j.logger.Debug().Str("collection", string(c)).Msg("collection refreshed")
		case errors.Is(err, ErrFetchSuperseded), errors.Is(err, context.Canceled):
		default:
			j.logger.Err(err).Str("func", "refreshJob.refresh").Str("collection", string(c)).Msg("scheduled refetch failed")
		}
	}
}

// Stop implements RefreshJob. It cancels the background goroutine's context
// and blocks until the goroutine has exited. Calling it on an idle job is a
// no-op.
func (j *refreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
