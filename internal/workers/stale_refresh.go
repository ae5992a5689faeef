package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-client/internal/logger"
)

type staleRefreshJob struct {
	refresher StaleRefresher
	interval  time.Duration
	logger    *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewStaleRefreshJob creates a Worker that calls refresher.RefreshStale on a
// ticker. The job is idle until Start is called.
func NewStaleRefreshJob(refresher StaleRefresher, interval time.Duration, log *logger.Logger) Worker {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &staleRefreshJob{
		refresher: refresher,
		interval:  interval,
		logger:    log.ForComponent("stale-refresh"),
	}
}

// Start implements Worker. It stops any previously running job, then launches
// a background goroutine that refreshes stale entries every interval. The
// goroutine exits when ctx is cancelled or Stop is called.
func (j *staleRefreshJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.tick(jobCtx)
			}
		}
	}()
}

func (j *staleRefreshJob) tick(ctx context.Context) {
	refreshed, err := j.refresher.RefreshStale(ctx)
	if err != nil && ctx.Err() == nil {
		j.logger.Warn().Err(err).
			Str("func", "staleRefreshJob.tick").
			Int("refreshed", refreshed).
			Msg("stale refresh finished with errors")
	}
}

// Stop implements Worker. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is
// not running.
func (j *staleRefreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
