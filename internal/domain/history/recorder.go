package history

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/exp/slog"
)

type RecorderConfig struct {
	Workers   int
	QueueSize int
	// Timeout bounds each save.
	Timeout time.Duration
}

type RecorderStats struct {
	Enqueued uint64 `json:"enqueued"`
	Saved    uint64 `json:"saved"`
	Failed   uint64 `json:"failed"`
	Dropped  uint64 `json:"dropped"`
	Pending  int    `json:"pending"`
}

type job struct {
	userID string
	rec    Record
}

// Recorder saves history records in the background so a translation response
// never waits on storage. Errors are logged and counted, never returned.
type Recorder struct {
	appender Appender
	log      *slog.Logger
	timeout  time.Duration

	jobs chan job
	wg   sync.WaitGroup

	mu     sync.RWMutex
	closed bool

	enqueued atomic.Uint64
	saved    atomic.Uint64
	failed   atomic.Uint64
	dropped  atomic.Uint64
}

func NewRecorder(appender Appender, cfg RecorderConfig, log *slog.Logger) *Recorder {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	r := &Recorder{
		appender: appender,
		log:      log.With(slog.String("component", "history_recorder")),
		timeout:  cfg.Timeout,
		jobs:     make(chan job, cfg.QueueSize),
	}

	r.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go r.worker()
	}

	return r
}

// Enqueue never blocks. It reports false when the record was dropped.
func (r *Recorder) Enqueue(userID string, rec Record) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		r.dropped.Add(1)
		return false
	}

	select {
	case r.jobs <- job{userID: userID, rec: rec}:
		r.enqueued.Add(1)
		return true
	default:
		r.dropped.Add(1)
		r.log.Warn("history queue full, record dropped", slog.String("user_id", userID))
		return false
	}
}

func (r *Recorder) Stats() RecorderStats {
	return RecorderStats{
		Enqueued: r.enqueued.Load(),
		Saved:    r.saved.Load(),
		Failed:   r.failed.Load(),
		Dropped:  r.dropped.Load(),
		Pending:  len(r.jobs),
	}
}

// Close stops intake and waits for queued records to be saved or ctx to end.
func (r *Recorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.jobs)
	}
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Recorder) worker() {
	defer r.wg.Done()

	for j := range r.jobs {
		r.save(j)
	}
}

func (r *Recorder) save(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.appender.Append(ctx, j.userID, j.rec); err != nil {
		r.failed.Add(1)
		r.log.Error("failed to save history", slog.String("user_id", j.userID), slog.String("error", err.Error()))
		return
	}

	r.saved.Add(1)
}
