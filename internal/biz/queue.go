package biz

import (
	"context"
	"sync"
	"time"

	"go-promoter/internal/conf"
	"go-promoter/internal/domain"

	"github.com/go-kratos/kratos/v2/log"
)

// ClickRecorder processes one click job.
type ClickRecorder interface {
	RecordClick(ctx context.Context, code string, meta domain.VisitorMetadata) error
}

// ClickJob is a click waiting to be recorded.
type ClickJob struct {
	ShortCode string
	Meta      domain.VisitorMetadata
}

// ClickQueue is a bounded in-process queue drained by a fixed set of workers.
// Delivery is at most once: a full queue drops the click, and a failed job is
// logged and never retried.
type ClickQueue struct {
	recorder ClickRecorder
	jobs     chan ClickJob
	workers  int
	timeout  time.Duration
	log      *log.Helper

	mu      sync.RWMutex
	closed  bool
	started bool
	wg      sync.WaitGroup
}

// NewClickQueue creates a stopped queue. Call Start to run the workers.
// c must already carry defaults.
func NewClickQueue(recorder ClickRecorder, c *conf.Promoter, logger log.Logger) *ClickQueue {
	return &ClickQueue{
		recorder: recorder,
		jobs:     make(chan ClickJob, c.Queue.Size),
		workers:  c.Queue.Workers,
		timeout:  c.Queue.JobTimeout.AsDuration(),
		log:      log.NewHelper(log.With(logger, "module", "biz/queue")),
	}
}

// Enqueue schedules a click without blocking. It returns false when the click
// was dropped because the queue is full or stopped.
func (q *ClickQueue) Enqueue(code string, meta domain.VisitorMetadata) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		q.log.Warnf("click queue stopped, dropping click on %s", code)
		return false
	}

	select {
	case q.jobs <- ClickJob{ShortCode: code, Meta: meta}:
		return true
	default:
		q.log.Warnf("click queue full, dropping click on %s", code)
		return false
	}
}

// Start launches the workers. Jobs run with their own timeout, detached from ctx.
func (q *ClickQueue) Start(_ context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started || q.closed {
		return
	}
	q.started = true

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.work()
	}
	q.log.Infof("click queue started with %d workers", q.workers)
}

// Stop rejects new clicks, drains the queued ones and waits for the workers.
func (q *ClickQueue) Stop() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	q.wg.Wait()
	q.log.Info("click queue stopped")
}

// Len returns the number of queued clicks.
func (q *ClickQueue) Len() int {
	return len(q.jobs)
}

func (q *ClickQueue) work() {
	defer q.wg.Done()
	for job := range q.jobs {
		q.process(job)
	}
}

func (q *ClickQueue) process(job ClickJob) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	defer func() {
		if p := recover(); p != nil {
			q.log.Errorf("panic recording click on %s: %v", job.ShortCode, p)
		}
	}()

	if err := q.recorder.RecordClick(ctx, job.ShortCode, job.Meta); err != nil {
		q.log.Errorf("record click on %s: %v", job.ShortCode, err)
	}
}
