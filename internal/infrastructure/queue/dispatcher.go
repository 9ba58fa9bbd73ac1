package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/careerhub/resume-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes status-change notices to a fixed set of workers using
// consistent hashing on the resume id, guaranteeing per-resume delivery
// ordering.
type Dispatcher struct {
	workers []chan ports.StatusNotice
	service ports.NotificationService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.NotificationService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.StatusNotice, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.StatusNotice, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a notice to the worker responsible for its resume id.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(notice ports.StatusNotice) {
	d.workers[d.shardIndex(notice.ResumeID)] <- notice
}

// shardIndex maps a resume id deterministically to a worker index.
func (d *Dispatcher) shardIndex(resumeID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(resumeID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.StatusNotice) {
	for {
		select {
		case <-ctx.Done():
			return
		case notice, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Notify(ctx, notice); err != nil {
				d.log.Error().Err(err).
					Str("resume_id", notice.ResumeID).
					Int("worker_id", id).
					Msg("notice delivery failed")
			}
		}
	}
}
