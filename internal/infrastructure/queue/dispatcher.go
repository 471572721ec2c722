package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/confiteria/conference-system/internal/api/metrics"
	"github.com/confiteria/conference-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes ticket jobs to a fixed set of workers using consistent
// hashing on the user ID, so two jobs for the same participant never run
// concurrently in this process.
type Dispatcher struct {
	workers []chan ports.TicketJob
	service ports.TicketService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.TicketService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.TicketJob, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.TicketJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a job to the worker responsible for its user.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(job ports.TicketJob) {
	i := d.shardIndex(job.UserID)
	d.workers[i] <- job
	metrics.TicketsQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// EnqueueBatch enqueues multiple jobs preserving per-user ordering.
func (d *Dispatcher) EnqueueBatch(jobs []ports.TicketJob) {
	for _, j := range jobs {
		d.Enqueue(j)
	}
}

// shardIndex maps a user ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.TicketJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			metrics.TicketsQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.service.Process(ctx, job); err != nil {
				metrics.TicketsErrorsTotal.Inc()
				d.log.Error().Err(err).
					Str("user_id", job.UserID).
					Str("participation_id", job.ParticipationID).
					Int("worker_id", id).
					Msg("ticket dispatch failed")
				continue
			}
			metrics.TicketsDispatchedTotal.Inc()
		}
	}
}
