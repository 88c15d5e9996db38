package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/lifeline/response-dashboard/internal/core/domain"
	"github.com/lifeline/response-dashboard/internal/core/ports"
	"github.com/lifeline/response-dashboard/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	publishTimeout = 5 * time.Second
)

// ErrQueueFull is returned by Publish when the worker for the event's kind is saturated.
var ErrQueueFull = errors.New("change queue full")

// Dispatcher moves change announcements off the request path. Events are routed to a fixed
// set of workers by hashing the record kind, so announcements of one kind keep their order.
// Each worker hands its events to the backend publisher.
type Dispatcher struct {
	workers []chan ports.ChangeEvent
	backend ports.ChangePublisher
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, backend ports.ChangePublisher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ChangeEvent, numWorkers),
		backend: backend,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ChangeEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Publish queues event for its kind's worker without blocking.
func (d *Dispatcher) Publish(_ context.Context, event ports.ChangeEvent) error {
	idx := d.shardIndex(event.Kind)
	select {
	case d.workers[idx] <- event:
		metrics.ChangeQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return nil
	default:
		return ErrQueueFull
	}
}

// shardIndex maps a kind deterministically to a worker index.
func (d *Dispatcher) shardIndex(kind domain.Kind) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(kind))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ChangeEvent) {
	depth := metrics.ChangeQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))

			pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
			err := d.backend.Publish(pubCtx, event)
			cancel()
			if err != nil {
				d.log.Error().Err(err).
					Str("kind", string(event.Kind)).
					Int("worker_id", id).
					Msg("change publish failed")
			}
		}
	}
}
