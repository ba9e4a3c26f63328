package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/SextoAndar/sexto-andar-auth/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher routes account events to a fixed set of workers using consistent
// hashing on the account id, guaranteeing per-account delivery ordering.
// Delivery is asynchronous: admin mutations never wait on the webhook target.
type Dispatcher struct {
	workers []chan ports.AccountEvent
	sink    ports.EventSink
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.EventSink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.AccountEvent, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.AccountEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Publish sends an event to the worker responsible for its account id.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Publish(event ports.AccountEvent) {
	d.workers[d.shardIndex(event.AccountID)] <- event
}

// shardIndex maps an account id deterministically to a worker index.
func (d *Dispatcher) shardIndex(accountID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(accountID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.AccountEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sink.Deliver(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("event_type", event.Type).
					Str("account_id", event.AccountID).
					Int("worker_id", id).
					Msg("event delivery failed")
			}
		}
	}
}
