package queue

import (
	"context"
	"fmt"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/studiodesk/schedule-system/internal/core/domain"
	"github.com/studiodesk/schedule-system/internal/core/ports"
	"github.com/studiodesk/schedule-system/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// ErrStopped is returned for work submitted after the dispatcher shut down.
// It wraps domain.ErrStoreUnavailable so callers see a retryable outage.
var ErrStopped = fmt.Errorf("write dispatcher stopped: %w", domain.ErrStoreUnavailable)

var _ ports.WriteSerializer = (*Dispatcher)(nil)

type job struct {
	ctx  context.Context
	key  string
	fn   func(ctx context.Context) error
	done chan error
}

// Dispatcher runs write sections on a fixed set of workers using consistent
// hashing on the key, so sections for the same worksheet run one at a time
// in submission order.
type Dispatcher struct {
	workers []chan job
	stopped chan struct{}
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan job, numWorkers),
		stopped: make(chan struct{}),
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan job, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled
// and later Do calls fail with ErrStopped.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
	go func() {
		<-ctx.Done()
		close(d.stopped)
	}()
}

// Do queues fn on the worker owning key and waits for its result.
func (d *Dispatcher) Do(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	idx := d.shardIndex(key)
	j := job{ctx: ctx, key: key, fn: fn, done: make(chan error, 1)}
	depth := metrics.WriteQueueDepth.WithLabelValues(strconv.Itoa(idx))

	select {
	case <-d.stopped:
		return ErrStopped
	default:
	}

	depth.Inc()
	select {
	case d.workers[idx] <- j:
	case <-ctx.Done():
		depth.Dec()
		return ctx.Err()
	case <-d.stopped:
		depth.Dec()
		return ErrStopped
	}

	select {
	case err := <-j.done:
		return err
	case <-ctx.Done():
		// The worker skips the job once it sees the cancelled context.
		return ctx.Err()
	case <-d.stopped:
		return ErrStopped
	}
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan job) {
	depth := metrics.WriteQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-ch:
			depth.Dec()
			j.done <- d.run(id, j)
		}
	}
}

func (d *Dispatcher) run(id int, j job) (err error) {
	if err := j.ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("write section %s panicked: %v", j.key, r)
			d.log.Error().Str("key", j.key).Int("worker_id", id).Interface("panic", r).Msg("write section panicked")
		}
		metrics.WriteDuration.WithLabelValues(j.key).Observe(time.Since(start).Seconds())
	}()

	if err := j.fn(j.ctx); err != nil {
		d.log.Debug().Err(err).Str("key", j.key).Int("worker_id", id).Msg("write section failed")
		return err
	}
	return nil
}
