package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/staylink/booking-api/internal/api/metrics"
	"github.com/staylink/booking-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	jobTimeout     = 10 * time.Second
)

// Dispatcher routes rating recomputations to a fixed set of workers using
// consistent hashing on the property id, so recomputes for one property never
// run concurrently.
type Dispatcher struct {
	workers []chan string
	ratings ports.RatingRecalculator
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, ratings ports.RatingRecalculator, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		ratings: ratings,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Schedule queues a recompute for propertyID. It never blocks the caller:
// when the worker's channel is full the request is dropped and logged.
func (d *Dispatcher) Schedule(propertyID string) {
	idx := d.shardIndex(propertyID)
	depth := metrics.RatingQueueDepth.WithLabelValues(strconv.Itoa(idx))
	// Counted before the send so the worker's Dec never runs first.
	depth.Inc()
	select {
	case d.workers[idx] <- propertyID:
	default:
		depth.Dec()
		metrics.RatingDroppedTotal.Inc()
		d.log.Warn().Str("property_id", propertyID).Int("worker_id", idx).Msg("rating queue full, recompute dropped")
	}
}

// shardIndex maps a property id deterministically to a worker index.
func (d *Dispatcher) shardIndex(propertyID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(propertyID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	depth := metrics.RatingQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case propertyID, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			d.process(ctx, id, propertyID)
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, worker int, propertyID string) {
	jobCtx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	start := time.Now()
	err := d.ratings.RecalculateRating(jobCtx, propertyID)
	result := "ok"
	if err != nil {
		result = "error"
		d.log.Error().Err(err).
			Str("property_id", propertyID).
			Int("worker_id", worker).
			Msg("rating recompute failed")
	}
	metrics.RatingRecomputeDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}
