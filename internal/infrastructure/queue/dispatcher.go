package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/social-network/internal/api/metrics"
	"github.com/99minutos/social-network/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Repairer is the subset of ports.RelationshipService the dispatcher drives.
type Repairer interface {
	Repair(ctx context.Context, accountID string) (ports.RepairReport, error)
}

// Summary aggregates the outcome of every repair pass run by a Dispatcher.
type Summary struct {
	Accounts int
	Changed  int
	Failed   int
}

// Dispatcher routes account repairs to a fixed set of workers using
// consistent hashing on the account ID, so passes for one account never run
// concurrently with each other.
type Dispatcher struct {
	workers  []chan string
	repairer Repairer
	log      zerolog.Logger

	wg      sync.WaitGroup
	mu      sync.Mutex
	summary Summary
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repairer Repairer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan string, numWorkers),
		repairer: repairer,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled
// or after Close once their channel drains.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an account to the worker responsible for it. It blocks while
// that worker's buffer is full and gives up with ctx's error once ctx is done.
func (d *Dispatcher) Enqueue(ctx context.Context, accountID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	idx := d.shardIndex(accountID)
	select {
	case d.workers[idx] <- accountID:
	case <-ctx.Done():
		return ctx.Err()
	}
	metrics.RepairQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	return nil
}

// EnqueueBatch enqueues accounts in order and stops at the first failure.
func (d *Dispatcher) EnqueueBatch(ctx context.Context, accountIDs []string) error {
	for _, id := range accountIDs {
		if err := d.Enqueue(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Close stops accepting work. Enqueue must not be called afterwards.
func (d *Dispatcher) Close() {
	for _, ch := range d.workers {
		close(ch)
	}
}

// Wait blocks until every worker has exited and returns the summary.
func (d *Dispatcher) Wait() Summary {
	d.wg.Wait()
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.summary
}

// shardIndex maps an account ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(accountID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(accountID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for {
		select {
		case <-ctx.Done():
			return
		case accountID, ok := <-ch:
			if !ok {
				return
			}
			metrics.RepairQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.process(ctx, id, accountID)
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, workerID int, accountID string) {
	report, err := d.repairer.Repair(ctx, accountID)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.summary.Accounts++

	switch {
	case err != nil:
		d.summary.Failed++
		metrics.RepairsTotal.WithLabelValues("error").Inc()
		d.log.Error().Err(err).
			Str("account_id", accountID).
			Int("worker_id", workerID).
			Msg("relationship repair failed")
	case report.Changed():
		d.summary.Changed++
		metrics.RepairsTotal.WithLabelValues("fixed").Inc()
	default:
		metrics.RepairsTotal.WithLabelValues("clean").Inc()
	}
}
