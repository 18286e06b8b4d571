package runtime

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v3"

	configpkg "github.com/drblury/tagflow/internal/runtime/config"
	loggingpkg "github.com/drblury/tagflow/internal/runtime/logging"
)

// Defaults applied when the batching config leaves a field zero.
const (
	defaultFlushInterval = 5 * time.Second
	defaultQueueSize     = 256

	defaultRetryMaxRetries      = 5
	defaultRetryInitialInterval = time.Second
	defaultRetryMaxInterval     = 16 * time.Second
)

type batchEntry struct {
	target  string
	payload map[string]any
}

// batcher coalesces event dispatches into flushes of up to size entries. The
// queue is bounded; a full queue drops the new event and counts the drop.
// Flushes retry with exponential backoff before giving up.
type batcher struct {
	reporter Reporter
	logger   loggingpkg.ServiceLogger
	metrics  *Metrics

	size     int
	interval time.Duration

	maxRetries      uint64
	initialInterval time.Duration
	maxInterval     time.Duration

	queue chan batchEntry
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func newBatcher(reporter Reporter, conf *configpkg.Config, logger loggingpkg.ServiceLogger, metrics *Metrics) *batcher {
	interval := conf.FlushInterval
	if interval <= 0 {
		interval = defaultFlushInterval
	}
	queueSize := conf.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	maxRetries := uint64(defaultRetryMaxRetries)
	if conf.RetryMaxRetries > 0 {
		maxRetries = uint64(conf.RetryMaxRetries)
	}
	initialInterval := conf.RetryInitialInterval
	if initialInterval <= 0 {
		initialInterval = defaultRetryInitialInterval
	}
	maxInterval := conf.RetryMaxInterval
	if maxInterval <= 0 {
		maxInterval = defaultRetryMaxInterval
	}

	b := &batcher{
		reporter:        reporter,
		logger:          logger,
		metrics:         metrics,
		size:            conf.BatchSize,
		interval:        interval,
		maxRetries:      maxRetries,
		initialInterval: initialInterval,
		maxInterval:     maxInterval,
		queue:           make(chan batchEntry, queueSize),
	}

	b.wg.Add(1)
	go b.run()
	return b
}

// Enqueue queues one event for the next flush. It never blocks: when the
// queue is full the event is dropped and counted.
func (b *batcher) Enqueue(target string, payload map[string]any) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		b.drop(target, "queue_closed")
		return
	}

	select {
	case b.queue <- batchEntry{target: target, payload: payload}:
		b.mu.Unlock()
	default:
		b.mu.Unlock()
		b.drop(target, "queue_full")
	}
}

func (b *batcher) drop(target, reason string) {
	if b.metrics != nil {
		b.metrics.RecordDropped(reason)
	}
	b.logger.Debug("Event dropped by batcher", loggingpkg.LogFields{
		"event":  target,
		"reason": reason,
	})
}

// Close stops the batcher and flushes whatever is still queued.
func (b *batcher) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	close(b.queue)
	b.mu.Unlock()

	b.wg.Wait()
}

func (b *batcher) run() {
	defer b.wg.Done()

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	batch := make([]batchEntry, 0, b.size)
	for {
		select {
		case entry, ok := <-b.queue:
			if !ok {
				if len(batch) > 0 {
					b.flush(batch)
				}
				return
			}
			batch = append(batch, entry)
			if len(batch) >= b.size {
				b.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				b.flush(batch)
				batch = batch[:0]
			}
		}
	}
}

func (b *batcher) flush(batch []batchEntry) {
	remaining := batch

	operation := func() error {
		for len(remaining) > 0 {
			entry := remaining[0]
			if err := b.reporter.Report(context.Background(), CommandEvent, entry.target, entry.payload); err != nil {
				return err
			}
			remaining = remaining[1:]
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = b.initialInterval
	bo.MaxInterval = b.maxInterval

	if err := backoff.Retry(operation, backoff.WithMaxRetries(bo, b.maxRetries)); err != nil {
		if b.metrics != nil {
			b.metrics.RecordFailure(string(CommandEvent))
		}
		b.logger.Error("Batch flush failed", err, loggingpkg.LogFields{
			"undelivered": len(remaining),
			"batch_size":  len(batch),
		})
		return
	}

	if b.metrics != nil {
		b.metrics.RecordFlush()
	}
	b.logger.Debug("Batch flushed", loggingpkg.LogFields{"batch_size": len(batch)})
}
