package runtime

import (
	"context"
	"time"

	errspkg "github.com/drblury/tagflow/internal/runtime/errors"
	loggingpkg "github.com/drblury/tagflow/internal/runtime/logging"
)

// State describes where the tracker is in its lifecycle.
type State int

const (
	StateNotInitialized State = iota
	StateInitializing
	StateInitialized
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNotInitialized:
		return "not_initialized"
	case StateInitializing:
		return "initializing"
	case StateInitialized:
		return "initialized"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// initOp is the shared handle for one in-flight initialization. Concurrent
// Init calls join it and receive the same outcome.
type initOp struct {
	done chan struct{}
	err  error
}

// Init loads the reporting backend: it builds the configured sink, wires the
// Reporter, and sends the bootstrap js/config/consent calls. The first
// caller performs the load; concurrent callers while it is in flight block
// on the same operation and share its outcome. A failed tracker restarts the
// full path on the next Init. Init after success is a no-op.
func (t *Tracker) Init(ctx context.Context) error {
	if t.Conf.Disabled {
		return nil
	}

	t.mu.Lock()
	if t.state == StateInitialized {
		t.mu.Unlock()
		return nil
	}
	if t.pending != nil {
		op := t.pending
		t.mu.Unlock()
		<-op.done
		return op.err
	}

	op := &initOp{done: make(chan struct{})}
	t.pending = op
	t.state = StateInitializing
	t.mu.Unlock()

	reporter, b, err := t.load(ctx)

	var discarded Reporter
	var discardedBatcher *batcher

	t.mu.Lock()
	if t.pending == op {
		// Still the active operation; commit the outcome. When Destroy ran
		// in between, the handle was dropped and the result is discarded.
		t.pending = nil
		if err != nil {
			t.state = StateFailed
		} else {
			t.state = StateInitialized
			t.reporter = reporter
			t.batcher = b
		}
	} else if err == nil {
		// Late resolution after Destroy: release what was built.
		discarded = reporter
		discardedBatcher = b
	}
	t.mu.Unlock()

	if discardedBatcher != nil {
		discardedBatcher.Close()
	}
	if discarded != nil && discarded != t.preReporter {
		_ = discarded.Close()
	}

	op.err = err
	close(op.done)
	return err
}

// load performs the actual backend load outside the tracker mutex.
func (t *Tracker) load(ctx context.Context) (Reporter, *batcher, error) {
	reporter := t.preReporter
	if reporter == nil {
		wmLogger := loggingpkg.NewWatermillAdapter(t.Logger)
		built, err := t.registry.Build(ctx, t.Conf, wmLogger)
		if err != nil {
			return nil, nil, errspkg.InitError{Stage: "sink", Err: err}
		}
		reporter, err = NewSinkReporter(built.Publisher, t.Conf.MeasurementID)
		if err != nil {
			return nil, nil, errspkg.InitError{Stage: "sink", Err: err}
		}
	}

	if err := t.bootstrap(ctx, reporter); err != nil {
		if reporter != t.preReporter {
			_ = reporter.Close()
		}
		return nil, nil, err
	}

	var b *batcher
	if t.Conf.BatchSize > 0 {
		b = newBatcher(reporter, t.Conf, t.Logger, t.metrics)
	}

	t.Logger.Info("Tracker initialized", loggingpkg.LogFields{
		"sink_system": t.Conf.GetSinkSystem(),
		"batching":    t.Conf.BatchSize > 0,
	})
	return reporter, b, nil
}

// bootstrap announces the runtime and binds the measurement id on the
// freshly loaded channel, mirroring the js/config/consent bootstrap calls of
// the classic tag loader.
func (t *Tracker) bootstrap(ctx context.Context, reporter Reporter) error {
	if err := reporter.Report(ctx, CommandJS, "", map[string]any{
		"time": time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		return errspkg.InitError{Stage: "bootstrap js", Err: err}
	}

	if err := reporter.Report(ctx, CommandConfig, t.Conf.MeasurementID, t.Conf.CustomConfig); err != nil {
		return errspkg.InitError{Stage: "bootstrap config", Err: err}
	}

	if len(t.Conf.ConsentDefaults) > 0 {
		if err := reporter.Report(ctx, CommandConsent, "default", t.Conf.ConsentDefaults); err != nil {
			return errspkg.InitError{Stage: "bootstrap consent", Err: err}
		}
	}
	return nil
}

// Destroy resets the tracker to its pre-initialized state and releases the
// loaded backend. An in-flight Init may still resolve afterwards but its
// result is not retained. The tracker can be initialized again.
func (t *Tracker) Destroy() {
	t.mu.Lock()
	t.pending = nil
	t.state = StateNotInitialized
	reporter := t.reporter
	b := t.batcher
	t.reporter = t.preReporter
	t.batcher = nil
	t.mu.Unlock()

	if b != nil {
		b.Close()
	}
	if reporter != nil && reporter != t.preReporter {
		if err := reporter.Close(); err != nil {
			t.Logger.Error("Failed to close reporter", err, nil)
		}
	}
	t.Logger.Info("Tracker destroyed", nil)
}

// Close flushes pending batches and releases the backend. Alias for Destroy
// so the tracker satisfies the usual closer shape.
func (t *Tracker) Close() error {
	t.Destroy()
	return nil
}

// State returns the current lifecycle state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Ready reports whether tracking calls will dispatch. A disabled tracker and
// a tracker with a pre-installed Reporter are always ready; otherwise
// readiness requires a successful Init.
func (t *Tracker) Ready() bool {
	if t.Conf.Disabled {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.preReporter != nil || t.state == StateInitialized
}
