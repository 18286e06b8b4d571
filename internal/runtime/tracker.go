// Package runtime implements the tracking runtime: the Tracker lifecycle,
// the dispatch pipeline, and one tracking method per action family.
package runtime

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	configpkg "github.com/drblury/tagflow/internal/runtime/config"
	errspkg "github.com/drblury/tagflow/internal/runtime/errors"
	eventpkg "github.com/drblury/tagflow/internal/runtime/event"
	loggingpkg "github.com/drblury/tagflow/internal/runtime/logging"
	"github.com/drblury/tagflow/sink"
)

// PageInfo is the ambient page context of the hosting environment. Page view
// tracking falls back to it when the caller does not supply a path.
type PageInfo struct {
	Path     string
	Title    string
	Referrer string
}

// EnvInfo supplies the ambient page context. Leave nil when the hosting
// environment has no notion of a current page.
type EnvInfo func() PageInfo

// Dependencies holds the optional collaborators of a Tracker. Leave fields
// nil to use the defaults.
type Dependencies struct {
	// Reporter, when set, is used as the reporting channel without building a
	// sink. This covers environments where the channel is already installed;
	// the tracker treats it as ready immediately.
	Reporter Reporter

	// SinkRegistry overrides the registry used to build the delivery sink.
	// Nil uses the default registry.
	SinkRegistry *sink.Registry

	// EnvInfo supplies ambient page context for page view fallbacks.
	EnvInfo EnvInfo

	// Registerer receives the Prometheus collectors when metrics are enabled.
	// Nil uses the default registerer.
	Registerer prometheus.Registerer
}

// Tracker turns structured business events into calls against a single
// reporting channel and manages the lifecycle of that channel's
// availability. All methods are safe for concurrent use.
type Tracker struct {
	Conf   *configpkg.Config
	Logger loggingpkg.ServiceLogger

	registry *sink.Registry
	envInfo  EnvInfo
	metrics  *Metrics

	mu          sync.Mutex
	state       State
	pending     *initOp
	reporter    Reporter
	preReporter Reporter
	batcher     *batcher
}

// NewTracker constructs a Tracker and panics when the configuration is
// unusable. Use TryNewTracker to receive the error instead.
func NewTracker(conf *configpkg.Config, log loggingpkg.ServiceLogger, deps Dependencies) *Tracker {
	t, err := TryNewTracker(conf, log, deps)
	if err != nil {
		panic(err)
	}
	return t
}

// TryNewTracker constructs a Tracker for the supplied configuration.
// Construction fails fast on an unusable configuration; it does not load the
// reporting backend. Call Init to do that, or supply a pre-installed
// Reporter in deps.
func TryNewTracker(conf *configpkg.Config, log loggingpkg.ServiceLogger, deps Dependencies) (*Tracker, error) {
	if conf == nil {
		return nil, errspkg.ErrConfigRequired
	}
	if log == nil {
		return nil, errspkg.ErrLoggerRequired
	}
	if err := errspkg.NewConfigError(conf.Validate()); err != nil {
		return nil, err
	}

	log.Info("Creating tracker", loggingpkg.LogFields{
		"sink_system": conf.GetSinkSystem(),
		"config":      conf,
	})

	registry := deps.SinkRegistry
	if registry == nil {
		registry = sink.DefaultRegistry
	}

	t := &Tracker{
		Conf:        conf,
		Logger:      log,
		registry:    registry,
		envInfo:     deps.EnvInfo,
		state:       StateNotInitialized,
		reporter:    deps.Reporter,
		preReporter: deps.Reporter,
	}

	if conf.MetricsEnabled {
		t.metrics = NewMetrics(deps.Registerer)
		if err := t.metrics.Register(); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		t.startMetricsServer()
	}

	return t, nil
}

func (t *Tracker) startMetricsServer() {
	if t.Conf.MetricsPort <= 0 {
		return
	}
	addr := fmt.Sprintf(":%d", t.Conf.MetricsPort)
	t.Logger.Info("Starting metrics server", loggingpkg.LogFields{"address": addr})
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", t.metrics.Handler())
		if err := http.ListenAndServe(addr, mux); err != nil {
			t.Logger.Error("Failed to start metrics server", err, loggingpkg.LogFields{"address": addr})
		}
	}()
}

func (t *Tracker) currentReporter() Reporter {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reporter
}

func (t *Tracker) currentBatcher() *batcher {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.batcher
}

// track runs the shared tail of every tracking method: merge per-call
// params, build the canonical event, and dispatch it. Domain validation has
// already happened in the caller; from here on nothing is surfaced to the
// caller.
func (t *Tracker) track(ctx context.Context, name string, params map[string]any, category eventpkg.Category, opts []TrackOption) {
	settings := applyTrackOptions(opts)

	if params == nil {
		params = make(map[string]any)
	}
	if settings.transportHint != "" {
		params["transport_type"] = settings.transportHint
	}
	for k, v := range settings.params {
		params[k] = v
	}

	ev := eventpkg.New(name, params, category)
	t.dispatch(ctx, ev, settings)
}

func (t *Tracker) dispatch(ctx context.Context, ev eventpkg.Event, settings trackSettings) {
	if t.Conf.Disabled {
		return
	}

	if !t.Ready() {
		if t.metrics != nil {
			t.metrics.RecordDropped("not_ready")
		}
		if t.Conf.Debug || settings.debug {
			t.Logger.Debug("Tracker not ready, event dropped", loggingpkg.LogFields{
				"event":    ev.Name,
				"category": string(ev.Category),
			})
		}
		return
	}

	tracer := otel.Tracer("tagflow-tracker")
	ctx, span := tracer.Start(ctx, "DispatchEvent", trace.WithAttributes(
		attribute.String("event.name", ev.Name),
		attribute.String("event.category", string(ev.Category)),
		attribute.String("event.id", ev.ID),
	))
	defer span.End()

	if b := t.currentBatcher(); b != nil && !settings.immediate {
		b.Enqueue(ev.Name, ev.Params)
		if t.metrics != nil {
			t.metrics.RecordDispatched(string(ev.Category))
		}
		return
	}

	reporter := t.currentReporter()
	if reporter == nil {
		if t.metrics != nil {
			t.metrics.RecordDropped("no_reporter")
		}
		return
	}

	if err := reporter.Report(ctx, CommandEvent, ev.Name, ev.Params); err != nil {
		if t.metrics != nil {
			t.metrics.RecordFailure(string(CommandEvent))
		}
		if t.Conf.Debug || settings.debug {
			t.Logger.Error("Event dispatch failed", err, loggingpkg.LogFields{
				"event":    ev.Name,
				"category": string(ev.Category),
			})
		}
		if settings.onError != nil {
			go settings.onError(err)
		}
		return
	}

	if t.metrics != nil {
		t.metrics.RecordDispatched(string(ev.Category))
	}
	if t.Conf.Debug || settings.debug {
		t.Logger.Debug("Event dispatched", loggingpkg.LogFields{
			"event":    ev.Name,
			"category": string(ev.Category),
			"event_id": ev.ID,
		})
	}
}

// currency resolves the effective currency code for an e-commerce event.
func (t *Tracker) currency(override string) string {
	if override != "" {
		return override
	}
	return t.Conf.DefaultCurrency()
}
