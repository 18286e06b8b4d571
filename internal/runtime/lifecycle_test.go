package runtime

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"

	configpkg "github.com/drblury/tagflow/internal/runtime/config"
	errspkg "github.com/drblury/tagflow/internal/runtime/errors"
	"github.com/drblury/tagflow/sink"
)

func TestInitTransitionsToInitialized(t *testing.T) {
	pub := &testPublisher{}
	tracker, err := TryNewTracker(testConfig(), newTestLogger(), Dependencies{
		SinkRegistry: newTestRegistry(pub),
	})
	if err != nil {
		t.Fatalf("TryNewTracker failed: %v", err)
	}

	if tracker.State() != StateNotInitialized {
		t.Fatalf("state before Init = %v", tracker.State())
	}
	if tracker.Ready() {
		t.Fatal("tracker should not be ready before Init")
	}

	if err := tracker.Init(context.Background()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if tracker.State() != StateInitialized {
		t.Errorf("state after Init = %v", tracker.State())
	}
	if !tracker.Ready() {
		t.Error("tracker should be ready after Init")
	}

	// Bootstrap: js then config on the control topic.
	control := pub.MessagesOn(TopicControl)
	if len(control) != 2 {
		t.Fatalf("control messages = %d, want 2", len(control))
	}
	if got := control[0].Metadata.Get("command"); got != string(CommandJS) {
		t.Errorf("first bootstrap command = %q", got)
	}
	if got := control[1].Metadata.Get("command"); got != string(CommandConfig) {
		t.Errorf("second bootstrap command = %q", got)
	}
	if got := control[1].Metadata.Get("target"); got != testMeasurementID {
		t.Errorf("config target = %q", got)
	}
}

func TestInitSendsConsentDefaults(t *testing.T) {
	pub := &testPublisher{}
	conf := testConfig()
	conf.ConsentDefaults = map[string]any{"analytics_storage": "denied"}

	tracker, err := TryNewTracker(conf, newTestLogger(), Dependencies{
		SinkRegistry: newTestRegistry(pub),
	})
	if err != nil {
		t.Fatalf("TryNewTracker failed: %v", err)
	}
	if err := tracker.Init(context.Background()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	control := pub.MessagesOn(TopicControl)
	if len(control) != 3 {
		t.Fatalf("control messages = %d, want 3", len(control))
	}
	if got := control[2].Metadata.Get("command"); got != string(CommandConsent) {
		t.Errorf("third bootstrap command = %q", got)
	}
	if got := control[2].Metadata.Get("target"); got != "default" {
		t.Errorf("consent target = %q", got)
	}
}

func TestInitFailureSetsFailedAndRetries(t *testing.T) {
	var builds atomic.Int32
	pub := &testPublisher{}
	reg := sink.NewRegistry()
	reg.Register("test", func(ctx context.Context, cfg sink.Config, logger watermill.LoggerAdapter) (sink.Sink, error) {
		if builds.Add(1) == 1 {
			return sink.Sink{}, errors.New("broker unavailable")
		}
		return sink.Sink{Publisher: pub}, nil
	})

	tracker, err := TryNewTracker(testConfig(), newTestLogger(), Dependencies{SinkRegistry: reg})
	if err != nil {
		t.Fatalf("TryNewTracker failed: %v", err)
	}

	err = tracker.Init(context.Background())
	if err == nil {
		t.Fatal("expected Init to fail")
	}
	var initErr errspkg.InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected InitError, got %T: %v", err, err)
	}
	if tracker.State() != StateFailed {
		t.Errorf("state after failed Init = %v", tracker.State())
	}
	if tracker.Ready() {
		t.Error("tracker should not be ready after failed Init")
	}

	// Failed restarts the full path.
	if err := tracker.Init(context.Background()); err != nil {
		t.Fatalf("retry Init failed: %v", err)
	}
	if tracker.State() != StateInitialized {
		t.Errorf("state after retry = %v", tracker.State())
	}
	if builds.Load() != 2 {
		t.Errorf("builds = %d, want 2", builds.Load())
	}
}

func TestConcurrentInitJoinsSingleLoad(t *testing.T) {
	var builds atomic.Int32
	pub := &testPublisher{}
	reg := sink.NewRegistry()
	reg.Register("test", func(ctx context.Context, cfg sink.Config, logger watermill.LoggerAdapter) (sink.Sink, error) {
		builds.Add(1)
		time.Sleep(20 * time.Millisecond)
		return sink.Sink{Publisher: pub}, nil
	})

	tracker, err := TryNewTracker(testConfig(), newTestLogger(), Dependencies{SinkRegistry: reg})
	if err != nil {
		t.Fatalf("TryNewTracker failed: %v", err)
	}

	const goroutines = 10
	var wg sync.WaitGroup
	errs := make([]error, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs[n] = tracker.Init(context.Background())
		}(i)
	}
	wg.Wait()

	for n, err := range errs {
		if err != nil {
			t.Errorf("goroutine %d: Init failed: %v", n, err)
		}
	}
	if builds.Load() != 1 {
		t.Errorf("builds = %d, want 1", builds.Load())
	}
	if tracker.State() != StateInitialized {
		t.Errorf("state = %v", tracker.State())
	}
}

func TestInitAfterSuccessIsNoop(t *testing.T) {
	var builds atomic.Int32
	pub := &testPublisher{}
	reg := sink.NewRegistry()
	reg.Register("test", func(ctx context.Context, cfg sink.Config, logger watermill.LoggerAdapter) (sink.Sink, error) {
		builds.Add(1)
		return sink.Sink{Publisher: pub}, nil
	})

	tracker, err := TryNewTracker(testConfig(), newTestLogger(), Dependencies{SinkRegistry: reg})
	if err != nil {
		t.Fatalf("TryNewTracker failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := tracker.Init(context.Background()); err != nil {
			t.Fatalf("Init %d failed: %v", i, err)
		}
	}
	if builds.Load() != 1 {
		t.Errorf("builds = %d, want 1", builds.Load())
	}
}

func TestDestroyResetsAndAllowsReinit(t *testing.T) {
	var builds atomic.Int32
	pub := &testPublisher{}
	reg := sink.NewRegistry()
	reg.Register("test", func(ctx context.Context, cfg sink.Config, logger watermill.LoggerAdapter) (sink.Sink, error) {
		builds.Add(1)
		return sink.Sink{Publisher: pub}, nil
	})

	tracker, err := TryNewTracker(testConfig(), newTestLogger(), Dependencies{SinkRegistry: reg})
	if err != nil {
		t.Fatalf("TryNewTracker failed: %v", err)
	}
	if err := tracker.Init(context.Background()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	tracker.Destroy()

	if tracker.State() != StateNotInitialized {
		t.Errorf("state after Destroy = %v", tracker.State())
	}
	if tracker.Ready() {
		t.Error("tracker should not be ready after Destroy")
	}
	if !pub.Closed() {
		t.Error("publisher should be closed on Destroy")
	}

	if err := tracker.Init(context.Background()); err != nil {
		t.Fatalf("re-Init failed: %v", err)
	}
	if tracker.State() != StateInitialized {
		t.Errorf("state after re-Init = %v", tracker.State())
	}
	if builds.Load() != 2 {
		t.Errorf("builds = %d, want 2", builds.Load())
	}
}

func TestDisabledTracker(t *testing.T) {
	conf := &configpkg.Config{Disabled: true}
	tracker, err := TryNewTracker(conf, newTestLogger(), Dependencies{})
	if err != nil {
		t.Fatalf("TryNewTracker failed: %v", err)
	}

	if !tracker.Ready() {
		t.Error("disabled tracker should report ready")
	}
	if err := tracker.Init(context.Background()); err != nil {
		t.Errorf("Init on disabled tracker = %v", err)
	}
	if tracker.State() != StateNotInitialized {
		t.Errorf("disabled Init should not change state, got %v", tracker.State())
	}

	// Tracking is a silent no-op.
	if err := tracker.TrackLogin(context.Background(), Login{Method: "email"}); err != nil {
		t.Errorf("TrackLogin on disabled tracker = %v", err)
	}
}

func TestPreinstalledReporterIsReadyWithoutInit(t *testing.T) {
	tracker, rep := newReporterTracker(t, nil)

	if !tracker.Ready() {
		t.Fatal("tracker with pre-installed reporter should be ready")
	}

	if err := tracker.TrackLogin(context.Background(), Login{Method: "email"}); err != nil {
		t.Fatalf("TrackLogin failed: %v", err)
	}
	events := rep.CallsFor(CommandEvent)
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}

	// Init still performs the bootstrap over the installed reporter.
	if err := tracker.Init(context.Background()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if len(rep.CallsFor(CommandJS)) != 1 {
		t.Error("expected a js bootstrap call")
	}
	if len(rep.CallsFor(CommandConfig)) != 1 {
		t.Error("expected a config bootstrap call")
	}
}

func TestConstructionFailsFast(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := TryNewTracker(nil, newTestLogger(), Dependencies{})
		if !errors.Is(err, errspkg.ErrConfigRequired) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("nil logger", func(t *testing.T) {
		_, err := TryNewTracker(testConfig(), nil, Dependencies{})
		if !errors.Is(err, errspkg.ErrLoggerRequired) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("missing measurement id", func(t *testing.T) {
		_, err := TryNewTracker(&configpkg.Config{}, newTestLogger(), Dependencies{})
		var confErr errspkg.ConfigError
		if !errors.As(err, &confErr) {
			t.Errorf("expected ConfigError, got %T: %v", err, err)
		}
	})

	t.Run("malformed measurement id", func(t *testing.T) {
		_, err := TryNewTracker(&configpkg.Config{MeasurementID: "UA-12345-6"}, newTestLogger(), Dependencies{})
		var confErr errspkg.ConfigError
		if !errors.As(err, &confErr) {
			t.Errorf("expected ConfigError, got %T: %v", err, err)
		}
	})

	t.Run("disabled skips identity validation", func(t *testing.T) {
		if _, err := TryNewTracker(&configpkg.Config{Disabled: true}, newTestLogger(), Dependencies{}); err != nil {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("NewTracker panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		NewTracker(nil, newTestLogger(), Dependencies{})
	})
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		StateNotInitialized: "not_initialized",
		StateInitializing:   "initializing",
		StateInitialized:    "initialized",
		StateFailed:         "failed",
		State(42):           "unknown",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}
