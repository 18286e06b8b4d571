package runtime

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	configpkg "github.com/drblury/tagflow/internal/runtime/config"
	loggingpkg "github.com/drblury/tagflow/internal/runtime/logging"
	"github.com/drblury/tagflow/sink"
)

const testMeasurementID = "G-ABC123DEF4"

func newTestSlogLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newTestLogger() loggingpkg.ServiceLogger {
	return loggingpkg.NewSlogServiceLogger(newTestSlogLogger())
}

type testPublisher struct {
	mu       sync.Mutex
	messages map[string][]*message.Message
	err      error
	closed   bool
}

func (p *testPublisher) Publish(topic string, messages ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	if p.messages == nil {
		p.messages = make(map[string][]*message.Message)
	}
	p.messages[topic] = append(p.messages[topic], messages...)
	return nil
}

func (p *testPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *testPublisher) MessagesOn(topic string) []*message.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	clone := make([]*message.Message, len(p.messages[topic]))
	copy(clone, p.messages[topic])
	return clone
}

func (p *testPublisher) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

type reportCall struct {
	command Command
	target  string
	payload map[string]any
}

type testReporter struct {
	mu     sync.Mutex
	calls  []reportCall
	err    error
	closed bool
}

func (r *testReporter) Report(_ context.Context, command Command, target string, payload map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.calls = append(r.calls, reportCall{command: command, target: target, payload: payload})
	return nil
}

func (r *testReporter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *testReporter) Calls() []reportCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := make([]reportCall, len(r.calls))
	copy(clone, r.calls)
	return clone
}

func (r *testReporter) CallsFor(command Command) []reportCall {
	var out []reportCall
	for _, call := range r.Calls() {
		if call.command == command {
			out = append(out, call)
		}
	}
	return out
}

func (r *testReporter) LastEvent(t *testing.T) reportCall {
	t.Helper()
	events := r.CallsFor(CommandEvent)
	if len(events) == 0 {
		t.Fatal("no event calls recorded")
	}
	return events[len(events)-1]
}

func (r *testReporter) setErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func testConfig() *configpkg.Config {
	return &configpkg.Config{
		MeasurementID: testMeasurementID,
		SinkSystem:    "test",
	}
}

func newTestRegistry(pub *testPublisher) *sink.Registry {
	reg := sink.NewRegistry()
	reg.Register("test", func(ctx context.Context, cfg sink.Config, logger watermill.LoggerAdapter) (sink.Sink, error) {
		return sink.Sink{Publisher: pub}, nil
	})
	return reg
}

// newReporterTracker builds a tracker around a pre-installed test reporter,
// ready to dispatch without Init.
func newReporterTracker(t *testing.T, conf *configpkg.Config) (*Tracker, *testReporter) {
	t.Helper()
	if conf == nil {
		conf = testConfig()
	}
	rep := &testReporter{}
	tracker, err := TryNewTracker(conf, newTestLogger(), Dependencies{Reporter: rep})
	if err != nil {
		t.Fatalf("TryNewTracker failed: %v", err)
	}
	return tracker, rep
}
