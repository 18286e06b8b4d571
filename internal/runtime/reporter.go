package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	errspkg "github.com/drblury/tagflow/internal/runtime/errors"
	idspkg "github.com/drblury/tagflow/internal/runtime/ids"
	"github.com/drblury/tagflow/internal/runtime/jsoncodec"
)

// Command names the kind of call sent to the reporting channel. The command
// set mirrors the classic measurement bootstrap protocol: "js" announces the
// runtime, "config" binds the measurement id, "consent" sets consent state,
// and "event" carries a tracked event.
type Command string

const (
	CommandJS      Command = "js"
	CommandConfig  Command = "config"
	CommandConsent Command = "consent"
	CommandEvent   Command = "event"
)

// Topics the default reporter publishes to. Event traffic and control
// traffic (js/config/consent) are kept on separate topics so relays can
// route them independently.
const (
	TopicEvents  = "tagflow_events"
	TopicControl = "tagflow_control"
)

// Reporter is the single registered reporting channel. The tracker holds at
// most one and sends every bootstrap call and event through it. Implementing
// it with a test double is the supported way to intercept dispatches.
type Reporter interface {
	Report(ctx context.Context, command Command, target string, payload map[string]any) error
	Close() error
}

type envelope struct {
	Command       Command        `json:"command"`
	Target        string         `json:"target,omitempty"`
	Payload       map[string]any `json:"payload,omitempty"`
	MeasurementID string         `json:"measurement_id,omitempty"`
	SentAt        time.Time      `json:"sent_at"`
}

type sinkReporter struct {
	publisher     message.Publisher
	measurementID string
}

// NewSinkReporter wraps a sink publisher as a Reporter. Every call is
// marshalled into a JSON envelope and published with a fresh ULID message
// UUID; event commands go to TopicEvents, everything else to TopicControl.
func NewSinkReporter(publisher message.Publisher, measurementID string) (Reporter, error) {
	if publisher == nil {
		return nil, errspkg.ErrPublisherRequired
	}
	return &sinkReporter{
		publisher:     publisher,
		measurementID: measurementID,
	}, nil
}

func (r *sinkReporter) Report(ctx context.Context, command Command, target string, payload map[string]any) error {
	data, err := jsoncodec.Marshal(envelope{
		Command:       command,
		Target:        target,
		Payload:       payload,
		MeasurementID: r.measurementID,
		SentAt:        time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s call: %w", command, err)
	}

	msg := message.NewMessage(idspkg.NewEventID(), data)
	msg.Metadata.Set("command", string(command))
	if r.measurementID != "" {
		msg.Metadata.Set("measurement_id", r.measurementID)
	}
	if target != "" {
		msg.Metadata.Set("target", target)
	}
	if ctx != nil {
		msg.SetContext(ctx)
	}

	topic := TopicControl
	if command == CommandEvent {
		topic = TopicEvents
	}
	return r.publisher.Publish(topic, msg)
}

func (r *sinkReporter) Close() error {
	return r.publisher.Close()
}
