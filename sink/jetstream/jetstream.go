// Package jetstream provides a NATS JetStream relay sink for tagflow.
// Unlike the core NATS sink, publishes are acknowledged by the server, so
// delivery is durable once Publish returns.
package jetstream

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/nats-io/nats.go"

	"github.com/drblury/tagflow/sink"
)

// SinkName is the name used to register this sink.
const SinkName = "nats-jetstream"

// HeaderMessageUUID carries the watermill message UUID on the NATS message.
const HeaderMessageUUID = "Tf-Message-Uuid"

// ConnectFactory allows overriding the NATS connection creation for testing.
var ConnectFactory = func(url string) (*nats.Conn, error) {
	return nats.Connect(url)
}

func init() {
	Register()
}

// Register registers the JetStream sink with the default registry.
func Register() {
	sink.RegisterWithCapabilities(SinkName, Build, sink.NATSJetStreamCapabilities)
}

// Build creates a new JetStream sink.
func Build(ctx context.Context, cfg sink.Config, logger watermill.LoggerAdapter) (sink.Sink, error) {
	conn, err := ConnectFactory(cfg.GetNATSURL())
	if err != nil {
		return sink.Sink{}, fmt.Errorf("jetstream: connect failed: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return sink.Sink{}, fmt.Errorf("jetstream: context failed: %w", err)
	}

	return sink.Sink{Publisher: &publisher{conn: conn, js: js, logger: logger}}, nil
}

type publisher struct {
	conn   *nats.Conn
	js     nats.JetStreamContext
	logger watermill.LoggerAdapter
}

// Publish sends each message to the topic as a JetStream subject and waits
// for the server acknowledgment.
func (p *publisher) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		natsMsg := &nats.Msg{
			Subject: topic,
			Data:    msg.Payload,
			Header:  nats.Header{},
		}
		natsMsg.Header.Set(HeaderMessageUUID, msg.UUID)
		for key, value := range msg.Metadata {
			natsMsg.Header.Set(key, value)
		}

		if _, err := p.js.PublishMsg(natsMsg); err != nil {
			p.logger.Error("JetStream publish failed", err, watermill.LogFields{
				"subject":      topic,
				"message_uuid": msg.UUID,
			})
			return fmt.Errorf("jetstream: publish to %q failed: %w", topic, err)
		}
	}
	return nil
}

func (p *publisher) Close() error {
	p.conn.Close()
	return nil
}

// Capabilities returns the capabilities of this sink.
func Capabilities() sink.Capabilities {
	return sink.NATSJetStreamCapabilities
}
