// Package channel provides an in-memory Go channel sink for tagflow.
// This sink is useful for testing and local development: events published
// through it can be consumed in-process via the Subscriber.
package channel

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/drblury/tagflow/sink"
)

// SinkName is the name used to register this sink.
const SinkName = "channel"

// Factory allows overriding the channel creation for testing.
var Factory = func(cfg gochannel.Config, logger watermill.LoggerAdapter) *gochannel.GoChannel {
	return gochannel.NewGoChannel(cfg, logger)
}

func init() {
	Register()
}

// Register registers the channel sink with the default registry.
func Register() {
	sink.RegisterWithCapabilities(SinkName, Build, sink.ChannelCapabilities)
}

// Build creates a new Go channel sink.
func Build(ctx context.Context, cfg sink.Config, logger watermill.LoggerAdapter) (sink.Sink, error) {
	pubSub := Factory(gochannel.Config{}, logger)
	return sink.Sink{Publisher: pubSub}, nil
}

// NewPubSub returns a gochannel pub/sub pair for tests that want to consume
// what the tracker publishes. The returned value satisfies both
// message.Publisher and message.Subscriber.
func NewPubSub(logger watermill.LoggerAdapter) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{}, logger)
}

// Subscribe is a convenience wrapper for consuming a topic from a pub/sub
// created by NewPubSub.
func Subscribe(ctx context.Context, pubSub *gochannel.GoChannel, topic string) (<-chan *message.Message, error) {
	return pubSub.Subscribe(ctx, topic)
}

// Capabilities returns the capabilities of this sink.
func Capabilities() sink.Capabilities {
	return sink.ChannelCapabilities
}
