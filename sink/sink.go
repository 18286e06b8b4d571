// Package sink defines the core interfaces and types for tagflow delivery
// backends. Each sink implementation (channel, http, kafka, etc.) lives in
// its own sub-package and registers itself with the sink registry. A sink is
// publisher-only: the measurement client emits events, it never consumes them.
package sink

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Sink wraps the publisher produced by a builder.
type Sink struct {
	Publisher message.Publisher
}

// Builder is the function signature for creating a sink from config.
// Each sink package should provide a Builder function that can be registered.
type Builder func(ctx context.Context, cfg Config, logger watermill.LoggerAdapter) (Sink, error)

// Config provides the configuration values needed by sinks. This interface
// allows sinks to access only the config they need without depending on the
// full config package.
type Config interface {
	// GetSinkSystem returns the sink type name.
	GetSinkSystem() string

	// Measurement identity
	GetMeasurementID() string
	GetAPISecret() string

	// HTTP collect endpoint
	GetCollectURL() string

	// Kafka
	GetKafkaBrokers() []string
	GetKafkaClientID() string

	// NATS (core and JetStream)
	GetNATSURL() string

	// RabbitMQ
	GetRabbitMQURL() string

	// AWS
	GetAWSRegion() string
	GetAWSAccountID() string
	GetAWSAccessKeyID() string
	GetAWSSecretAccessKey() string
	GetAWSEndpoint() string
}

// CapabilitiesProvider is implemented by sinks that can report their capabilities.
type CapabilitiesProvider interface {
	Capabilities() Capabilities
}
