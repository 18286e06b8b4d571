package sink

// Capabilities describes the delivery characteristics of a sink backend.
// Use this to introspect what guarantees the configured delivery path gives.
type Capabilities struct {
	// SupportsOrdering indicates the sink preserves publish order end to end.
	// The runtime makes no ordering promise beyond what the sink gives.
	SupportsOrdering bool

	// SupportsBatching indicates the sink can coalesce multiple events into
	// one outbound call.
	SupportsBatching bool

	// Durable indicates events survive a delivery-side restart once the
	// publish call returns.
	Durable bool

	// SupportsTracing indicates the sink propagates tracing headers natively.
	SupportsTracing bool

	// MaxMessageSize is the maximum payload size in bytes (0 = unlimited/unknown).
	MaxMessageSize int64

	// Name is the human-readable name of the sink.
	Name string

	// Version is the sink/driver version.
	Version string
}

// Predefined capability sets for the built-in sinks.
var (
	// ChannelCapabilities for the in-memory Go channel sink.
	ChannelCapabilities = Capabilities{
		Name:             "channel",
		SupportsOrdering: true,
	}

	// HTTPCapabilities for the collect-endpoint HTTP sink.
	HTTPCapabilities = Capabilities{
		Name:             "http",
		SupportsTracing:  true,
		SupportsBatching: true,
	}

	// KafkaCapabilities for the Apache Kafka relay sink.
	KafkaCapabilities = Capabilities{
		Name:             "kafka",
		SupportsOrdering: true,
		SupportsBatching: true,
		Durable:          true,
		SupportsTracing:  true,
		MaxMessageSize:   1048576, // Default 1MB
	}

	// NATSCapabilities for the NATS Core relay sink.
	NATSCapabilities = Capabilities{
		Name:            "nats",
		SupportsTracing: true,
		MaxMessageSize:  1048576, // Default 1MB
	}

	// NATSJetStreamCapabilities for the NATS JetStream relay sink.
	NATSJetStreamCapabilities = Capabilities{
		Name:             "nats-jetstream",
		SupportsOrdering: true,
		SupportsBatching: true,
		Durable:          true,
		SupportsTracing:  true,
		MaxMessageSize:   1048576, // Default 1MB
	}

	// RabbitMQCapabilities for the RabbitMQ/AMQP relay sink.
	RabbitMQCapabilities = Capabilities{
		Name:             "rabbitmq",
		SupportsOrdering: true,
		Durable:          true,
		SupportsTracing:  true,
	}

	// AWSCapabilities for the AWS SNS relay sink.
	AWSCapabilities = Capabilities{
		Name:             "aws",
		SupportsOrdering: true,
		SupportsBatching: true,
		Durable:          true,
		SupportsTracing:  true,
		MaxMessageSize:   262144, // 256KB
	}
)

// GetCapabilities returns the capabilities for a sink by name.
// Uses the registry to look up capabilities registered by each sink package.
// Returns a zero Capabilities struct if the sink is unknown.
func GetCapabilities(sinkName string) Capabilities {
	return DefaultRegistry.GetCapabilities(sinkName)
}
