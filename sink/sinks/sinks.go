// Package sinks imports all built-in sinks for auto-registration.
// Import this package to have all sinks registered with the default registry.
package sinks

import (
	// Import all sinks for side-effect registration
	_ "github.com/drblury/tagflow/sink/aws"
	_ "github.com/drblury/tagflow/sink/channel"
	_ "github.com/drblury/tagflow/sink/http"
	_ "github.com/drblury/tagflow/sink/jetstream"
	_ "github.com/drblury/tagflow/sink/kafka"
	_ "github.com/drblury/tagflow/sink/nats"
	_ "github.com/drblury/tagflow/sink/rabbitmq"
)
