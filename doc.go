// Package tagflow is a measurement-event tracking runtime on top of Watermill.
// It turns structured business actions (page views, searches, the full
// e-commerce funnel) into canonical events, normalizes them, and publishes
// them through a pluggable delivery sink. The reporting backend is loaded
// lazily and exactly once: concurrent Init calls join a single load, and
// tracking calls made before the backend is ready are absorbed without error.
//
// A minimal setup fills Config, creates a Tracker, calls Init, and starts
// tracking:
//
//	conf := &tagflow.Config{
//		MeasurementID: "G-ABC123DEF4",
//		SinkSystem:    "channel",
//	}
//	tracker := tagflow.NewTracker(conf, logger, tagflow.Dependencies{})
//	if err := tracker.Init(ctx); err != nil {
//		// backend unavailable; tracking calls degrade to no-ops
//	}
//	tracker.TrackPageView(ctx, tagflow.PageView{Path: "/home"})
//
// # Sinks
//
// Tagflow supports 7 delivery sinks out of the box:
//   - channel: In-memory Go channels for testing
//   - http: Direct POST delivery to a collect endpoint
//   - kafka: High-throughput streaming
//   - nats: High-performance messaging
//   - nats-jetstream: NATS with persistence
//   - rabbitmq: AMQP-based durable queues
//   - aws: AWS SNS with LocalStack support
//
// Sinks register themselves on import; pull in the ones you need via blank
// imports, or import sink/sinks to get all of them:
//
//	import _ "github.com/drblury/tagflow/sink/kafka"
//
// # Event pipeline
//
// Every tracking method validates its required fields synchronously and
// returns an error on caller misuse; everything after validation is fire and
// forget. E-commerce values and item prices round half-up to two decimals and
// item quantities default to 1. Delivery failures are logged and counted but
// never surfaced to the tracking call; use WithOnError to observe them.
//
// # Batching
//
// Setting Config.BatchSize enables a batching layer with a bounded queue,
// interval flushes, and exponential-backoff retries. WithImmediate bypasses
// the batcher for a single call.
package tagflow
