// Package http provides a collect-endpoint HTTP sink for tagflow. Events are
// POSTed to the configured collect URL, one request per published message,
// with the measurement id and API secret carried as query parameters the way
// measurement-protocol endpoints expect them.
package http

import (
	"context"
	nethttp "net/http"
	"net/url"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-http/v2/pkg/http"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/drblury/tagflow/sink"
)

// SinkName is the name used to register this sink.
const SinkName = "http"

// PublisherFactory allows overriding the publisher creation for testing.
var PublisherFactory = func(config http.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
	return http.NewPublisher(config, logger)
}

func init() {
	Register()
}

// Register registers the HTTP sink with the default registry.
func Register() {
	sink.RegisterWithCapabilities(SinkName, Build, sink.HTTPCapabilities)
}

// Build creates a new HTTP sink.
func Build(ctx context.Context, cfg sink.Config, logger watermill.LoggerAdapter) (sink.Sink, error) {
	collectURL := cfg.GetCollectURL()
	measurementID := cfg.GetMeasurementID()
	apiSecret := cfg.GetAPISecret()

	publisher, err := PublisherFactory(
		http.PublisherConfig{
			MarshalMessageFunc: func(topic string, msg *message.Message) (*nethttp.Request, error) {
				target, err := collectRequestURL(collectURL, topic, measurementID, apiSecret)
				if err != nil {
					return nil, err
				}
				return http.DefaultMarshalMessageFunc(target, msg)
			},
		},
		logger,
	)
	if err != nil {
		return sink.Sink{}, err
	}

	return sink.Sink{Publisher: publisher}, nil
}

func collectRequestURL(base, topic, measurementID, apiSecret string) (string, error) {
	parsed, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := parsed.Query()
	if measurementID != "" {
		q.Set("measurement_id", measurementID)
	}
	if apiSecret != "" {
		q.Set("api_secret", apiSecret)
	}
	if topic != "" {
		q.Set("topic", topic)
	}
	parsed.RawQuery = q.Encode()
	return parsed.String(), nil
}

// Capabilities returns the capabilities of this sink.
func Capabilities() sink.Capabilities {
	return sink.HTTPCapabilities
}
