package http

import (
	"context"
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-http/v2/pkg/http"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drblury/tagflow/sink"
)

func TestRegister(t *testing.T) {
	sink.DefaultRegistry = sink.NewRegistry()
	Register()

	caps := sink.GetCapabilities(SinkName)
	assert.Equal(t, "http", caps.Name)
	assert.True(t, caps.SupportsTracing)
	assert.True(t, caps.SupportsBatching)
}

func TestCapabilities(t *testing.T) {
	caps := Capabilities()
	assert.Equal(t, sink.HTTPCapabilities, caps)
	assert.Equal(t, "http", caps.Name)
}

func TestSinkName(t *testing.T) {
	assert.Equal(t, "http", SinkName)
}

func TestBuild(t *testing.T) {
	t.Run("creates sink with mocked factory", func(t *testing.T) {
		originalPubFactory := PublisherFactory
		defer func() { PublisherFactory = originalPubFactory }()

		mockPub := &mockPublisher{}

		PublisherFactory = func(cfg http.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
			require.NotNil(t, cfg.MarshalMessageFunc)

			msg := message.NewMessage("uuid-1", []byte(`{"name":"page_view"}`))
			req, err := cfg.MarshalMessageFunc("events", msg)
			require.NoError(t, err)

			q := req.URL.Query()
			assert.Equal(t, "G-ABC123DEF4", q.Get("measurement_id"))
			assert.Equal(t, "secret", q.Get("api_secret"))
			assert.Equal(t, "events", q.Get("topic"))

			return mockPub, nil
		}

		cfg := &mockConfig{
			collectURL:    "https://collect.example.com/mp/collect",
			measurementID: "G-ABC123DEF4",
			apiSecret:     "secret",
		}
		s, err := Build(context.Background(), cfg, watermill.NopLogger{})

		require.NoError(t, err)
		assert.Equal(t, mockPub, s.Publisher)
	})

	t.Run("returns error when publisher factory fails", func(t *testing.T) {
		originalPubFactory := PublisherFactory
		defer func() { PublisherFactory = originalPubFactory }()

		PublisherFactory = func(cfg http.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
			return nil, errors.New("publisher error")
		}

		cfg := &mockConfig{collectURL: "https://collect.example.com"}
		_, err := Build(context.Background(), cfg, watermill.NopLogger{})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "publisher error")
	})
}

func TestCollectRequestURL(t *testing.T) {
	t.Run("appends identity and topic", func(t *testing.T) {
		target, err := collectRequestURL("https://collect.example.com/mp/collect", "events", "G-ABC123DEF4", "s3cret")
		require.NoError(t, err)
		assert.Contains(t, target, "measurement_id=G-ABC123DEF4")
		assert.Contains(t, target, "api_secret=s3cret")
		assert.Contains(t, target, "topic=events")
	})

	t.Run("omits empty values", func(t *testing.T) {
		target, err := collectRequestURL("https://collect.example.com/mp/collect", "", "", "")
		require.NoError(t, err)
		assert.Equal(t, "https://collect.example.com/mp/collect", target)
	})

	t.Run("preserves existing query parameters", func(t *testing.T) {
		target, err := collectRequestURL("https://collect.example.com/mp/collect?v=2", "events", "G-ABC123DEF4", "")
		require.NoError(t, err)
		assert.Contains(t, target, "v=2")
		assert.Contains(t, target, "measurement_id=G-ABC123DEF4")
	})
}

type mockConfig struct {
	collectURL    string
	measurementID string
	apiSecret     string
}

func (m *mockConfig) GetSinkSystem() string         { return "http" }
func (m *mockConfig) GetMeasurementID() string      { return m.measurementID }
func (m *mockConfig) GetAPISecret() string          { return m.apiSecret }
func (m *mockConfig) GetCollectURL() string         { return m.collectURL }
func (m *mockConfig) GetKafkaBrokers() []string     { return nil }
func (m *mockConfig) GetKafkaClientID() string      { return "" }
func (m *mockConfig) GetNATSURL() string            { return "" }
func (m *mockConfig) GetRabbitMQURL() string        { return "" }
func (m *mockConfig) GetAWSRegion() string          { return "" }
func (m *mockConfig) GetAWSAccountID() string       { return "" }
func (m *mockConfig) GetAWSAccessKeyID() string     { return "" }
func (m *mockConfig) GetAWSSecretAccessKey() string { return "" }
func (m *mockConfig) GetAWSEndpoint() string        { return "" }

type mockPublisher struct{}

func (m *mockPublisher) Publish(topic string, messages ...*message.Message) error { return nil }
func (m *mockPublisher) Close() error                                             { return nil }
