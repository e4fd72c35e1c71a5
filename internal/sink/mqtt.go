package sink

import (
	"strings"

	"github.com/CristiGvl/picoSensingKit/internal/logger"
	"github.com/CristiGvl/picoSensingKit/internal/sensor"
)

// Publisher sends a payload to a topic.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// MQTT publishes every reading to <prefix>/<kind>. Failures are logged; the
// reading is dropped.
type MQTT struct {
	publisher Publisher
	codec     Codec
	prefix    string
	logger    logger.Logger
}

var _ sensor.Listener = (*MQTT)(nil)

func NewMQTT(publisher Publisher, codec Codec, prefix string, log logger.Logger) *MQTT {
	if log == nil {
		log = logger.Default()
	}
	return &MQTT{
		publisher: publisher,
		codec:     codec,
		prefix:    strings.TrimSuffix(prefix, "/"),
		logger:    log,
	}
}

// Topic returns the topic readings of kind are published to.
func (m *MQTT) Topic(kind sensor.Kind) string {
	if m.prefix == "" {
		return kind.String()
	}
	return m.prefix + "/" + kind.String()
}

func (m *MQTT) OnReading(kind sensor.Kind, reading sensor.Reading) {
	payload, err := m.codec.Encode(Message{Kind: kind.String(), Reading: reading})
	if err != nil {
		m.logger.Errorw("failed to encode reading", "kind", kind.String(), "codec", m.codec.Name(), "error", err)
		return
	}

	topic := m.Topic(kind)
	if err := m.publisher.Publish(topic, payload); err != nil {
		m.logger.Warnw("failed to publish reading", "topic", topic, "error", err)
	}
}
