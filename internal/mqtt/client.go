package mqtt

import (
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"

	"github.com/CristiGvl/picoSensingKit/internal/logger"
)

const (
	_defaultQoS      = 0 // At most once
	_defaultRetained = false
	_publishTimeout  = 5 * time.Second
	_connectTimeout  = 5 * time.Second
)

type ClientOpts struct {
	Broker   string
	ClientID string
	Username string
	Password string
}

// Client publishes raw payloads to an MQTT broker.
type Client struct {
	client paho.Client
	logger logger.Logger
}

// NewClient connects to the broker. The connection is re-established
// automatically when lost.
func NewClient(opts ClientOpts, log logger.Logger) (*Client, error) {
	if log == nil {
		log = logger.Default()
	}

	pahoOpts := paho.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetUsername(opts.Username).
		SetPassword(opts.Password).
		SetOnConnectHandler(func(paho.Client) {
			log.Infow("connected to MQTT broker", "broker", opts.Broker)
		}).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Errorw("connection lost to MQTT broker", "broker", opts.Broker, "error", err)
		}).
		SetAutoReconnect(true).
		SetKeepAlive(10 * time.Second).
		SetConnectTimeout(_connectTimeout)

	client := paho.NewClient(pahoOpts)
	token := client.Connect()
	if !token.WaitTimeout(_connectTimeout) {
		return nil, errors.Errorf("connecting to MQTT broker %s: timed out", opts.Broker)
	}
	if token.Error() != nil {
		return nil, errors.Wrapf(token.Error(), "connecting to MQTT broker %s", opts.Broker)
	}

	return newClient(client, log), nil
}

func newClient(client paho.Client, log logger.Logger) *Client {
	return &Client{client: client, logger: log}
}

// Publish sends payload to topic and waits for the broker to take it.
func (c *Client) Publish(topic string, payload []byte) error {
	token := c.client.Publish(topic, _defaultQoS, _defaultRetained, payload)
	if !token.WaitTimeout(_publishTimeout) {
		return errors.Errorf("publishing to topic %s: timed out", topic)
	}
	if token.Error() != nil {
		return errors.Wrapf(token.Error(), "publishing to topic %s", topic)
	}
	return nil
}

func (c *Client) Disconnect() {
	waitForInMilliseconds := 5 * 1000
	c.client.Disconnect(uint(waitForInMilliseconds))
}
