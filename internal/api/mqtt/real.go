package mqtt

import (
	"context"
	"errors"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/oshokin/security-system/internal/config"
	"github.com/oshokin/security-system/internal/logger"
)

const (
	connectTimeout    = 10 * time.Second
	publishTimeout    = 5 * time.Second
	reconnectInterval = 5 * time.Second
	disconnectQuiesce = 1000
	qosAtLeastOnce    = 1
)

var errConnectTimeout = errors.New("connection timeout")

// RealClient talks to an actual MQTT broker.
type RealClient struct {
	client paho.Client
	ctx    context.Context
}

// Dial connects to the broker described by cfg.
func Dial(ctx context.Context, cfg config.MQTTConfig) (*RealClient, error) {
	ctx = logger.WithName(ctx, "mqtt")

	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(reconnectInterval).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			logger.WarnKV(ctx, "MQTT connection lost", "error", err)
		})

	client := paho.NewClient(opts)

	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, errConnectTimeout
	}

	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	logger.InfoKV(ctx, "Connected to MQTT broker", "broker", cfg.Broker)

	return &RealClient{client: client, ctx: ctx}, nil
}

// Publish hands payload to paho and checks delivery in the background,
// so callers holding locks are never blocked by the network.
func (c *RealClient) Publish(topic string, retained bool, payload []byte) error {
	token := c.client.Publish(topic, qosAtLeastOnce, retained, payload)

	go func() {
		if !token.WaitTimeout(publishTimeout) {
			logger.WarnKV(c.ctx, "Publish timeout", "topic", topic)
			return
		}

		if err := token.Error(); err != nil {
			logger.ErrorKV(c.ctx, "Publish failed", "topic", topic, "error", err)
		}
	}()

	return nil
}

// Subscribe registers handler for topic.
func (c *RealClient) Subscribe(topic string, handler func(topic string, payload []byte)) error {
	token := c.client.Subscribe(topic, qosAtLeastOnce, func(_ paho.Client, msg paho.Message) {
		handler(msg.Topic(), msg.Payload())
	})

	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("subscribe %s: %w", topic, errConnectTimeout)
	}

	if err := token.Error(); err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}

	return nil
}

// Close disconnects from the broker.
func (c *RealClient) Close() error {
	c.client.Disconnect(disconnectQuiesce)

	return nil
}
