// Package notify publishes zone command events to an MQTT broker.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"irrigation_gateway/internal/logger"
	"irrigation_gateway/internal/models"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	connectTimeout    = 10 * time.Second
	publishTimeout    = 5 * time.Second
	disconnectQuiesce = 250 // milliseconds
	keepAlive         = 60 * time.Second
	maxQoS            = 2
)

var (
	ErrConnect     = errors.New("mqtt connect failed")
	ErrInvalidQoS  = errors.New("invalid qos: must be 0, 1 or 2")
	ErrEmptyTopic  = errors.New("mqtt topic is empty")
	ErrEmptyBroker = errors.New("mqtt broker is empty")
)

// Config selects the broker and topic.
type Config struct {
	Broker   string // tcp://host:1883
	ClientID string
	Topic    string
	Username string
	Password string
	QoS      byte
}

// publisher is the slice of pahomqtt.Client the notifier uses.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload any) pahomqtt.Token
	Disconnect(quiesce uint)
}

// MQTT publishes each event as JSON. Failures are logged and dropped.
type MQTT struct {
	client  publisher
	topic   string
	qos     byte
	timeout time.Duration
	log     *logger.Logger
}

// NewMQTT connects to the broker. Paho keeps reconnecting in the background afterwards.
func NewMQTT(cfg Config, log *logger.Logger) (*MQTT, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	opts := pahomqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout).
		SetKeepAlive(keepAlive)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		log.Warnw("mqtt_connection_lost", "broker", cfg.Broker, "err", err)
	})

	client := pahomqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnect, connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	return newMQTT(client, cfg, log), nil
}

func newMQTT(client publisher, cfg Config, log *logger.Logger) *MQTT {
	if log == nil {
		log = logger.Nop()
	}
	return &MQTT{client: client, topic: cfg.Topic, qos: cfg.QoS, timeout: publishTimeout, log: log}
}

// Notify publishes ev and waits up to the publish timeout or ctx, whichever ends first.
func (m *MQTT) Notify(ctx context.Context, ev models.ZoneEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		m.log.Errorw("event_encode_failed", "event_id", ev.EventID, "err", err)
		return
	}

	token := m.client.Publish(m.topic, m.qos, false, payload)
	timer := time.NewTimer(m.timeout)
	defer timer.Stop()
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			m.log.Warnw("event_publish_failed", "event_id", ev.EventID, "topic", m.topic, "err", err)
			return
		}
		m.log.Debugw("event_published", "event_id", ev.EventID, "type", ev.Type, "topic", m.topic)
	case <-timer.C:
		m.log.Warnw("event_publish_failed", "event_id", ev.EventID, "topic", m.topic, "err", "timeout")
	case <-ctx.Done():
		m.log.Warnw("event_publish_failed", "event_id", ev.EventID, "topic", m.topic, "err", ctx.Err())
	}
}

// Close disconnects after letting in-flight publishes finish.
func (m *MQTT) Close() {
	m.client.Disconnect(disconnectQuiesce)
}

func (c Config) validate() error {
	switch {
	case c.Broker == "":
		return ErrEmptyBroker
	case c.Topic == "":
		return ErrEmptyTopic
	case c.QoS > maxQoS:
		return ErrInvalidQoS
	}
	return nil
}
