// Package telemetry publishes run events to an MQTT broker as JSON.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	paho "github.com/eclipse/paho.mqtt.golang"
)

// Event is the JSON payload published for each run event.
type Event struct {
	Type      string    `json:"type"` // started, finished, restarted, impact
	Game      string    `json:"game"`
	Seed      int64     `json:"seed"`
	Segments  int       `json:"segments"`
	ElapsedMS int64     `json:"elapsed_ms"`
	Source    string    `json:"source,omitempty"`
	Intensity float64   `json:"intensity,omitempty"`
	At        time.Time `json:"at"`
}

// Publisher sends run events somewhere. Publish must not block the tick loop.
type Publisher interface {
	Publish(e Event)
	Close()
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(Event) {}
func (Nop) Close()        {}

// Options configures the MQTT publisher.
type Options struct {
	Broker   string
	Topic    string
	ClientID string
}

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
)

// client is the subset of paho.Client the publisher uses.
type client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Disconnect(quiesce uint)
}

// MQTT publishes events with QoS 0 on a single topic.
type MQTT struct {
	mu     sync.Mutex
	client client
	topic  string
	logger *log.Logger
	wg     sync.WaitGroup
	closed bool
}

// Connect dials the broker. It fails rather than blocking when the broker is down.
func Connect(opts Options, logger *log.Logger) (*MQTT, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "telemetry"})
	}
	co := paho.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetAutoReconnect(true).
		SetConnectRetryInterval(5 * time.Second).
		SetKeepAlive(30 * time.Second)

	c := paho.NewClient(co)
	token := c.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("telemetry: connect to %s timed out", opts.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("telemetry: connect to %s: %w", opts.Broker, err)
	}
	logger.Info("connected", "broker", opts.Broker, "topic", opts.Topic)
	return newMQTT(c, opts.Topic, logger), nil
}

func newMQTT(c client, topic string, logger *log.Logger) *MQTT {
	return &MQTT{client: c, topic: topic, logger: logger}
}

// Publish encodes e and hands it to the client. Delivery errors are logged.
func (m *MQTT) Publish(e Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		m.logger.Error("encode event", "type", e.Type, "error", err)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	token := m.client.Publish(m.topic, 0, false, payload)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if !token.WaitTimeout(publishTimeout) {
			m.logger.Warn("publish timed out", "type", e.Type)
			return
		}
		if err := token.Error(); err != nil {
			m.logger.Warn("publish failed", "type", e.Type, "error", err)
		}
	}()
}

// Close waits for in-flight publishes and disconnects.
func (m *MQTT) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.mu.Unlock()

	m.wg.Wait()
	m.client.Disconnect(250)
}
