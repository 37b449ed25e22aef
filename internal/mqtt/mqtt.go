// Package mqtt publishes run summaries to an MQTT broker.
package mqtt

import (
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	timeout    = 5 * time.Second
	quiesceMS  = 250
	defaultCID = "iconset"
)

// Options describes the broker connection and message properties.
type Options struct {
	Broker   string // e.g. tcp://localhost:1883
	ClientID string // defaults to "iconset"
	Topic    string
	QoS      byte
	Retain   bool
	Username string
	Password string
}

// Publish connects, sends payload to opts.Topic and disconnects. There is
// no long-lived client: a run publishes at most once.
func Publish(opts Options, payload []byte) error {
	if opts.Broker == "" {
		return fmt.Errorf("mqtt: no broker")
	}
	if opts.Topic == "" {
		return fmt.Errorf("mqtt: no topic")
	}
	if opts.QoS > 2 {
		return fmt.Errorf("mqtt: qos %d out of range 0-2", opts.QoS)
	}
	cid := opts.ClientID
	if cid == "" {
		cid = defaultCID
	}

	co := pahomqtt.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(cid).
		SetConnectTimeout(timeout).
		SetAutoReconnect(false)
	if opts.Username != "" {
		co.SetUsername(opts.Username)
	}
	if opts.Password != "" {
		co.SetPassword(opts.Password)
	}

	client := pahomqtt.NewClient(co)
	tok := client.Connect()
	if !tok.WaitTimeout(timeout) {
		return fmt.Errorf("mqtt: connect to %s: timeout", opts.Broker)
	}
	if err := tok.Error(); err != nil {
		return fmt.Errorf("mqtt: connect to %s: %w", opts.Broker, err)
	}
	defer client.Disconnect(quiesceMS)

	pub := client.Publish(opts.Topic, opts.QoS, opts.Retain, payload)
	if !pub.WaitTimeout(timeout) {
		return fmt.Errorf("mqtt: publish %s: timeout", opts.Topic)
	}
	if err := pub.Error(); err != nil {
		return fmt.Errorf("mqtt: publish %s: %w", opts.Topic, err)
	}
	return nil
}
