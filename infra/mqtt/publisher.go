// Package mqtt publishes run summaries to a broker so downstream consumers
// can react to completed optimizations without polling the output files.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/dkastrati/windlink/config"
	"github.com/dkastrati/windlink/core/model"
	"github.com/dkastrati/windlink/infra/logger"
)

const connectTimeout = 10 * time.Second

// SummaryPublisher announces completed runs.
type SummaryPublisher interface {
	PublishSummary(summary model.RunSummary) error
	Close()
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// PahoPublisher implements SummaryPublisher using Eclipse Paho.
type PahoPublisher struct {
	cli   pahoClient
	topic string
	qos   byte
	log   logger.Logger
}

// NewPahoPublisher connects to the broker described in cfg.
func NewPahoPublisher(cfg config.MQTTConfig) (*PahoPublisher, error) {
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "windlink-" + uuid.NewString()
	}
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(clientID).
		SetConnectTimeout(connectTimeout)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	cli := newMQTTClient(opts)
	token := cli.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("mqtt connect timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &PahoPublisher{cli: cli, topic: cfg.Topic, qos: cfg.QoS, log: logger.New("mqtt-publisher")}, nil
}

// PublishSummary sends the summary as JSON to the configured topic.
func (p *PahoPublisher) PublishSummary(summary model.RunSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	token := p.cli.Publish(p.topic, p.qos, false, payload)
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("publish timeout on %s", p.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish on %s: %w", p.topic, err)
	}
	p.log.Debugw("run summary published", map[string]any{"run_id": summary.RunID, "topic": p.topic})
	return nil
}

// Close disconnects from the broker.
func (p *PahoPublisher) Close() {
	if p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
}
