package services

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/bako110/Sonaby/config"
	"github.com/bako110/Sonaby/models"
)

// SOSMessage is the payload published when an alert fires
type SOSMessage struct {
	AlertID       uint      `json:"alert_id"`
	CheckpointID  uint      `json:"checkpoint_id"`
	Checkpoint    string    `json:"checkpoint"`
	Site          string    `json:"site,omitempty"`
	SOSIdentifier string    `json:"sos_identifier"`
	Message       string    `json:"message,omitempty"`
	SentBy        uint      `json:"sent_by"`
	SentAt        time.Time `json:"sent_at"`
}

// InterfaceNotifier dispatches SOS alerts to the security channel.
// Dispatch is best effort: callers persist the alert first and treat a
// failed publish as a degraded success, never as an operation failure.
type InterfaceNotifier interface {
	NotifySOS(alert *models.SOSAlert, checkpoint *models.Checkpoint) error
	Connect() error
	Disconnect()
}

// MQTTNotifier publishes alerts to the configured MQTT topic
type MQTTNotifier struct {
	client mqtt.Client
	topic  string
}

// NewMQTTNotifier builds the notifier; Connect must be called before
// the first publish.
func NewMQTTNotifier(cfg *config.Config) InterfaceNotifier {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBrokerURL).
		SetClientID(cfg.MQTTClientID).
		SetUsername(cfg.MQTTUsername).
		SetPassword(cfg.MQTTPassword).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectTimeout(10 * time.Second)

	return &MQTTNotifier{
		client: mqtt.NewClient(opts),
		topic:  cfg.MQTTSOSTopic,
	}
}

// Connect establishes the broker session
func (n *MQTTNotifier) Connect() error {
	token := n.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return fmt.Errorf("mqtt connect timed out")
	}
	return token.Error()
}

// Disconnect closes the broker session
func (n *MQTTNotifier) Disconnect() {
	n.client.Disconnect(250)
}

// NotifySOS publishes the alert with QoS 1 so the security console
// receives it at least once while connected.
func (n *MQTTNotifier) NotifySOS(alert *models.SOSAlert, checkpoint *models.Checkpoint) error {
	msg := SOSMessage{
		AlertID:      alert.ID,
		CheckpointID: alert.CheckpointID,
		Message:      alert.Message,
		SentBy:       alert.SentBy,
		SentAt:       alert.CreatedAt,
	}
	if checkpoint != nil {
		msg.Checkpoint = checkpoint.Name
		msg.SOSIdentifier = checkpoint.SOSIdentifier
		if checkpoint.Site != nil {
			msg.Site = checkpoint.Site.Name
		}
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	token := n.client.Publish(n.topic, 1, false, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("mqtt publish timed out")
	}
	return token.Error()
}
