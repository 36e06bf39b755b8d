// FilePath: internal/events/kafka.go
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	nuts "github.com/vaudience/go-nuts"
	"github.com/weatherstation/api-server/internal/config"
	"github.com/weatherstation/api-server/internal/models"
)

const (
	MeasurementCreated = "measurement.created"
	MeasurementDeleted = "measurement.deleted"
)

// MessageWriter is the subset of *kafka.Writer the publisher needs
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// MeasurementEvent is the payload written to the measurements topic
type MeasurementEvent struct {
	Event       string              `json:"event"`
	Measurement *models.Measurement `json:"measurement"`
	EmittedAt   time.Time           `json:"emitted_at"`
}

// Publisher forwards measurement events to Kafka, keyed by sensor id so
// that readings of one sensor stay ordered within a partition.
type Publisher struct {
	writer  MessageWriter
	timeout time.Duration
}

func NewPublisher(writer MessageWriter) *Publisher {
	return &Publisher{writer: writer, timeout: 5 * time.Second}
}

// NewKafkaWriter builds the writer used in production
func NewKafkaWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
}

func (p *Publisher) Publish(ctx context.Context, event string, m *models.Measurement) error {
	payload, err := json.Marshal(MeasurementEvent{
		Event:       event,
		Measurement: m,
		EmittedAt:   time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(m.SensorID.String()),
		Value: payload,
		Time:  m.CreatedAt,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(event)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s event: %w", event, err)
	}
	nuts.L.Debugf("[Events] Published %s for measurement %s", event, m.ID)
	return nil
}

// Handler adapts Publish to the service event listeners. Failures are
// logged; the originating request has already succeeded.
func (p *Publisher) Handler(event string) func(m *models.Measurement) {
	return func(m *models.Measurement) {
		if err := p.Publish(context.Background(), event, m); err != nil {
			nuts.L.Errorf("[Events] %v", err)
		}
	}
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
