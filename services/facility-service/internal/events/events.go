// Package events publishes facility-service domain events to Kafka.
package events

import (
	"context"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/md-rashed-zaman/facilitycal/libs/httpx"
	"github.com/md-rashed-zaman/facilitycal/libs/kafkax"
	"github.com/segmentio/kafka-go"
)

// Topic names double as event types.
const (
	TopicVisitDateResolved = "facility.visit_date.resolved"
	TopicHolidaysImported  = "facility.holidays.imported"
)

type VisitDateResolved struct {
	Facility    string    `json:"facility"`
	SuggestedAt time.Time `json:"suggested_at"`
	AvailableAt time.Time `json:"available_at"`
	BestEffort  bool      `json:"best_effort"`
	Country     string    `json:"country,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
	ResolvedAt  time.Time `json:"resolved_at"`
}

type HolidaysImported struct {
	Countries []string  `json:"countries"`
	Count     int       `json:"count"`
	At        time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes JSON events with envelope and trace headers.
type KafkaPublisher struct {
	w      messageWriter
	source string
	now    func() time.Time
}

// NewKafkaPublisher tags every event with source, normally the service name.
func NewKafkaPublisher(brokers []string, source string) *KafkaPublisher {
	return &KafkaPublisher{w: kafkax.NewWriter(brokers), source: source, now: time.Now}
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic, key string, payload any) error {
	ctx, span := kafkax.StartPublishSpan(ctx, topic, key)
	defer span.End()

	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		return err
	}
	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: body,
		Headers: kafkax.Meta{
			EventID:    uuid.NewString(),
			EventType:  topic,
			RequestID:  httpx.RequestIDFromContext(ctx),
			Source:     p.source,
			OccurredAt: p.now(),
		}.Headers(),
	}
	msg.Headers = kafkax.InjectTraceHeaders(ctx, msg.Headers)
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (p *KafkaPublisher) Close() error { return p.w.Close() }

// LogPublisher only logs events. It is used when no brokers are configured.
type LogPublisher struct {
	Logger *slog.Logger
}

func (p LogPublisher) Publish(_ context.Context, topic, key string, _ any) error {
	p.Logger.Debug("event not published (kafka disabled)", "topic", topic, "key", key)
	return nil
}

func (LogPublisher) Close() error { return nil }
