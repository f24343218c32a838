package kafkax

import (
	"time"

	"github.com/segmentio/kafka-go"
)

// Header keys carried on every message.
const (
	HeaderEventID    = "event_id"
	HeaderEventType  = "event_type"
	HeaderRequestID  = "request_id"
	HeaderSource     = "source"
	HeaderOccurredAt = "occurred_at"
)

// Meta is the envelope metadata of an event, written as message headers so
// consumers can route and dedupe without decoding the payload.
type Meta struct {
	EventID    string
	EventType  string
	RequestID  string
	Source     string
	OccurredAt time.Time
}

// Headers renders m. Empty optional fields are omitted.
func (m Meta) Headers() []kafka.Header {
	headers := []kafka.Header{
		{Key: HeaderEventID, Value: []byte(m.EventID)},
		{Key: HeaderEventType, Value: []byte(m.EventType)},
	}
	if m.RequestID != "" {
		headers = append(headers, kafka.Header{Key: HeaderRequestID, Value: []byte(m.RequestID)})
	}
	if m.Source != "" {
		headers = append(headers, kafka.Header{Key: HeaderSource, Value: []byte(m.Source)})
	}
	if !m.OccurredAt.IsZero() {
		headers = append(headers, kafka.Header{Key: HeaderOccurredAt, Value: []byte(m.OccurredAt.UTC().Format(time.RFC3339Nano))})
	}
	return headers
}

// MetaFrom reads the envelope back. An unparsable occurred_at is left zero.
func MetaFrom(headers []kafka.Header) Meta {
	m := Meta{
		EventID:   HeaderValue(headers, HeaderEventID),
		EventType: HeaderValue(headers, HeaderEventType),
		RequestID: HeaderValue(headers, HeaderRequestID),
		Source:    HeaderValue(headers, HeaderSource),
	}
	if raw := HeaderValue(headers, HeaderOccurredAt); raw != "" {
		m.OccurredAt, _ = time.Parse(time.RFC3339Nano, raw)
	}
	return m
}

func HeaderValue(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
