package events

import (
	"context"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/md-rashed-zaman/facilitycal/libs/httpx"
	"github.com/md-rashed-zaman/facilitycal/libs/kafkax"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs []kafka.Message
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestKafkaPublisher_Publish(t *testing.T) {
	rw := &recordingWriter{}
	at := time.Date(2024, time.January, 3, 10, 0, 0, 0, time.UTC)
	p := &KafkaPublisher{w: rw, source: "facility-service", now: func() time.Time { return at }}
	ctx := httpx.ContextWithRequestID(context.Background(), "req-1")

	err := p.Publish(ctx, TopicVisitDateResolved, "clinic", VisitDateResolved{Facility: "clinic", AvailableAt: at})
	require.NoError(t, err)
	require.Len(t, rw.msgs, 1)

	msg := rw.msgs[0]
	assert.Equal(t, TopicVisitDateResolved, msg.Topic)
	assert.Equal(t, "clinic", string(msg.Key))
	meta := kafkax.MetaFrom(msg.Headers)
	assert.Equal(t, TopicVisitDateResolved, meta.EventType)
	assert.NotEmpty(t, meta.EventID)
	assert.Equal(t, "req-1", meta.RequestID)
	assert.Equal(t, "facility-service", meta.Source)
	assert.True(t, meta.OccurredAt.Equal(at))

	var got VisitDateResolved
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.True(t, got.AvailableAt.Equal(at))
}
