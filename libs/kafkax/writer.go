package kafkax

import (
	"time"

	"github.com/segmentio/kafka-go"
)

// NewWriter returns a writer that routes each message by its Topic field and
// hashes keys so one aggregate always lands on the same partition.
func NewWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
}
