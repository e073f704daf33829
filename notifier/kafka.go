package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaSource reads JSON-encoded events from a Kafka topic and feeds them
// onto the channel the Center consumes. The Center itself stays transport
// agnostic.
type KafkaSource struct {
	reader *kafka.Reader
	log    *zap.Logger
}

// NewKafkaSource configures a consumer-group reader for the events topic.
func NewKafkaSource(brokers []string, groupID, topic string, log *zap.Logger) *KafkaSource {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topic:             topic,
		MinBytes:          10e3,
		MaxBytes:          10e6,
		CommitInterval:    time.Second,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	})
	if log == nil {
		log = zap.NewNop()
	}
	return &KafkaSource{reader: r, log: log}
}

// Run reads until ctx is cancelled, pushing decoded events onto out.
// Messages that fail to decode are logged and skipped.
func (s *KafkaSource) Run(ctx context.Context, out chan<- Event) error {
	s.log.Info("notification event consumer started")
	for {
		m, err := s.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			s.log.Error("read message", zap.Error(err))
			continue
		}
		var e Event
		if err := json.Unmarshal(m.Value, &e); err != nil {
			s.log.Error("unmarshal event", zap.ByteString("value", m.Value), zap.Error(err))
			continue
		}
		if e.Kind == "" {
			s.log.Warn("event without kind", zap.ByteString("value", m.Value))
			continue
		}
		select {
		case out <- e:
		case <-ctx.Done():
			return nil
		}
	}
}

// Close releases the underlying reader.
func (s *KafkaSource) Close() error { return s.reader.Close() }
