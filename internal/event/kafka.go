package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flight-review/pkg/utils"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	kafkaMaxAttempts  = 3
	kafkaRetryBackoff = 500 * time.Millisecond
)

type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaBus publishes to and consumes from a single topic. A delivery whose
// handler keeps failing is forwarded to the dead-letter topic when one is
// configured and only then committed. Without a dead-letter topic it is
// logged and committed so the partition keeps moving.
type KafkaBus struct {
	brokers []string
	topic   string
	groupID string
	writer  kafkaWriter
	dlq     kafkaWriter
	backoff time.Duration
	log     *zap.Logger
}

func NewKafkaBus(config utils.BusConfig, log *zap.Logger) *KafkaBus {
	bus := &KafkaBus{
		brokers: config.KafkaBrokers,
		topic:   config.KafkaTopic,
		groupID: config.KafkaGroupID,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(config.KafkaBrokers...),
			Topic:        config.KafkaTopic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		backoff: kafkaRetryBackoff,
		log:     log.With(zap.String("bus", "kafka"), zap.String("topic", config.KafkaTopic)),
	}

	if config.KafkaDLQ != "" {
		bus.dlq = &kafka.Writer{
			Addr:         kafka.TCP(config.KafkaBrokers...),
			Topic:        config.KafkaDLQ,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		}
	}

	return bus
}

func (b *KafkaBus) Publish(ctx context.Context, e NewReviewEvent) error {
	msg, err := newMessage(e)
	if err != nil {
		return err
	}

	if err := b.writer.WriteMessages(ctx, toKafka(msg)); err != nil {
		return fmt.Errorf("publish %s to %s: %w", e.Event, b.topic, err)
	}

	b.log.Debug("Event published", zap.String("review_id", e.ReviewID))
	return nil
}

func (b *KafkaBus) Subscribe(ctx context.Context, h Handler) error {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  b.brokers,
		Topic:    b.topic,
		GroupID:  b.groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	b.log.Info("Kafka consumer started", zap.String("group_id", b.groupID))
	return b.consume(ctx, reader, h)
}

func (b *KafkaBus) consume(ctx context.Context, reader kafkaReader, h Handler) error {
	for {
		m, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				b.log.Info("Kafka consumer stopped")
				return nil
			}
			return fmt.Errorf("fetch from %s: %w", b.topic, err)
		}

		msg := fromKafka(m)
		outcome := b.deliver(ctx, h, msg)
		if ctx.Err() != nil {
			// Leave the offset uncommitted; the group redelivers it.
			return nil
		}

		if outcome == Retry {
			if err := b.deadLetter(ctx, msg, m); err != nil {
				// Committing now would lose the message; stop and let the
				// group redeliver it.
				return fmt.Errorf("partition %d offset %d: %w", m.Partition, m.Offset, err)
			}
		}

		if err := reader.CommitMessages(ctx, m); err != nil && ctx.Err() == nil {
			b.log.Error("Failed to commit offset",
				zap.Error(err),
				zap.Int("partition", m.Partition),
				zap.Int64("offset", m.Offset),
			)
		}
	}
}

// deliver retries a failing handler a few times before giving up.
func (b *KafkaBus) deliver(ctx context.Context, h Handler, msg Message) Outcome {
	var outcome Outcome
	for attempt := 1; attempt <= kafkaMaxAttempts; attempt++ {
		outcome = Dispatch(ctx, h, msg, b.log)
		if outcome.Settled() || attempt == kafkaMaxAttempts {
			return outcome
		}

		select {
		case <-ctx.Done():
			return Retry
		case <-time.After(time.Duration(attempt) * b.backoff):
		}
	}
	return outcome
}

func (b *KafkaBus) deadLetter(ctx context.Context, msg Message, m kafka.Message) error {
	if b.dlq == nil {
		b.log.Error("Giving up on event",
			zap.String("key", msg.Key),
			zap.Int("partition", m.Partition),
			zap.Int64("offset", m.Offset),
		)
		return nil
	}

	if err := b.dlq.WriteMessages(ctx, toKafka(msg)); err != nil {
		b.log.Error("Failed to forward event to dead-letter topic",
			zap.Error(err),
			zap.String("key", msg.Key),
		)
		return fmt.Errorf("forward %s to dead-letter topic: %w", msg.Key, err)
	}

	b.log.Warn("Event forwarded to dead-letter topic", zap.String("key", msg.Key))
	return nil
}

func (b *KafkaBus) Close() error {
	var errs []error
	errs = append(errs, b.writer.Close())
	if b.dlq != nil {
		errs = append(errs, b.dlq.Close())
	}
	return errors.Join(errs...)
}

func toKafka(msg Message) kafka.Message {
	km := kafka.Message{
		Key:   []byte(msg.Key),
		Value: msg.Body,
	}
	for k, v := range msg.Attributes {
		km.Headers = append(km.Headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	return km
}

func fromKafka(m kafka.Message) Message {
	msg := Message{
		Key:        string(m.Key),
		Body:       m.Value,
		Attributes: make(map[string]string, len(m.Headers)),
	}
	for _, h := range m.Headers {
		msg.Attributes[h.Key] = string(h.Value)
	}
	return msg
}
