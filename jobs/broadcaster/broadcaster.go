// Package broadcaster implements the background job that drains the
// fill outbox and publishes pending events to Kafka. Records are
// marked SENT before the publish attempt and ACKED after the broker
// confirms, so delivery is at-least-once.
package broadcaster

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"matchbook/infra/outbox"
)

type Broadcaster struct {
	box      *outbox.Outbox
	producer sarama.SyncProducer
	topic    string
	interval time.Duration
	log      *zap.Logger
}

func New(box *outbox.Outbox, brokers []string, topic string, interval time.Duration, log *zap.Logger) (*Broadcaster, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = zap.NewNop()
	}
	return &Broadcaster{
		box:      box,
		producer: producer,
		topic:    topic,
		interval: interval,
		log:      log,
	}, nil
}

// Run drains the outbox on a ticker until ctx is cancelled.
func (b *Broadcaster) Run(ctx context.Context) {
	b.log.Info("broadcaster started", zap.String("topic", b.topic))

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.drainOnce()
		}
	}
}

func (b *Broadcaster) drainOnce() {
	err := b.box.ScanPending(func(seq uint64, rec outbox.Record) error {
		if err := b.box.MarkSent(seq); err != nil {
			return err
		}

		msg := &sarama.ProducerMessage{
			Topic: b.topic,
			Value: sarama.ByteEncoder(rec.Payload),
		}
		if _, _, err := b.producer.SendMessage(msg); err != nil {
			// Leave it SENT; the next drain retries.
			b.log.Warn("publish failed", zap.Uint64("seq", seq), zap.Error(err))
			return nil
		}

		return b.box.MarkAcked(seq)
	})
	if err != nil {
		b.log.Warn("outbox scan failed", zap.Error(err))
	}
}

func (b *Broadcaster) Close() error {
	return b.producer.Close()
}
