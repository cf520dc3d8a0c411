package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"matchbook/infra/kafka"
	"matchbook/snapshot"
)

// StartSnapshotJob periodically publishes an aggregated depth snapshot
// and garbage-collects the journal and outbox behind it. producer may
// be nil; GC still runs.
func (s *OrderService) StartSnapshotJob(ctx context.Context, producer *kafka.Producer, interval time.Duration) {
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.snapshotOnce(ctx, producer)
			}
		}
	}()
}

func (s *OrderService) snapshotOnce(ctx context.Context, producer *kafka.Producer) {
	seq := s.seqGen.Current()
	depth := snapshot.BuildDepth(seq, s.Snapshot())

	if producer != nil {
		payload, err := json.Marshal(depth)
		if err != nil {
			s.log.Warn("depth encode failed", zap.Error(err))
			return
		}
		if err := producer.Send(ctx, []byte("depth"), payload); err != nil {
			s.log.Warn("depth publish failed", zap.Error(err))
			return
		}
	}

	if s.journal != nil {
		_ = s.journal.TruncateBefore(seq)
	}
	if s.outbox != nil {
		_ = s.outbox.TruncateAckedUpTo(s.fillSeq.Current())
	}
}
