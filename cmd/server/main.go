package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"matchbook/api/text"
	"matchbook/config"
	"matchbook/domain/book"
	"matchbook/infra/kafka"
	"matchbook/infra/memory"
	"matchbook/infra/outbox"
	"matchbook/infra/sequence"
	"matchbook/infra/wal"
	"matchbook/jobs/broadcaster"
	"matchbook/service"
	"matchbook/snapshot"
)

func main() {
	cfg := config.Load()

	logger := newLogger(cfg.Log.Level)
	defer func() { _ = logger.Sync() }()

	// ---------------- Journal ----------------

	var journal *wal.WAL
	if cfg.Engine.JournalEnabled {
		var err error
		journal, err = wal.Open(wal.Config{
			Dir:         cfg.Engine.WALDir,
			SegmentSize: cfg.Engine.WALSegmentSize,
		})
		if err != nil {
			logger.Fatal("journal init failed", zap.Error(err))
		}
		defer func() { _ = journal.Close() }()
	}

	// ---------------- Outbox ----------------

	var box *outbox.Outbox
	if cfg.BroadcastEnabled() {
		var err error
		box, err = outbox.Open(cfg.Engine.OutboxDir)
		if err != nil {
			logger.Fatal("outbox init failed", zap.Error(err))
		}
		defer func() { _ = box.Close() }()
	}

	// ---------------- Memory ----------------

	pool := memory.NewPool(func() *book.Order { return &book.Order{} })
	ring := memory.NewRetireRing(cfg.Engine.RetireRingSize)
	reader := snapshot.NewReader()
	seqGen := sequence.New(0)

	// ---------------- Service ----------------

	svc := service.NewOrderService(pool, ring, reader, seqGen, journal, box, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---------------- Background jobs ----------------

	go func() {
		ticker := time.NewTicker(cfg.Engine.EpochInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				svc.AdvanceEpoch()
			}
		}
	}()

	var depthProducer *kafka.Producer
	if cfg.BroadcastEnabled() {
		depthProducer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.DepthTopic)
		defer func() { _ = depthProducer.Close() }()

		bc, err := broadcaster.New(box, cfg.Kafka.Brokers, cfg.Kafka.FillsTopic, cfg.Kafka.DrainInterval, logger)
		if err != nil {
			logger.Fatal("broadcaster init failed", zap.Error(err))
		}
		defer func() { _ = bc.Close() }()
		go bc.Run(ctx)
	}

	svc.StartSnapshotJob(ctx, depthProducer, cfg.Engine.SnapshotInterval)

	// ---------------- Serve ----------------

	if cfg.Server.ListenAddr == "" {
		// Console mode: one session over stdin/stdout, exit at EOF.
		sess := text.NewSession(svc, logger)
		if err := sess.Run(os.Stdin, os.Stdout); err != nil {
			logger.Fatal("session failed", zap.Error(err))
		}
		return
	}

	srv := text.NewServer(cfg.Server.ListenAddr, svc, logger)
	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// Protocol output owns stdout; keep diagnostics on stderr.
	cfg.OutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
