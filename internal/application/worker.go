package application

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/streamops/channel-control/internal/config"
	"github.com/streamops/channel-control/internal/database"
	"github.com/streamops/channel-control/internal/events"
	"github.com/streamops/channel-control/internal/service"
	"github.com/streamops/channel-control/internal/store"
	"go.uber.org/zap"
)

// Worker is the asynchronous alert application: the queue consumer plus the
// expired-alert janitor.
type Worker struct {
	cfg      *config.Config
	rdb      *redis.Client
	consumer *events.Consumer
	metadata *store.Metadata
	log      *zap.Logger
}

// NewWorker creates the worker: validates config, runs migrations, opens DB
// and Redis, wires the reconciler into the consumer.
func NewWorker(cfg *config.Config) (*Worker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := database.MigrateUp(cfg.DatabaseURL()); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	rdb := redis.NewClient(opts)

	logger := newLogger(cfg)
	metadata := store.NewMetadata(db, cfg.ChannelTable)
	alerts := service.NewAlertService(metadata, cfg.AlertExpiryHours, logger)
	consumer := events.NewConsumer(rdb, alerts, cfg.AlertQueue, cfg.AlertDeadLetterQueue, logger)

	return &Worker{cfg: cfg, rdb: rdb, consumer: consumer, metadata: metadata, log: logger}, nil
}

// Run consumes alert events until ctx is cancelled. When expiry is enabled it
// also sweeps expired alert rows periodically (the storage engine has no
// native TTL).
func (w *Worker) Run(ctx context.Context) error {
	if err := w.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}

	if w.cfg.AlertExpiryHours > 0 && w.cfg.AlertSweepInterval > 0 {
		go w.sweepExpired(ctx)
	}

	err := w.consumer.Run(ctx)
	_ = w.rdb.Close()
	_ = w.log.Sync()
	return err
}

func (w *Worker) sweepExpired(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(w.cfg.AlertSweepInterval) * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := w.metadata.DeleteExpired(ctx, time.Now().Unix())
			if err != nil {
				w.log.Error("expired alert sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				w.log.Info("swept expired alerts", zap.Int64("rows", n))
			}
		}
	}
}
