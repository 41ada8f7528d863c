package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/streamops/channel-control/internal/errs"
	"github.com/streamops/channel-control/internal/service"
	"go.uber.org/zap"
)

// dequeueTimeout bounds each blocking pop so shutdown can interrupt the loop.
const dequeueTimeout = 5 * time.Second

// Recorder applies one alert to the metadata store.
type Recorder interface {
	Record(ctx context.Context, a service.Alert) error
}

// Queue is the subset of Redis list operations the consumer uses. Satisfied by
// *redis.Client; substituted with a fake in tests.
type Queue interface {
	BRPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// Consumer pops encoder alert events off a Redis list and feeds them to the
// reconciler. Events that fail terminally go to a dead-letter list so the
// delivery layer keeps its own retry/inspection options.
type Consumer struct {
	rdb        Queue
	recorder   Recorder
	queue      string
	deadLetter string
	log        *zap.Logger
}

// NewConsumer creates an alert event consumer.
func NewConsumer(rdb Queue, recorder Recorder, queue, deadLetter string, log *zap.Logger) *Consumer {
	return &Consumer{rdb: rdb, recorder: recorder, queue: queue, deadLetter: deadLetter, log: log}
}

// Run consumes events until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	c.log.Info("alert consumer started", zap.String("queue", c.queue))
	for {
		raw, err := c.dequeue(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			c.log.Error("dequeue failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		if raw == nil {
			continue
		}
		c.handle(ctx, raw)
	}
}

// dequeue blocks until an event is available or the timeout expires; a timeout
// returns (nil, nil) so the loop can check for shutdown.
func (c *Consumer) dequeue(ctx context.Context) ([]byte, error) {
	result, err := c.rdb.BRPop(ctx, dequeueTimeout, c.queue).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) || ctx.Err() != nil {
			return nil, nil
		}
		return nil, err
	}
	// BRPop returns [key, value].
	if len(result) < 2 {
		return nil, nil
	}
	return []byte(result[1]), nil
}

func (c *Consumer) handle(ctx context.Context, raw []byte) {
	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		c.fail(ctx, raw, err)
		return
	}
	if !event.IsChannelAlert() {
		c.log.Debug("ignoring event", zap.String("detail_type", event.DetailType))
		return
	}
	alert, err := event.ParseAlert()
	if err != nil {
		c.fail(ctx, raw, err)
		return
	}
	if err := c.recorder.Record(ctx, alert); err != nil {
		// Out-of-date events are expected under out-of-order delivery;
		// anything else is fatal for this event.
		if errors.Is(err, errs.ErrStaleAlert) {
			return
		}
		c.fail(ctx, raw, err)
	}
}

// fail logs the terminal error and parks the raw event on the dead-letter
// list.
func (c *Consumer) fail(ctx context.Context, raw []byte, err error) {
	c.log.Error("alert event failed", zap.Error(err), zap.ByteString("event", raw))
	if pushErr := c.rdb.LPush(ctx, c.deadLetter, raw).Err(); pushErr != nil {
		c.log.Error("dead-letter push failed", zap.Error(pushErr))
	}
}
