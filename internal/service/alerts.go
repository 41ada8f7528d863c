package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/streamops/channel-control/internal/errs"
	"github.com/streamops/channel-control/internal/model"
	"github.com/streamops/channel-control/pkg/constants"
	"go.uber.org/zap"
)

// Alert is one reconciled encoder alert event.
type Alert struct {
	AlarmID   string
	State     string // SET / CLEARED, any casing
	Message   string
	ChannelID string
	At        time.Time // the event's wall-clock timestamp
}

// AlertService applies the monotonic merge rule for alert events: last writer
// by event time wins, under at-least-once, out-of-order delivery.
type AlertService struct {
	store       MetadataStore
	expiryHours int
	log         *zap.Logger
}

// NewAlertService creates an alert reconciler. expiryHours <= 0 disables the
// expiry stamp entirely.
func NewAlertService(store MetadataStore, expiryHours int, log *zap.Logger) *AlertService {
	return &AlertService{store: store, expiryHours: expiryHours, log: log}
}

// Record upserts the alert row unless the stored row is already as new as the
// event. A cleared alert gets an expiry stamp when a positive TTL is
// configured; set alerts never expire. The stale case returns
// errs.ErrStaleAlert, which callers treat as an expected skip.
func (s *AlertService) Record(ctx context.Context, a Alert) error {
	state := strings.ToUpper(a.State)
	ts := a.At.Unix()

	row := model.MetadataRow{
		ChannelID: a.ChannelID,
		SortKey:   constants.SortKeyAlert + a.AlarmID,
		ID:        a.AlarmID,
		State:     state,
		Message:   a.Message,
		AlertedAt: &ts,
	}
	if state == "CLEARED" && s.expiryHours > 0 {
		expiry := a.At.Add(time.Duration(s.expiryHours) * time.Hour).Unix()
		row.ExpiresAt = &expiry
	}

	s.log.Info("received alert",
		zap.String("channel_id", a.ChannelID),
		zap.String("alarm_id", a.AlarmID),
		zap.String("state", state),
		zap.String("message", a.Message))

	err := s.store.PutAlertIfNewer(ctx, row)
	if errors.Is(err, errs.ErrStaleAlert) {
		s.log.Warn("skipping older alert",
			zap.String("channel_id", a.ChannelID),
			zap.String("alarm_id", a.AlarmID),
			zap.Int64("alerted_at", ts))
	}
	return err
}
