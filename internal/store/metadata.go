package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/streamops/channel-control/internal/errs"
	"github.com/streamops/channel-control/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Metadata is the channel metadata table adapter. One table, composite key
// (channel_id, sort_key); concurrency control is delegated to the database's
// conditional-write primitive (see PutAlertIfNewer).
type Metadata struct {
	db    *gorm.DB
	table string
}

// NewMetadata creates the adapter for the named table.
func NewMetadata(db *gorm.DB, table string) *Metadata {
	return &Metadata{db: db, table: table}
}

// QueryChannel returns every row stored for the channel, in one unbounded
// range query.
func (m *Metadata) QueryChannel(ctx context.Context, channelID string) ([]model.MetadataRow, error) {
	var rows []model.MetadataRow
	err := m.db.WithContext(ctx).Table(m.table).
		Where("channel_id = ?", channelID).
		Order("sort_key").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query channel %s: %w", channelID, err)
	}
	return rows, nil
}

// Get returns the row for the composite key, or nil when absent.
func (m *Metadata) Get(ctx context.Context, channelID, sortKey string) (*model.MetadataRow, error) {
	var row model.MetadataRow
	err := m.db.WithContext(ctx).Table(m.table).
		Where("channel_id = ? AND sort_key = ?", channelID, sortKey).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", channelID, sortKey, err)
	}
	return &row, nil
}

// Put writes the row, fully replacing any existing row with the same key.
func (m *Metadata) Put(ctx context.Context, row model.MetadataRow) error {
	err := m.db.WithContext(ctx).Table(m.table).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "channel_id"}, {Name: "sort_key"}},
			UpdateAll: true,
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("put %s %s: %w", row.ChannelID, row.SortKey, err)
	}
	return nil
}

// Delete removes the row for the composite key. Deleting an absent row is not
// an error.
func (m *Metadata) Delete(ctx context.Context, channelID, sortKey string) error {
	err := m.db.WithContext(ctx).Table(m.table).
		Where("channel_id = ? AND sort_key = ?", channelID, sortKey).
		Delete(&model.MetadataRow{}).Error
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", channelID, sortKey, err)
	}
	return nil
}

// PutAlertIfNewer upserts an alert row only when no row exists yet or the
// stored alerted_at is strictly older than the incoming one. The check and the
// write are a single conditional statement so concurrent deliveries for the
// same alarm cannot race. Returns errs.ErrStaleAlert when the row was kept.
func (m *Metadata) PutAlertIfNewer(ctx context.Context, row model.MetadataRow) error {
	table := pq.QuoteIdentifier(m.table)
	res := m.db.WithContext(ctx).Exec(fmt.Sprintf(`
		INSERT INTO %s (channel_id, sort_key, id, state, message, alerted_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (channel_id, sort_key) DO UPDATE
		SET id = EXCLUDED.id,
		    state = EXCLUDED.state,
		    message = EXCLUDED.message,
		    alerted_at = EXCLUDED.alerted_at,
		    expires_at = EXCLUDED.expires_at
		WHERE %s.alerted_at < EXCLUDED.alerted_at`, table, table),
		row.ChannelID, row.SortKey, row.ID, row.State, row.Message, row.AlertedAt, row.ExpiresAt)
	if res.Error != nil {
		return fmt.Errorf("put alert %s %s: %w", row.ChannelID, row.SortKey, res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.ErrStaleAlert
	}
	return nil
}

// DeleteExpired removes rows whose expires_at has passed. Stands in for a
// native storage TTL sweep; runs from the worker, never from a request path.
func (m *Metadata) DeleteExpired(ctx context.Context, now int64) (int64, error) {
	res := m.db.WithContext(ctx).Table(m.table).
		Where("expires_at IS NOT NULL AND expires_at <= ?", now).
		Delete(&model.MetadataRow{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete expired: %w", res.Error)
	}
	return res.RowsAffected, nil
}
