package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/streamops/channel-control/internal/errs"
	"github.com/streamops/channel-control/internal/medialive"
	"github.com/streamops/channel-control/internal/mediapackage"
	"github.com/streamops/channel-control/internal/model"
)

// fakeEncoder is an in-memory EncoderAPI double.
type fakeEncoder struct {
	pages     [][]medialive.Channel
	described map[string]*medialive.Channel

	batches  []recordedBatch
	batchErr error
	started  []string
	stopped  []string
}

type recordedBatch struct {
	channelID string
	actions   []medialive.ScheduleAction
}

var _ EncoderAPI = (*fakeEncoder)(nil)

func (f *fakeEncoder) ListChannels(_ context.Context, nextToken string) ([]medialive.Channel, string, error) {
	idx := 0
	if nextToken != "" {
		idx, _ = strconv.Atoi(nextToken)
	}
	if idx >= len(f.pages) {
		return nil, "", nil
	}
	next := ""
	if idx+1 < len(f.pages) {
		next = strconv.Itoa(idx + 1)
	}
	return f.pages[idx], next, nil
}

func (f *fakeEncoder) DescribeChannel(_ context.Context, channelID string) (*medialive.Channel, error) {
	ch, ok := f.described[channelID]
	if !ok {
		return nil, fmt.Errorf("describe channel %s: %w", channelID, errs.ErrChannelNotFound)
	}
	return ch, nil
}

func (f *fakeEncoder) StartChannel(_ context.Context, channelID string) (*medialive.Channel, error) {
	f.started = append(f.started, channelID)
	return &medialive.Channel{ID: channelID, State: "STARTING"}, nil
}

func (f *fakeEncoder) StopChannel(_ context.Context, channelID string) (*medialive.Channel, error) {
	f.stopped = append(f.stopped, channelID)
	return &medialive.Channel{ID: channelID, State: "STOPPING"}, nil
}

func (f *fakeEncoder) BatchUpdateSchedule(_ context.Context, channelID string, actions ...medialive.ScheduleAction) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	f.batches = append(f.batches, recordedBatch{channelID: channelID, actions: actions})
	return nil
}

func (f *fakeEncoder) lastBatch() recordedBatch {
	return f.batches[len(f.batches)-1]
}

// fakePackaging is an in-memory PackagingAPI double.
type fakePackaging struct {
	pages [][]mediapackage.OriginEndpoint
}

var _ PackagingAPI = (*fakePackaging)(nil)

func (f *fakePackaging) ListOriginEndpoints(_ context.Context, nextToken string) ([]mediapackage.OriginEndpoint, string, error) {
	idx := 0
	if nextToken != "" {
		idx, _ = strconv.Atoi(nextToken)
	}
	if idx >= len(f.pages) {
		return nil, "", nil
	}
	next := ""
	if idx+1 < len(f.pages) {
		next = strconv.Itoa(idx + 1)
	}
	return f.pages[idx], next, nil
}

// fakeStore is an in-memory MetadataStore implementing the same conditional
// semantics as the real adapter.
type fakeStore struct {
	rows map[string]model.MetadataRow
}

var _ MetadataStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[string]model.MetadataRow{}}
}

func key(channelID, sortKey string) string { return channelID + "|" + sortKey }

func (f *fakeStore) QueryChannel(_ context.Context, channelID string) ([]model.MetadataRow, error) {
	var out []model.MetadataRow
	for _, row := range f.rows {
		if row.ChannelID == channelID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortKey < out[j].SortKey })
	return out, nil
}

func (f *fakeStore) Get(_ context.Context, channelID, sortKey string) (*model.MetadataRow, error) {
	row, ok := f.rows[key(channelID, sortKey)]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (f *fakeStore) Put(_ context.Context, row model.MetadataRow) error {
	f.rows[key(row.ChannelID, row.SortKey)] = row
	return nil
}

func (f *fakeStore) Delete(_ context.Context, channelID, sortKey string) error {
	delete(f.rows, key(channelID, sortKey))
	return nil
}

func (f *fakeStore) PutAlertIfNewer(_ context.Context, row model.MetadataRow) error {
	existing, ok := f.rows[key(row.ChannelID, row.SortKey)]
	if ok && existing.AlertedAt != nil && row.AlertedAt != nil && *existing.AlertedAt >= *row.AlertedAt {
		return errs.ErrStaleAlert
	}
	f.rows[key(row.ChannelID, row.SortKey)] = row
	return nil
}
