package service

import (
	"context"

	"github.com/streamops/channel-control/internal/medialive"
	"github.com/streamops/channel-control/internal/mediapackage"
	"github.com/streamops/channel-control/internal/model"
)

// EncoderAPI is the encoder control surface the services depend on
// (D: зависимость от абстракции; substituted with fakes in tests).
type EncoderAPI interface {
	ListChannels(ctx context.Context, nextToken string) ([]medialive.Channel, string, error)
	DescribeChannel(ctx context.Context, channelID string) (*medialive.Channel, error)
	StartChannel(ctx context.Context, channelID string) (*medialive.Channel, error)
	StopChannel(ctx context.Context, channelID string) (*medialive.Channel, error)
	BatchUpdateSchedule(ctx context.Context, channelID string, actions ...medialive.ScheduleAction) error
}

// PackagingAPI is the packaging/origin control surface.
type PackagingAPI interface {
	ListOriginEndpoints(ctx context.Context, nextToken string) ([]mediapackage.OriginEndpoint, string, error)
}

// MetadataStore is the channel metadata table surface.
type MetadataStore interface {
	QueryChannel(ctx context.Context, channelID string) ([]model.MetadataRow, error)
	Get(ctx context.Context, channelID, sortKey string) (*model.MetadataRow, error)
	Put(ctx context.Context, row model.MetadataRow) error
	Delete(ctx context.Context, channelID, sortKey string) error
	PutAlertIfNewer(ctx context.Context, row model.MetadataRow) error
}
