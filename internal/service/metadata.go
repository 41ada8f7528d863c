package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/streamops/channel-control/internal/model"
	"github.com/streamops/channel-control/pkg/constants"
	"go.uber.org/zap"
)

// MetadataServicer manages output/graphic rows and packaging discovery.
type MetadataServicer interface {
	CreateOutput(ctx context.Context, channelID, url, name string) (*model.AttachmentView, error)
	CreateGraphic(ctx context.Context, channelID, url, name string) (*model.AttachmentView, error)
	DeleteOutput(ctx context.Context, channelID, outputID string) error
	DeleteGraphic(ctx context.Context, channelID, graphicID string) error
	DiscoverOutputs(ctx context.Context, channelID string) ([]model.DiscoveredOutput, error)
}

// MetadataService owns the output/graphic rows of the metadata table and the
// packaging origin-endpoint discovery scan.
type MetadataService struct {
	encoder   EncoderAPI
	packaging PackagingAPI
	store     MetadataStore
	log       *zap.Logger
}

// NewMetadataService creates a metadata service.
func NewMetadataService(encoder EncoderAPI, packaging PackagingAPI, store MetadataStore, log *zap.Logger) *MetadataService {
	return &MetadataService{encoder: encoder, packaging: packaging, store: store, log: log}
}

// CreateOutput stores a new output row for the channel. The id is always
// server-generated; the channel must exist on the encoder.
func (s *MetadataService) CreateOutput(ctx context.Context, channelID, url, name string) (*model.AttachmentView, error) {
	return s.createAttachment(ctx, channelID, constants.SortKeyOutput, url, name)
}

// CreateGraphic stores a new graphic row for the channel.
func (s *MetadataService) CreateGraphic(ctx context.Context, channelID, url, name string) (*model.AttachmentView, error) {
	return s.createAttachment(ctx, channelID, constants.SortKeyGraphic, url, name)
}

func (s *MetadataService) createAttachment(ctx context.Context, channelID, prefix, url, name string) (*model.AttachmentView, error) {
	if _, err := s.encoder.DescribeChannel(ctx, channelID); err != nil {
		return nil, err
	}
	id := uuid.NewString()
	row := model.MetadataRow{
		ChannelID: channelID,
		SortKey:   prefix + id,
		ID:        id,
		URL:       url,
		Name:      name,
	}
	if err := s.store.Put(ctx, row); err != nil {
		return nil, err
	}
	return &model.AttachmentView{ID: id, URL: url, Name: name}, nil
}

// DeleteOutput removes the output row; deleting an absent row succeeds.
func (s *MetadataService) DeleteOutput(ctx context.Context, channelID, outputID string) error {
	return s.store.Delete(ctx, channelID, constants.SortKeyOutput+outputID)
}

// DeleteGraphic removes the graphic row; deleting an absent row succeeds.
func (s *MetadataService) DeleteGraphic(ctx context.Context, channelID, graphicID string) error {
	return s.store.Delete(ctx, channelID, constants.SortKeyGraphic+graphicID)
}

// DiscoverOutputs lists packaging origin endpoints reachable from the
// channel's packaging destinations. The packaging API has no server-side
// filter by channel, so this is a full-listing scan filtered client-side to
// endpoints that belong to one of the channel's packaging channels and expose
// HLS or DASH.
func (s *MetadataService) DiscoverOutputs(ctx context.Context, channelID string) ([]model.DiscoveredOutput, error) {
	channel, err := s.encoder.DescribeChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	packagingIDs := map[string]bool{}
	for _, dest := range channel.Destinations {
		for _, mp := range dest.MediaPackageSettings {
			packagingIDs[mp.ChannelID] = true
		}
	}

	outputs := []model.DiscoveredOutput{}
	token := ""
	for {
		page, next, err := s.packaging.ListOriginEndpoints(ctx, token)
		if err != nil {
			return nil, err
		}
		for _, ep := range page {
			if !packagingIDs[ep.ChannelID] || !ep.Streamable() {
				continue
			}
			outputs = append(outputs, model.DiscoveredOutput{
				Name:           ep.ID,
				URL:            ep.URL,
				Type:           "MEDIA_PACKAGE",
				OutputMetadata: model.OutputMetadata{ChannelID: ep.ChannelID},
			})
		}
		if next == "" {
			return outputs, nil
		}
		token = next
	}
}
