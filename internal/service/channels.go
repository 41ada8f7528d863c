package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/streamops/channel-control/internal/medialive"
	"github.com/streamops/channel-control/internal/model"
	"github.com/streamops/channel-control/pkg/constants"
	"go.uber.org/zap"
)

// ChannelServicer is the channel aggregation surface consumed by handlers.
type ChannelServicer interface {
	List(ctx context.Context) ([]model.ChannelSummary, error)
	Get(ctx context.Context, channelID string) (*model.ChannelDetail, error)
	UpdateStatus(ctx context.Context, channelID, status string) (*model.ChannelStatusResponse, error)
}

// ChannelService merges encoder channel state with stored metadata rows into
// the API's channel views.
type ChannelService struct {
	encoder EncoderAPI
	store   MetadataStore
	log     *zap.Logger
}

// NewChannelService creates a channel service.
func NewChannelService(encoder EncoderAPI, store MetadataStore, log *zap.Logger) *ChannelService {
	return &ChannelService{encoder: encoder, store: store, log: log}
}

// List returns every channel the encoder knows, paginating until exhausted.
// Each channel is additionally described to resolve the active input; channel
// and attachment ordering follows the encoder's listing.
func (s *ChannelService) List(ctx context.Context) ([]model.ChannelSummary, error) {
	summaries := []model.ChannelSummary{}
	token := ""
	for {
		page, next, err := s.encoder.ListChannels(ctx, token)
		if err != nil {
			return nil, err
		}
		for _, ch := range page {
			detail, err := s.encoder.DescribeChannel(ctx, ch.ID)
			if err != nil {
				return nil, err
			}
			attachments := make([]model.InputAttachmentView, 0, len(ch.InputAttachments))
			for _, att := range ch.InputAttachments {
				attachments = append(attachments, model.InputAttachmentView{
					ID:     att.InputID,
					Name:   att.InputAttachmentName,
					Active: isInputActive(att, detail.PipelineDetails),
				})
			}
			summaries = append(summaries, model.ChannelSummary{
				ID:               ch.ID,
				State:            ch.State,
				Name:             ch.Name,
				InputAttachments: attachments,
			})
		}
		if next == "" {
			return summaries, nil
		}
		token = next
	}
}

// isInputActive reports whether the attachment is the first pipeline's active
// input. With zero pipelines every attachment is inactive.
func isInputActive(att medialive.InputAttachment, pipelines []medialive.PipelineDetail) bool {
	if len(pipelines) == 0 {
		return false
	}
	return pipelines[0].ActiveInputAttachmentName == att.InputAttachmentName
}

// Get returns the channel detail: encoder description plus the channel's
// metadata rows bucketed by sort-key prefix. Rows with an unrecognized prefix
// are logged and dropped from every bucket.
func (s *ChannelService) Get(ctx context.Context, channelID string) (*model.ChannelDetail, error) {
	channel, err := s.encoder.DescribeChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.QueryChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}

	detail := &model.ChannelDetail{
		ChannelID:       channelID,
		Outputs:         []model.AttachmentView{},
		Graphics:        []model.AttachmentView{},
		Alerts:          []model.AlertView{},
		GraphicsEnabled: channel.MotionGraphicsEnabled(),
	}
	for _, row := range rows {
		switch {
		case strings.HasPrefix(row.SortKey, constants.SortKeyOutput):
			detail.Outputs = append(detail.Outputs, attachmentView(row))
		case strings.HasPrefix(row.SortKey, constants.SortKeyGraphic):
			detail.Graphics = append(detail.Graphics, attachmentView(row))
		case strings.HasPrefix(row.SortKey, constants.SortKeyAlert):
			detail.Alerts = append(detail.Alerts, alertView(row))
		default:
			s.log.Warn("unidentified channel entry",
				zap.String("channel_id", row.ChannelID),
				zap.String("sort_key", row.SortKey))
		}
	}
	return detail, nil
}

// UpdateStatus starts or stops the channel. status must already be validated
// to "start" or "stop".
func (s *ChannelService) UpdateStatus(ctx context.Context, channelID, status string) (*model.ChannelStatusResponse, error) {
	var (
		channel *medialive.Channel
		err     error
	)
	if status == "stop" {
		channel, err = s.encoder.StopChannel(ctx, channelID)
	} else {
		channel, err = s.encoder.StartChannel(ctx, channelID)
	}
	if err != nil {
		return nil, fmt.Errorf("update status %s: %w", status, err)
	}
	return &model.ChannelStatusResponse{ID: channel.ID, State: channel.State}, nil
}

// attachmentView strips the internal keys from an output/graphic row.
func attachmentView(row model.MetadataRow) model.AttachmentView {
	return model.AttachmentView{ID: row.ID, URL: row.URL, Name: row.Name}
}

// alertView strips the internal keys (including ExpiresAt) from an alert row.
func alertView(row model.MetadataRow) model.AlertView {
	v := model.AlertView{ID: row.ID, State: row.State, Message: row.Message}
	if row.AlertedAt != nil {
		v.AlertedAt = *row.AlertedAt
	}
	return v
}
