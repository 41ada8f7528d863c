package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/streamops/channel-control/internal/errs"
	"github.com/streamops/channel-control/internal/medialive"
	"github.com/streamops/channel-control/pkg/constants"
	"go.uber.org/zap"
)

// ScheduleServicer builds and submits encoder schedule actions.
type ScheduleServicer interface {
	SwitchInput(ctx context.Context, channelID, inputName string) (string, error)
	PrepareInput(ctx context.Context, channelID, inputName string) error
	StartGraphics(ctx context.Context, channelID, graphicID string, duration int) error
	StopGraphics(ctx context.Context, channelID string) error
}

// ScheduleService submits immediate-mode schedule actions to the encoder.
// Every call mints a fresh action name; the actions themselves are stateless
// commands, so resubmission after a failed call is safe.
type ScheduleService struct {
	encoder EncoderAPI
	store   MetadataStore
	log     *zap.Logger
}

// NewScheduleService creates a schedule service.
func NewScheduleService(encoder EncoderAPI, store MetadataStore, log *zap.Logger) *ScheduleService {
	return &ScheduleService{encoder: encoder, store: store, log: log}
}

// SwitchInput switches the channel to the named input attachment and returns
// the decoded attachment name. The name is percent-decoded before use; its
// existence is not checked here, the encoder rejects unknown names.
func (s *ScheduleService) SwitchInput(ctx context.Context, channelID, inputName string) (string, error) {
	name, err := decodeInputName(inputName)
	if err != nil {
		return "", err
	}
	action := medialive.ImmediateAction(uuid.NewString(), medialive.ScheduleActionSettings{
		InputSwitchSettings: &medialive.InputSwitchSettings{InputAttachmentNameReference: name},
	})
	if err := s.encoder.BatchUpdateSchedule(ctx, channelID, action); err != nil {
		return "", err
	}
	return name, nil
}

// PrepareInput warms the named input attachment without switching to it.
func (s *ScheduleService) PrepareInput(ctx context.Context, channelID, inputName string) error {
	name, err := decodeInputName(inputName)
	if err != nil {
		return err
	}
	action := medialive.ImmediateAction(uuid.NewString(), medialive.ScheduleActionSettings{
		InputPrepareSettings: &medialive.InputPrepareSettings{InputAttachmentNameReference: name},
	})
	return s.encoder.BatchUpdateSchedule(ctx, channelID, action)
}

// StartGraphics shows the stored graphic on the channel for duration
// milliseconds (0 = until deactivated).
func (s *ScheduleService) StartGraphics(ctx context.Context, channelID, graphicID string, duration int) error {
	row, err := s.store.Get(ctx, channelID, constants.SortKeyGraphic+graphicID)
	if err != nil {
		return err
	}
	if row == nil {
		return fmt.Errorf("graphic %s: %w", graphicID, errs.ErrGraphicNotFound)
	}
	action := medialive.ImmediateAction(uuid.NewString(), medialive.ScheduleActionSettings{
		MotionGraphicsImageActivateSettings: &medialive.MotionGraphicsImageActivateSettings{
			Duration: duration,
			URL:      row.URL,
		},
	})
	return s.encoder.BatchUpdateSchedule(ctx, channelID, action)
}

// StopGraphics hides whatever graphic is active on the channel.
func (s *ScheduleService) StopGraphics(ctx context.Context, channelID string) error {
	action := medialive.ImmediateAction(uuid.NewString(), medialive.ScheduleActionSettings{
		MotionGraphicsImageDeactivateSettings: &medialive.MotionGraphicsImageDeactivateSettings{},
	})
	return s.encoder.BatchUpdateSchedule(ctx, channelID, action)
}

func decodeInputName(raw string) (string, error) {
	name, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("input name %q: %w", raw, errs.ErrInvalidInput)
	}
	return name, nil
}
