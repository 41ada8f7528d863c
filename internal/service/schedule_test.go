package service

import (
	"context"
	"errors"
	"testing"

	"github.com/streamops/channel-control/internal/errs"
	"github.com/streamops/channel-control/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSwitchInputDecodesName(t *testing.T) {
	encoder := &fakeEncoder{}
	svc := NewScheduleService(encoder, newFakeStore(), zap.NewNop())

	name, err := svc.SwitchInput(context.Background(), "123", "studio%20feed")
	require.NoError(t, err)
	assert.Equal(t, "studio feed", name)

	require.Len(t, encoder.batches, 1)
	batch := encoder.lastBatch()
	assert.Equal(t, "123", batch.channelID)
	require.Len(t, batch.actions, 1)

	action := batch.actions[0]
	assert.NotEmpty(t, action.ActionName)
	require.NotNil(t, action.ScheduleActionSettings.InputSwitchSettings)
	assert.Equal(t, "studio feed", action.ScheduleActionSettings.InputSwitchSettings.InputAttachmentNameReference)
	assert.Nil(t, action.ScheduleActionSettings.InputPrepareSettings)
}

func TestSwitchInputMintsFreshActionNames(t *testing.T) {
	encoder := &fakeEncoder{}
	svc := NewScheduleService(encoder, newFakeStore(), zap.NewNop())

	_, err := svc.SwitchInput(context.Background(), "123", "a")
	require.NoError(t, err)
	_, err = svc.SwitchInput(context.Background(), "123", "a")
	require.NoError(t, err)

	require.Len(t, encoder.batches, 2)
	assert.NotEqual(t, encoder.batches[0].actions[0].ActionName, encoder.batches[1].actions[0].ActionName)
}

func TestSwitchInputRejectsBadEscape(t *testing.T) {
	encoder := &fakeEncoder{}
	svc := NewScheduleService(encoder, newFakeStore(), zap.NewNop())

	_, err := svc.SwitchInput(context.Background(), "123", "bad%zz")
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))
	assert.Empty(t, encoder.batches)
}

func TestPrepareInput(t *testing.T) {
	encoder := &fakeEncoder{}
	svc := NewScheduleService(encoder, newFakeStore(), zap.NewNop())

	require.NoError(t, svc.PrepareInput(context.Background(), "123", "backup%2Dfeed"))

	action := encoder.lastBatch().actions[0]
	require.NotNil(t, action.ScheduleActionSettings.InputPrepareSettings)
	assert.Equal(t, "backup-feed", action.ScheduleActionSettings.InputPrepareSettings.InputAttachmentNameReference)
}

func TestStartGraphicsUsesStoredURL(t *testing.T) {
	encoder := &fakeEncoder{}
	store := newFakeStore()
	require.NoError(t, store.Put(context.Background(), model.MetadataRow{
		ChannelID: "123",
		SortKey:   "GRAPHIC#g1",
		ID:        "g1",
		URL:       "https://assets.example.com/lower-third.png",
		Name:      "lower third",
	}))
	svc := NewScheduleService(encoder, store, zap.NewNop())

	require.NoError(t, svc.StartGraphics(context.Background(), "123", "g1", 30))

	action := encoder.lastBatch().actions[0]
	activate := action.ScheduleActionSettings.MotionGraphicsImageActivateSettings
	require.NotNil(t, activate)
	assert.Equal(t, "https://assets.example.com/lower-third.png", activate.URL)
	assert.Equal(t, 30, activate.Duration)
}

func TestStartGraphicsUnknownGraphic(t *testing.T) {
	encoder := &fakeEncoder{}
	svc := NewScheduleService(encoder, newFakeStore(), zap.NewNop())

	err := svc.StartGraphics(context.Background(), "123", "nope", 0)
	assert.True(t, errors.Is(err, errs.ErrGraphicNotFound))
	assert.Empty(t, encoder.batches)
}

func TestStopGraphics(t *testing.T) {
	encoder := &fakeEncoder{}
	svc := NewScheduleService(encoder, newFakeStore(), zap.NewNop())

	require.NoError(t, svc.StopGraphics(context.Background(), "123"))

	action := encoder.lastBatch().actions[0]
	assert.NotNil(t, action.ScheduleActionSettings.MotionGraphicsImageDeactivateSettings)
	assert.NotEmpty(t, action.ActionName)
}
