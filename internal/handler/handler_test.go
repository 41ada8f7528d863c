package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/streamops/channel-control/internal/errs"
	"github.com/streamops/channel-control/internal/model"
	"github.com/streamops/channel-control/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

// fakeChannels implements service.ChannelServicer.
type fakeChannels struct {
	channels []model.ChannelSummary
	detail   *model.ChannelDetail
	status   *model.ChannelStatusResponse
	err      error

	gotStatus string
}

var _ service.ChannelServicer = (*fakeChannels)(nil)

func (f *fakeChannels) List(context.Context) ([]model.ChannelSummary, error) {
	return f.channels, f.err
}

func (f *fakeChannels) Get(_ context.Context, channelID string) (*model.ChannelDetail, error) {
	return f.detail, f.err
}

func (f *fakeChannels) UpdateStatus(_ context.Context, channelID, status string) (*model.ChannelStatusResponse, error) {
	f.gotStatus = status
	return f.status, f.err
}

// fakeSchedule implements service.ScheduleServicer.
type fakeSchedule struct {
	err error

	switched    string
	prepared    string
	startedGfx  string
	gotDuration int
	stopped     bool
}

var _ service.ScheduleServicer = (*fakeSchedule)(nil)

func (f *fakeSchedule) SwitchInput(_ context.Context, channelID, inputName string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.switched = inputName
	return inputName, nil
}

func (f *fakeSchedule) PrepareInput(_ context.Context, channelID, inputName string) error {
	f.prepared = inputName
	return f.err
}

func (f *fakeSchedule) StartGraphics(_ context.Context, channelID, graphicID string, duration int) error {
	f.startedGfx = graphicID
	f.gotDuration = duration
	return f.err
}

func (f *fakeSchedule) StopGraphics(_ context.Context, channelID string) error {
	f.stopped = true
	return f.err
}

// fakeMetadata implements service.MetadataServicer.
type fakeMetadata struct {
	view    *model.AttachmentView
	outputs []model.DiscoveredOutput
	err     error

	deleted []string
	gotURL  string
	gotName string
}

var _ service.MetadataServicer = (*fakeMetadata)(nil)

func (f *fakeMetadata) CreateOutput(_ context.Context, channelID, url, name string) (*model.AttachmentView, error) {
	f.gotURL, f.gotName = url, name
	return f.view, f.err
}

func (f *fakeMetadata) CreateGraphic(_ context.Context, channelID, url, name string) (*model.AttachmentView, error) {
	f.gotURL, f.gotName = url, name
	return f.view, f.err
}

func (f *fakeMetadata) DeleteOutput(_ context.Context, channelID, outputID string) error {
	f.deleted = append(f.deleted, "OUTPUT#"+outputID)
	return f.err
}

func (f *fakeMetadata) DeleteGraphic(_ context.Context, channelID, graphicID string) error {
	f.deleted = append(f.deleted, "GRAPHIC#"+graphicID)
	return f.err
}

func (f *fakeMetadata) DiscoverOutputs(_ context.Context, channelID string) ([]model.DiscoveredOutput, error) {
	return f.outputs, f.err
}

type fixtures struct {
	channels *fakeChannels
	schedule *fakeSchedule
	metadata *fakeMetadata
}

func newTestRouter(f fixtures) http.Handler {
	log := zap.NewNop()
	r := gin.New()
	r.Use(gin.Recovery())

	ch := NewChannelHandler(f.channels, f.schedule, log)
	gfx := NewGraphicsHandler(f.metadata, f.schedule, log)
	out := NewOutputHandler(f.metadata, log)

	channels := r.Group("/channels")
	channels.GET("", ch.List)
	channels.GET("/:id", ch.Get)
	channels.PUT("/:id/status/:status", ch.UpdateStatus)
	channels.PUT("/:id/activeinput/:name", ch.SwitchInput)
	channels.POST("/:id/prepareinput/:name", ch.PrepareInput)
	channels.POST("/:id/graphics", gfx.Create)
	channels.POST("/:id/graphics/:gid", gfx.Stop)
	channels.POST("/:id/graphics/:gid/start", gfx.Start)
	channels.DELETE("/:id/graphics/:gid", gfx.Delete)
	channels.POST("/:id/outputs", out.Create)
	channels.DELETE("/:id/outputs/:oid", out.Delete)
	channels.GET("/:id/outputs/discover", out.Discover)
	return r
}

func doRequest(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestListChannels(t *testing.T) {
	f := fixtures{
		channels: &fakeChannels{channels: []model.ChannelSummary{{ID: "1", State: "IDLE", Name: "main"}}},
		schedule: &fakeSchedule{},
		metadata: &fakeMetadata{},
	}
	w := doRequest(newTestRouter(f), http.MethodGet, "/channels", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"Channels":[{"Id":"1","State":"IDLE","Name":"main","InputAttachments":null}]}`, w.Body.String())
}

func TestListChannelsBackendFailure(t *testing.T) {
	f := fixtures{
		channels: &fakeChannels{err: fmt.Errorf("encoder api status 500")},
		schedule: &fakeSchedule{},
		metadata: &fakeMetadata{},
	}
	w := doRequest(newTestRouter(f), http.MethodGet, "/channels", "")

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"message":"Something went wrong, please try again."}`, w.Body.String())
}

func TestGetChannelNotFound(t *testing.T) {
	f := fixtures{
		channels: &fakeChannels{err: errs.ErrChannelNotFound},
		schedule: &fakeSchedule{},
		metadata: &fakeMetadata{},
	}
	w := doRequest(newTestRouter(f), http.MethodGet, "/channels/missing", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestUpdateStatusValidation(t *testing.T) {
	f := fixtures{
		channels: &fakeChannels{status: &model.ChannelStatusResponse{ID: "1", State: "STARTING"}},
		schedule: &fakeSchedule{},
		metadata: &fakeMetadata{},
	}
	r := newTestRouter(f)

	w := doRequest(r, http.MethodPut, "/channels/1/status/restart", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"The request parameters were invalid."}`, w.Body.String())

	// Status is lowercased before validation.
	w = doRequest(r, http.MethodPut, "/channels/1/status/START", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "start", f.channels.gotStatus)
	assert.JSONEq(t, `{"Id":"1","State":"STARTING"}`, w.Body.String())
}

func TestSwitchInputThrottled(t *testing.T) {
	f := fixtures{
		channels: &fakeChannels{},
		schedule: &fakeSchedule{err: errs.ErrThrottled},
		metadata: &fakeMetadata{},
	}
	w := doRequest(newTestRouter(f), http.MethodPut, "/channels/1/activeinput/cam-1", "")

	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"message":"The request was throttled, please try again."}`, w.Body.String())
}

func TestSwitchInput(t *testing.T) {
	f := fixtures{channels: &fakeChannels{}, schedule: &fakeSchedule{}, metadata: &fakeMetadata{}}
	w := doRequest(newTestRouter(f), http.MethodPut, "/channels/1/activeinput/cam-1", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ActiveInput":"cam-1"}`, w.Body.String())
}

func TestPrepareInput(t *testing.T) {
	f := fixtures{channels: &fakeChannels{}, schedule: &fakeSchedule{}, metadata: &fakeMetadata{}}
	w := doRequest(newTestRouter(f), http.MethodPost, "/channels/1/prepareinput/cam-2", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cam-2", f.schedule.prepared)
}

func TestCreateGraphicSchemaValidation(t *testing.T) {
	f := fixtures{
		channels: &fakeChannels{},
		schedule: &fakeSchedule{},
		metadata: &fakeMetadata{view: &model.AttachmentView{ID: "g1", URL: "https://x", Name: "x"}},
	}
	r := newTestRouter(f)

	// Missing required fields.
	w := doRequest(r, http.MethodPost, "/channels/1/graphics", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Extra field is forbidden.
	w = doRequest(r, http.MethodPost, "/channels/1/graphics", `{"Url":"https://x","Name":"x","Invalid":"y"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"The request parameters were invalid."}`, w.Body.String())

	// Valid body echoes the server-generated id.
	w = doRequest(r, http.MethodPost, "/channels/1/graphics", `{"Url":"https://x","Name":"x"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"Id":"g1","Url":"https://x","Name":"x"}`, w.Body.String())
}

func TestCreateOutput(t *testing.T) {
	f := fixtures{
		channels: &fakeChannels{},
		schedule: &fakeSchedule{},
		metadata: &fakeMetadata{view: &model.AttachmentView{ID: "o1", URL: "https://o", Name: "out"}},
	}
	w := doRequest(newTestRouter(f), http.MethodPost, "/channels/1/outputs", `{"Url":"https://o","Name":"out"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://o", f.metadata.gotURL)
	assert.JSONEq(t, `{"Id":"o1","Url":"https://o","Name":"out"}`, w.Body.String())
}

func TestCreateOutputUnknownChannel(t *testing.T) {
	f := fixtures{
		channels: &fakeChannels{},
		schedule: &fakeSchedule{},
		metadata: &fakeMetadata{err: errs.ErrChannelNotFound},
	}
	w := doRequest(newTestRouter(f), http.MethodPost, "/channels/1/outputs", `{"Url":"https://o","Name":"out"}`)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteGraphic(t *testing.T) {
	f := fixtures{channels: &fakeChannels{}, schedule: &fakeSchedule{}, metadata: &fakeMetadata{}}
	w := doRequest(newTestRouter(f), http.MethodDelete, "/channels/1/graphics/g1", "")

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"GRAPHIC#g1"}, f.metadata.deleted)
}

func TestDeleteOutput(t *testing.T) {
	f := fixtures{channels: &fakeChannels{}, schedule: &fakeSchedule{}, metadata: &fakeMetadata{}}
	w := doRequest(newTestRouter(f), http.MethodDelete, "/channels/1/outputs/o1", "")

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"OUTPUT#o1"}, f.metadata.deleted)
}

func TestStartGraphics(t *testing.T) {
	f := fixtures{channels: &fakeChannels{}, schedule: &fakeSchedule{}, metadata: &fakeMetadata{}}
	r := newTestRouter(f)

	// Duration defaults to 0 when the body omits it.
	w := doRequest(r, http.MethodPost, "/channels/1/graphics/g1/start", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "g1", f.schedule.startedGfx)
	assert.Equal(t, 0, f.schedule.gotDuration)

	w = doRequest(r, http.MethodPost, "/channels/1/graphics/g1/start", `{"Duration":30}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 30, f.schedule.gotDuration)

	// Extra field is forbidden.
	w = doRequest(r, http.MethodPost, "/channels/1/graphics/g1/start", `{"Duration":30,"Invalid":1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStartGraphicsUnknownGraphic(t *testing.T) {
	f := fixtures{
		channels: &fakeChannels{},
		schedule: &fakeSchedule{err: errs.ErrGraphicNotFound},
		metadata: &fakeMetadata{},
	}
	w := doRequest(newTestRouter(f), http.MethodPost, "/channels/1/graphics/g1/start", `{}`)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestStopGraphics(t *testing.T) {
	f := fixtures{channels: &fakeChannels{}, schedule: &fakeSchedule{}, metadata: &fakeMetadata{}}
	w := doRequest(newTestRouter(f), http.MethodPost, "/channels/1/graphics/stop", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, f.schedule.stopped)
}

func TestStopRouteRejectsOtherIDs(t *testing.T) {
	f := fixtures{channels: &fakeChannels{}, schedule: &fakeSchedule{}, metadata: &fakeMetadata{}}
	w := doRequest(newTestRouter(f), http.MethodPost, "/channels/1/graphics/not-stop", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, f.schedule.stopped)
}

func TestDiscoverOutputs(t *testing.T) {
	f := fixtures{
		channels: &fakeChannels{},
		schedule: &fakeSchedule{},
		metadata: &fakeMetadata{outputs: []model.DiscoveredOutput{{
			Name: "ep-1",
			URL:  "https://mp/ep-1",
			Type: "MEDIA_PACKAGE",
			OutputMetadata: model.OutputMetadata{
				ChannelID: "mp-1",
			},
		}}},
	}
	w := doRequest(newTestRouter(f), http.MethodGet, "/channels/1/outputs/discover", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"Outputs":[{"Name":"ep-1","Url":"https://mp/ep-1","Type":"MEDIA_PACKAGE","OutputMetadata":{"ChannelId":"mp-1"}}]}`, w.Body.String())
}
