package medialive

// Channel is the encoder's description of a channel. List responses carry the
// same shape without PipelineDetails; the describe call fills everything.
type Channel struct {
	ID               string            `json:"Id"`
	Arn              string            `json:"Arn,omitempty"`
	Name             string            `json:"Name,omitempty"`
	State            string            `json:"State"`
	InputAttachments []InputAttachment `json:"InputAttachments,omitempty"`
	PipelineDetails  []PipelineDetail  `json:"PipelineDetails,omitempty"`
	Destinations     []Destination     `json:"Destinations,omitempty"`
	EncoderSettings  *EncoderSettings  `json:"EncoderSettings,omitempty"`
}

// InputAttachment is one input wired to a channel.
type InputAttachment struct {
	InputID             string `json:"InputId"`
	InputAttachmentName string `json:"InputAttachmentName"`
}

// PipelineDetail reports the running state of one encoder pipeline.
type PipelineDetail struct {
	ActiveInputAttachmentName string `json:"ActiveInputAttachmentName"`
}

// Destination is an output destination of a channel; packaging-bound
// destinations carry MediaPackageSettings.
type Destination struct {
	ID                   string                `json:"Id,omitempty"`
	MediaPackageSettings []MediaPackageSetting `json:"MediaPackageSettings,omitempty"`
}

// MediaPackageSetting names the packaging channel a destination feeds.
type MediaPackageSetting struct {
	ChannelID string `json:"ChannelId"`
}

// EncoderSettings is the subset of encoder settings this service reads.
type EncoderSettings struct {
	MotionGraphicsConfiguration *MotionGraphicsConfiguration `json:"MotionGraphicsConfiguration,omitempty"`
}

// MotionGraphicsConfiguration carries the ENABLED/DISABLED insertion flag.
type MotionGraphicsConfiguration struct {
	MotionGraphicsInsertion string `json:"MotionGraphicsInsertion,omitempty"`
}

// MotionGraphicsEnabled reports whether motion graphics insertion is enabled
// on the channel. Any absent element of the settings path means disabled.
func (c *Channel) MotionGraphicsEnabled() bool {
	if c == nil || c.EncoderSettings == nil || c.EncoderSettings.MotionGraphicsConfiguration == nil {
		return false
	}
	return c.EncoderSettings.MotionGraphicsConfiguration.MotionGraphicsInsertion == "ENABLED"
}

// ScheduleAction is one schedule entry submitted to the encoder.
type ScheduleAction struct {
	ActionName                  string                      `json:"ActionName"`
	ScheduleActionSettings      ScheduleActionSettings      `json:"ScheduleActionSettings"`
	ScheduleActionStartSettings ScheduleActionStartSettings `json:"ScheduleActionStartSettings"`
}

// ScheduleActionSettings holds exactly one of the supported action payloads.
type ScheduleActionSettings struct {
	InputSwitchSettings                   *InputSwitchSettings                   `json:"InputSwitchSettings,omitempty"`
	InputPrepareSettings                  *InputPrepareSettings                  `json:"InputPrepareSettings,omitempty"`
	MotionGraphicsImageActivateSettings   *MotionGraphicsImageActivateSettings   `json:"MotionGraphicsImageActivateSettings,omitempty"`
	MotionGraphicsImageDeactivateSettings *MotionGraphicsImageDeactivateSettings `json:"MotionGraphicsImageDeactivateSettings,omitempty"`
}

// InputSwitchSettings switches the running pipeline to the named attachment.
type InputSwitchSettings struct {
	InputAttachmentNameReference string `json:"InputAttachmentNameReference"`
}

// InputPrepareSettings warms the named attachment without switching to it.
type InputPrepareSettings struct {
	InputAttachmentNameReference string `json:"InputAttachmentNameReference"`
}

// MotionGraphicsImageActivateSettings shows an overlay image.
type MotionGraphicsImageActivateSettings struct {
	Duration int    `json:"Duration"`
	URL      string `json:"Url"`
}

// MotionGraphicsImageDeactivateSettings hides the overlay; it has no fields.
type MotionGraphicsImageDeactivateSettings struct{}

// ScheduleActionStartSettings controls when the action runs; only immediate
// mode is used here.
type ScheduleActionStartSettings struct {
	ImmediateModeScheduleActionStartSettings struct{} `json:"ImmediateModeScheduleActionStartSettings"`
}

// ImmediateAction builds a schedule action that runs as soon as the encoder
// processes it.
func ImmediateAction(name string, settings ScheduleActionSettings) ScheduleAction {
	return ScheduleAction{
		ActionName:             name,
		ScheduleActionSettings: settings,
	}
}

type listChannelsResponse struct {
	Channels  []Channel `json:"Channels"`
	NextToken string    `json:"NextToken,omitempty"`
}

type batchUpdateScheduleRequest struct {
	Creates batchScheduleActionCreateRequest `json:"Creates"`
}

type batchScheduleActionCreateRequest struct {
	ScheduleActions []ScheduleAction `json:"ScheduleActions"`
}
