package model

// InputAttachmentView is one input attachment in a channel summary, with the
// derived Active flag.
type InputAttachmentView struct {
	ID     string `json:"Id"`
	Name   string `json:"Name"`
	Active bool   `json:"Active"`
}

// ChannelSummary is one element of GET /channels.
type ChannelSummary struct {
	ID               string                `json:"Id"`
	State            string                `json:"State"`
	Name             string                `json:"Name"`
	InputAttachments []InputAttachmentView `json:"InputAttachments"`
}

// ChannelsResponse is the envelope for GET /channels.
type ChannelsResponse struct {
	Channels []ChannelSummary `json:"Channels"`
}

// AttachmentView is the public shape of an output or graphic row: the stored
// row minus SortKey/ChannelId/ExpiresAt.
type AttachmentView struct {
	ID   string `json:"Id"`
	URL  string `json:"Url"`
	Name string `json:"Name"`
}

// AlertView is the public shape of an alert row.
type AlertView struct {
	ID        string `json:"Id"`
	State     string `json:"State"`
	Message   string `json:"Message"`
	AlertedAt int64  `json:"AlertedAt"`
}

// ChannelDetail is the response for GET /channels/:id.
type ChannelDetail struct {
	ChannelID       string           `json:"ChannelId"`
	Outputs         []AttachmentView `json:"Outputs"`
	Graphics        []AttachmentView `json:"Graphics"`
	Alerts          []AlertView      `json:"Alerts"`
	GraphicsEnabled bool             `json:"GraphicsEnabled"`
}

// ChannelStatusResponse is the response for PUT /channels/:id/status/:status.
type ChannelStatusResponse struct {
	ID    string `json:"Id"`
	State string `json:"State"`
}

// ActiveInputResponse is the response for PUT /channels/:id/activeinput/:name.
type ActiveInputResponse struct {
	ActiveInput string `json:"ActiveInput"`
}

// CreateAttachmentRequest is the strict body for POST outputs/graphics.
// Pointers so missing required fields can be told apart from empty strings.
type CreateAttachmentRequest struct {
	URL  *string `json:"Url"`
	Name *string `json:"Name"`
}

// StartGraphicsRequest is the strict body for POST graphics/:gid/start.
type StartGraphicsRequest struct {
	Duration *int `json:"Duration"`
}

// OutputMetadata carries the packaging channel id of a discovered output.
type OutputMetadata struct {
	ChannelID string `json:"ChannelId"`
}

// DiscoveredOutput is one element of GET /channels/:id/outputs/discover.
type DiscoveredOutput struct {
	Name           string         `json:"Name"`
	URL            string         `json:"Url"`
	Type           string         `json:"Type"`
	OutputMetadata OutputMetadata `json:"OutputMetadata"`
}

// DiscoveredOutputsResponse is the envelope for the discover endpoint.
type DiscoveredOutputsResponse struct {
	Outputs []DiscoveredOutput `json:"Outputs"`
}
