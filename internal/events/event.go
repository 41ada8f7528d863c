package events

import (
	"fmt"
	"strings"
	"time"

	"github.com/streamops/channel-control/internal/service"
)

// Event is the bus envelope for encoder notifications.
type Event struct {
	DetailType string      `json:"detail-type"`
	Source     string      `json:"source"`
	Time       string      `json:"time"`
	Resources  []string    `json:"resources,omitempty"`
	Detail     EventDetail `json:"detail"`
}

// EventDetail carries the alert payload fields this service consumes. Message
// is a pointer so an event with a present-but-empty message stays valid; only
// an absent key is rejected.
type EventDetail struct {
	AlarmID    string  `json:"alarm_id"`
	AlertType  string  `json:"alert_type,omitempty"`
	AlarmState string  `json:"alarm_state"`
	ChannelArn string  `json:"channel_arn"`
	Message    *string `json:"message"`
	Pipeline   string  `json:"pipeline,omitempty"`
}

// IsChannelAlert reports whether the event is an encoder channel alert. Only
// matching events reach the reconciler; everything else is ignored.
func (e Event) IsChannelAlert() bool {
	return strings.Contains(e.DetailType, "Alert") && strings.Contains(e.DetailType, "MediaLive")
}

// ParseAlert extracts the reconciler input from the event. A missing required
// field or unparseable timestamp is fatal for the event, never silently
// dropped.
func (e Event) ParseAlert() (service.Alert, error) {
	d := e.Detail
	if d.AlarmID == "" || d.AlarmState == "" || d.Message == nil || d.ChannelArn == "" {
		return service.Alert{}, fmt.Errorf("invalid alert event: missing detail fields (alarm_id=%q)", d.AlarmID)
	}
	at, err := time.Parse(time.RFC3339, e.Time)
	if err != nil {
		return service.Alert{}, fmt.Errorf("invalid alert event time %q: %w", e.Time, err)
	}
	// Channel id is the last colon segment of the channel ARN.
	segments := strings.Split(d.ChannelArn, ":")
	return service.Alert{
		AlarmID:   d.AlarmID,
		State:     d.AlarmState,
		Message:   *d.Message,
		ChannelID: segments[len(segments)-1],
		At:        at,
	}, nil
}
