package errs

import "errors"

// Доменные сентинель-ошибки для маппинга в HTTP коды в handlers.
var (
	ErrChannelNotFound = errors.New("channel not found")
	ErrGraphicNotFound = errors.New("graphic not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrThrottled       = errors.New("request throttled")

	// ErrStaleAlert is the single recoverable condition on the alert path:
	// the stored row already carries an equal or newer AlertedAt.
	ErrStaleAlert = errors.New("alert older than stored state")
)
