package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/streamops/channel-control/internal/errs"
	"go.uber.org/zap"
)

// messageResponse is the generic failure envelope.
type messageResponse struct {
	Message string `json:"message"`
}

const (
	msgInvalid   = "The request parameters were invalid."
	msgThrottled = "The request was throttled, please try again."
	msgBackend   = "Something went wrong, please try again."
)

// respondError logs the failure with request context and translates it into
// the HTTP taxonomy: 404 empty body, 400/429/502 with the message envelope.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	fields := []zap.Field{
		zap.String("path", c.Request.URL.Path),
		zap.String("query_strings", c.Request.URL.RawQuery),
		zap.Error(err),
	}
	switch {
	case errors.Is(err, errs.ErrChannelNotFound) || errors.Is(err, errs.ErrGraphicNotFound):
		log.Error("not found", fields...)
		c.Status(http.StatusNotFound)
	case errors.Is(err, errs.ErrInvalidInput):
		log.Error("bad input", fields...)
		c.JSON(http.StatusBadRequest, messageResponse{Message: msgInvalid})
	case errors.Is(err, errs.ErrThrottled):
		log.Error("throttled request", fields...)
		c.JSON(http.StatusTooManyRequests, messageResponse{Message: msgThrottled})
	default:
		log.Error("general exception", fields...)
		c.JSON(http.StatusBadGateway, messageResponse{Message: msgBackend})
	}
}

// bindStrict decodes the request body into dst, rejecting unknown fields.
// Any decode failure is a validation error.
func bindStrict(c *gin.Context, dst any) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode body (%v): %w", err, errs.ErrInvalidInput)
	}
	return nil
}
