// Package logging provides a handler that records every call event.
// It sits first in the chain so an event is visible even when every
// downstream delivery fails.
package logging

import (
	"context"
	"io"
	"log"

	"github.com/voxkit/voxbridge/internal/vox"
)

type Handler struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Handler{logger: logger}
}

func (h *Handler) Name() string {
	return "logging"
}

func (h *Handler) Handle(_ context.Context, event vox.CallEvent) error {
	h.logger.Printf("call event received event=%s call_id=%s agent_id=%s from=%s to=%s",
		event.Event, event.Call.CallID, event.Call.AgentID, event.Call.CallFrom, event.Call.CallTo)
	return nil
}
