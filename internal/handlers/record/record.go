// Package record persists call events through the call store.
package record

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/voxkit/voxbridge/internal/callstore"
	"github.com/voxkit/voxbridge/internal/vox"
)

type Handler struct {
	store  callstore.Store
	logger *log.Logger
}

// New builds the persistence handler. store may be nil when no
// database is configured; the handler then skips with a warning.
func New(store callstore.Store, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Handler{store: store, logger: logger}
}

func (h *Handler) Name() string {
	return "record"
}

func (h *Handler) Handle(ctx context.Context, event vox.CallEvent) error {
	if h.store == nil {
		h.logger.Printf("record: no call store configured, skipping event=%s call_id=%s", event.Event, event.Call.CallID)
		return nil
	}
	if err := h.store.SaveCallEvent(ctx, event); err != nil {
		return fmt.Errorf("save call event: %w", err)
	}
	h.logger.Printf("record: stored event=%s call_id=%s", event.Event, event.Call.CallID)
	return nil
}
