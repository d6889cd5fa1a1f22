package dispatch

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/voxkit/voxbridge/internal/handlers"
	"github.com/voxkit/voxbridge/internal/vox"
)

// Dispatcher fans one call lifecycle event out to every registered
// handler. Handlers run synchronously in registration order so logs
// and side effects stay deterministic; a failing handler is logged
// and skipped, it never aborts the batch. There are no retries: a
// failed attempt is final for that event.
type Dispatcher struct {
	logger   *log.Logger
	handlers []handlers.Handler
}

func New(logger *log.Logger, hs []handlers.Handler) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Dispatcher{
		logger:   logger,
		handlers: hs,
	}
}

// Dispatch runs every handler against the event and reports success to
// the caller regardless of individual handler outcomes.
func (d *Dispatcher) Dispatch(ctx context.Context, event vox.CallEvent) string {
	for _, h := range d.handlers {
		d.logger.Printf("handler=%s event=%s call_id=%s start", h.Name(), event.Event, event.Call.CallID)
		if err := h.Handle(ctx, event); err != nil {
			d.logger.Printf("handler=%s event=%s call_id=%s err=%v", h.Name(), event.Event, event.Call.CallID, err)
			continue
		}
		d.logger.Printf("handler=%s event=%s call_id=%s done", h.Name(), event.Event, event.Call.CallID)
	}
	return fmt.Sprintf("call webhook event %q processed", event.Event)
}
