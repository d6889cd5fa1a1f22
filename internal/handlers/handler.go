package handlers

import (
	"context"

	"github.com/voxkit/voxbridge/internal/vox"
)

// Handler is one downstream consumer of a call lifecycle event.
// Implementations must treat the event as read-only.
type Handler interface {
	Name() string
	Handle(context.Context, vox.CallEvent) error
}
