// Package callstore persists call lifecycle events and satisfaction
// surveys, keyed by the platform call id.
package callstore

import (
	"context"
	"errors"
	"time"

	"github.com/voxkit/voxbridge/internal/vox"
)

var ErrNotFound = errors.New("not found")

type Store interface {
	SaveCallEvent(context.Context, vox.CallEvent) error
	GetCall(context.Context, string) (CallRecord, error)
	SaveSurvey(context.Context, SurveyRecord) error
	Close() error
}

// CallRecord is the stored view of a call. A call_ended event for a
// call id that was already stored on call_started overwrites the row.
type CallRecord struct {
	CallID              string
	EventType           string
	AgentID             string
	CallFrom            string
	CallTo              string
	DisconnectionReason string
	DurationMS          int64
	StartTimestamp      int64
	EndTimestamp        int64
	Payload             string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type SurveyRecord struct {
	ID        string
	CallID    string
	Score     int
	Comment   string
	CreatedAt time.Time
}
