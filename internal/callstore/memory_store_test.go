package callstore

import (
	"context"
	"errors"
	"testing"

	"github.com/voxkit/voxbridge/internal/vox"
)

func TestMemoryStoreUpsertByCallID(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	started := vox.CallEvent{Event: vox.EventCallStarted, Call: vox.CallDetails{CallID: "call_1"}}
	if err := store.SaveCallEvent(ctx, started); err != nil {
		t.Fatalf("save started: %v", err)
	}
	ended := vox.CallEvent{Event: vox.EventCallEnded, Call: vox.CallDetails{CallID: "call_1", DisconnectionReason: "agent_hangup"}}
	if err := store.SaveCallEvent(ctx, ended); err != nil {
		t.Fatalf("save ended: %v", err)
	}

	rec, err := store.GetCall(ctx, "call_1")
	if err != nil {
		t.Fatalf("get call: %v", err)
	}
	if rec.EventType != "call_ended" || rec.DisconnectionReason != "agent_hangup" {
		t.Fatalf("unexpected record: %+v", rec)
	}

	if _, err := store.GetCall(ctx, "other"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreSurveys(t *testing.T) {
	store := NewMemoryStore()
	if err := store.SaveSurvey(context.Background(), SurveyRecord{CallID: "call_1", Score: 5}); err != nil {
		t.Fatalf("save survey: %v", err)
	}
	surveys := store.Surveys()
	if len(surveys) != 1 || surveys[0].Score != 5 {
		t.Fatalf("unexpected surveys: %+v", surveys)
	}
	if surveys[0].ID == "" {
		t.Fatalf("expected generated survey id")
	}
}
