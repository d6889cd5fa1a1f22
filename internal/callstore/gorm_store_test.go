package callstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/voxkit/voxbridge/internal/vox"
)

func TestGormStoreSaveAndGetCall(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "voxbridge.db")
	store, err := NewGormStore("sqlite", dbPath)
	if err != nil {
		t.Fatalf("new gorm store: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	started := vox.CallEvent{
		Event: vox.EventCallStarted,
		Call:  vox.CallDetails{CallID: "call_1", AgentID: "agent_1", CallFrom: "821012345678"},
	}
	if err := store.SaveCallEvent(ctx, started); err != nil {
		t.Fatalf("save started: %v", err)
	}

	rec, err := store.GetCall(ctx, "call_1")
	if err != nil {
		t.Fatalf("get call: %v", err)
	}
	if rec.EventType != "call_started" || rec.AgentID != "agent_1" {
		t.Fatalf("unexpected record: %+v", rec)
	}

	duration := int64(60000)
	ended := vox.CallEvent{
		Event: vox.EventCallEnded,
		Call: vox.CallDetails{
			CallID:              "call_1",
			AgentID:             "agent_1",
			DisconnectionReason: "user_hangup",
			DurationMS:          &duration,
		},
	}
	if err := store.SaveCallEvent(ctx, ended); err != nil {
		t.Fatalf("save ended: %v", err)
	}

	rec, err = store.GetCall(ctx, "call_1")
	if err != nil {
		t.Fatalf("get call after upsert: %v", err)
	}
	if rec.EventType != "call_ended" || rec.DurationMS != 60000 || rec.DisconnectionReason != "user_hangup" {
		t.Fatalf("upsert did not replace fields: %+v", rec)
	}
}

func TestGormStoreGetCallNotFound(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "voxbridge.db")
	store, err := NewGormStore("sqlite", dbPath)
	if err != nil {
		t.Fatalf("new gorm store: %v", err)
	}
	defer func() { _ = store.Close() }()

	_, err = store.GetCall(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGormStoreRejectsEmptyCallID(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "voxbridge.db")
	store, err := NewGormStore("sqlite", dbPath)
	if err != nil {
		t.Fatalf("new gorm store: %v", err)
	}
	defer func() { _ = store.Close() }()

	event := vox.CallEvent{Event: vox.EventCallStarted}
	if err := store.SaveCallEvent(context.Background(), event); err == nil {
		t.Fatalf("expected error for missing call_id")
	}
}

func TestGormStoreSaveSurvey(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "voxbridge.db")
	store, err := NewGormStore("sqlite", dbPath)
	if err != nil {
		t.Fatalf("new gorm store: %v", err)
	}
	defer func() { _ = store.Close() }()

	rec := SurveyRecord{CallID: "call_1", Score: 4, Comment: "친절했어요"}
	if err := store.SaveSurvey(context.Background(), rec); err != nil {
		t.Fatalf("save survey: %v", err)
	}
}
