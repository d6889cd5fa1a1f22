package callstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/voxkit/voxbridge/internal/vox"
)

// MemoryStore is the store used in tests and store-less deployments.
type MemoryStore struct {
	mu      sync.Mutex
	calls   map[string]CallRecord
	surveys []SurveyRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{calls: make(map[string]CallRecord)}
}

func (s *MemoryStore) SaveCallEvent(_ context.Context, event vox.CallEvent) error {
	if strings.TrimSpace(event.Call.CallID) == "" {
		return fmt.Errorf("call_id is required")
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal call event: %w", err)
	}

	now := time.Now().UTC()
	rec := CallRecord{
		CallID:              event.Call.CallID,
		EventType:           string(event.Event),
		AgentID:             event.Call.AgentID,
		CallFrom:            event.Call.CallFrom,
		CallTo:              event.Call.CallTo,
		DisconnectionReason: event.Call.DisconnectionReason,
		Payload:             string(payload),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if event.Call.DurationMS != nil {
		rec.DurationMS = *event.Call.DurationMS
	}
	if event.Call.StartTimestamp != nil {
		rec.StartTimestamp = *event.Call.StartTimestamp
	}
	if event.Call.EndTimestamp != nil {
		rec.EndTimestamp = *event.Call.EndTimestamp
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.calls[rec.CallID]; ok {
		rec.CreatedAt = existing.CreatedAt
	}
	s.calls[rec.CallID] = rec
	return nil
}

func (s *MemoryStore) GetCall(_ context.Context, callID string) (CallRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.calls[strings.TrimSpace(callID)]
	if !ok {
		return CallRecord{}, fmt.Errorf("%w: call %s", ErrNotFound, callID)
	}
	return rec, nil
}

func (s *MemoryStore) SaveSurvey(_ context.Context, rec SurveyRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surveys = append(s.surveys, rec)
	return nil
}

// Surveys returns a copy of the stored surveys in insertion order.
func (s *MemoryStore) Surveys() []SurveyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SurveyRecord, len(s.surveys))
	copy(out, s.surveys)
	return out
}

func (s *MemoryStore) Close() error {
	return nil
}
