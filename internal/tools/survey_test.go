package tools

import (
	"context"
	"testing"

	"github.com/voxkit/voxbridge/internal/callstore"
)

func TestSubmitSurveyValidScores(t *testing.T) {
	store := callstore.NewMemoryStore()
	r := NewRouter(nil, WithSurveyStore(store))

	for _, score := range []any{1, 5, float64(3)} {
		res := r.Dispatch(context.Background(), "submit_survey", map[string]any{
			"call_id": "call_1",
			"score":   score,
		})
		assertSuccess(t, res)
	}
	if got := len(store.Surveys()); got != 3 {
		t.Fatalf("expected 3 stored surveys, got %d", got)
	}
}

func TestSubmitSurveyInvalidScores(t *testing.T) {
	store := callstore.NewMemoryStore()
	r := NewRouter(nil, WithSurveyStore(store))

	res := r.Dispatch(context.Background(), "submit_survey", map[string]any{})
	assertError(t, res, "MISSING_SCORE")

	for _, score := range []any{0, 6, 3.5, "five", true} {
		res := r.Dispatch(context.Background(), "submit_survey", map[string]any{"score": score})
		assertError(t, res, "INVALID_SCORE")
	}
	if got := len(store.Surveys()); got != 0 {
		t.Fatalf("invalid surveys must not be stored, got %d", got)
	}
}

func TestSubmitSurveyWithoutStore(t *testing.T) {
	r := NewRouter(nil)
	res := r.Dispatch(context.Background(), "submit_survey", map[string]any{"score": 4})
	assertSuccess(t, res)
}
