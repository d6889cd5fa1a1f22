package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/voxkit/voxbridge/internal/callstore"
)

// SurveyStore is the subset of the call store the survey tool needs.
type SurveyStore interface {
	SaveSurvey(ctx context.Context, rec callstore.SurveyRecord) error
}

type submitSurveyArgs struct {
	CallID  string `mapstructure:"call_id"`
	Score   any    `mapstructure:"score"`
	Comment string `mapstructure:"comment"`
}

func (r *Router) submitSurvey(ctx context.Context, payload map[string]any) Result {
	var args submitSurveyArgs
	if err := decodeArgs(payload, &args); err != nil {
		return errorResult("INVALID_PAYLOAD", fmt.Sprintf("invalid payload: %v", err))
	}
	if args.Score == nil {
		return errorResult("MISSING_SCORE", "score is required")
	}
	score, ok := asInt(args.Score)
	if !ok || score < 1 || score > 5 {
		return errorResult("INVALID_SCORE", "score must be an integer between 1 and 5")
	}

	if r.surveys != nil {
		rec := callstore.SurveyRecord{
			CallID:  strings.TrimSpace(args.CallID),
			Score:   score,
			Comment: args.Comment,
		}
		if err := r.surveys.SaveSurvey(ctx, rec); err != nil {
			r.logger.Printf("survey save failed call_id=%s err=%v", rec.CallID, err)
			return errorResult("SURVEY_SAVE_FAILED", "failed to store the survey")
		}
	} else {
		r.logger.Printf("no survey store configured, survey not persisted call_id=%s", args.CallID)
	}

	return Result{
		"status":  "success",
		"score":   score,
		"message": "thank you for your feedback",
	}
}
