package tools

import (
	"context"
	"fmt"
	"strings"
)

// Keyword sets are matched case-sensitively as substrings of the raw
// comma-separated keyword text. Urgency detection runs before and
// independently of team routing.
var (
	urgentKeywords = []string{"긴급", "응급", "즉시"}
	changeKeywords = []string{"변경", "일정", "날짜"}
	refundKeywords = []string{"환불", "취소"}
)

// slaHours maps an urgency level to its target resolution bucket.
// Every level resolves to a bucket; anything unrecognized gets the
// normal-urgency target.
func slaHours(urgency string) int {
	switch urgency {
	case "high":
		return 4
	default:
		return 24
	}
}

type classifyInquiryArgs struct {
	Keywords string `mapstructure:"keywords"`
}

func (r *Router) classifyInquiry(_ context.Context, payload map[string]any) Result {
	var args classifyInquiryArgs
	if err := decodeArgs(payload, &args); err != nil {
		return errorResult("INVALID_PAYLOAD", fmt.Sprintf("invalid payload: %v", err))
	}
	if strings.TrimSpace(args.Keywords) == "" {
		return errorResult("MISSING_KEYWORDS", "keywords is required")
	}

	urgency := "normal"
	if containsAny(args.Keywords, urgentKeywords) {
		urgency = "high"
	}

	team := "general"
	switch {
	case containsAny(args.Keywords, changeKeywords):
		team = "change"
	case containsAny(args.Keywords, refundKeywords):
		team = "refund"
	}

	return Result{
		"status":    "success",
		"urgency":   urgency,
		"team":      team,
		"sla_hours": slaHours(urgency),
		"message":   fmt.Sprintf("inquiry routed to %s team with %s urgency", team, urgency),
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
