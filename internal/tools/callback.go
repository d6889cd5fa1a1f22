package tools

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

type scheduleCallbackArgs struct {
	PhoneNumber  string `mapstructure:"phone_number"`
	BusinessDays any    `mapstructure:"business_days"`
}

func (r *Router) scheduleCallback(_ context.Context, payload map[string]any) Result {
	var args scheduleCallbackArgs
	if err := decodeArgs(payload, &args); err != nil {
		return errorResult("INVALID_PAYLOAD", fmt.Sprintf("invalid payload: %v", err))
	}
	if strings.TrimSpace(args.PhoneNumber) == "" {
		return errorResult("MISSING_PHONE_NUMBER", "phone_number is required")
	}

	days := 1
	if args.BusinessDays != nil {
		parsed, ok := asInt(args.BusinessDays)
		if !ok || parsed < 1 {
			return errorResult("INVALID_BUSINESS_DAYS", "business_days must be a positive integer")
		}
		days = parsed
	}

	target := addBusinessDays(r.now(), days)
	return Result{
		"status":         "success",
		"callback_id":    uuid.NewString(),
		"phone_number":   args.PhoneNumber,
		"scheduled_date": target.Format("2006-01-02"),
		"message":        fmt.Sprintf("callback scheduled for %s", target.Format("2006-01-02")),
	}
}

// addBusinessDays walks forward one calendar day at a time, counting
// only Monday through Friday, until exactly n business days have been
// consumed. The returned day is never a weekend.
func addBusinessDays(from time.Time, n int) time.Time {
	d := from
	added := 0
	for added < n {
		d = d.AddDate(0, 0, 1)
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			added++
		}
	}
	return d
}

func asInt(v any) (int, bool) {
	switch value := v.(type) {
	case int:
		return value, true
	case int32:
		return int(value), true
	case int64:
		return int(value), true
	case float64:
		if value != math.Trunc(value) {
			return 0, false
		}
		return int(value), true
	default:
		return 0, false
	}
}
