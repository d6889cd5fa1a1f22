package tools

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// A PNR is exactly 6 characters, uppercase letters or digits.
var pnrPattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

type checkReservationArgs struct {
	PNR string `mapstructure:"pnr"`
}

func (r *Router) checkReservation(_ context.Context, payload map[string]any) Result {
	var args checkReservationArgs
	if err := decodeArgs(payload, &args); err != nil {
		return errorResult("INVALID_PAYLOAD", fmt.Sprintf("invalid payload: %v", err))
	}
	if strings.TrimSpace(args.PNR) == "" {
		return errorResult("MISSING_PNR", "pnr is required")
	}

	// Only case is normalized; surrounding whitespace makes the code invalid.
	normalized := strings.ToUpper(args.PNR)
	valid := pnrPattern.MatchString(normalized)
	message := fmt.Sprintf("reservation code %s is valid", normalized)
	if !valid {
		message = fmt.Sprintf("reservation code %s is not a valid PNR", normalized)
	}

	return Result{
		"status":  "success",
		"pnr":     normalized,
		"valid":   valid,
		"message": message,
	}
}
