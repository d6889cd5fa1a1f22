package tools

import (
	"context"
	"fmt"
	"strings"
)

var chargerStatuses = []string{"available", "charging", "out_of_service", "offline"}

var chargerActions = map[string]string{
	"start":  "charging started",
	"stop":   "charging stopped",
	"reboot": "charger rebooting",
}

type chargerStatusArgs struct {
	ChargerID string `mapstructure:"charger_id"`
}

// getChargerStatus simulates an inventory lookup; no real charger
// backend exists yet.
func (r *Router) getChargerStatus(_ context.Context, payload map[string]any) Result {
	var args chargerStatusArgs
	if err := decodeArgs(payload, &args); err != nil {
		return errorResult("INVALID_PAYLOAD", fmt.Sprintf("invalid payload: %v", err))
	}
	if strings.TrimSpace(args.ChargerID) == "" {
		return errorResult("MISSING_CHARGER_ID", "charger_id is required")
	}

	status := chargerStatuses[r.randInt(len(chargerStatuses))]
	outputKW := 50 + r.randInt(51)
	return Result{
		"status":         "success",
		"charger_id":     args.ChargerID,
		"charger_status": status,
		"output_kw":      outputKW,
		"message":        fmt.Sprintf("charger %s is %s", args.ChargerID, status),
	}
}

type chargerControlArgs struct {
	ChargerID string `mapstructure:"charger_id"`
	Action    string `mapstructure:"action"`
}

func (r *Router) controlCharger(_ context.Context, payload map[string]any) Result {
	var args chargerControlArgs
	if err := decodeArgs(payload, &args); err != nil {
		return errorResult("INVALID_PAYLOAD", fmt.Sprintf("invalid payload: %v", err))
	}
	// charger_id is validated before any other field.
	if strings.TrimSpace(args.ChargerID) == "" {
		return errorResult("MISSING_CHARGER_ID", "charger_id is required")
	}
	action := strings.TrimSpace(args.Action)
	if action == "" {
		return errorResult("MISSING_ACTION", "action is required")
	}
	ack, ok := chargerActions[action]
	if !ok {
		return errorResult("INVALID_ACTION", fmt.Sprintf("unsupported action %q (expected start, stop or reboot)", action))
	}

	return Result{
		"status":     "success",
		"charger_id": args.ChargerID,
		"action":     action,
		"result":     "accepted",
		"message":    fmt.Sprintf("charger %s: %s", args.ChargerID, ack),
	}
}
