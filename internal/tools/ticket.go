package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// TicketSystem is the seam to a real ticketing backend.
type TicketSystem interface {
	CreateTicket(ctx context.Context, chargerID, description string) (string, error)
}

type simulatedTicketSystem struct{}

func (simulatedTicketSystem) CreateTicket(context.Context, string, string) (string, error) {
	return "TKT-" + strings.ToUpper(uuid.NewString()[:8]), nil
}

type createTicketArgs struct {
	ChargerID        string `mapstructure:"charger_id"`
	IssueDescription string `mapstructure:"issue_description"`
}

func (r *Router) createTicket(ctx context.Context, payload map[string]any) Result {
	var args createTicketArgs
	if err := decodeArgs(payload, &args); err != nil {
		return errorResult("INVALID_PAYLOAD", fmt.Sprintf("invalid payload: %v", err))
	}
	// charger_id is validated before any other field.
	if strings.TrimSpace(args.ChargerID) == "" {
		return errorResult("MISSING_CHARGER_ID", "charger_id is required")
	}
	if strings.TrimSpace(args.IssueDescription) == "" {
		return errorResult("MISSING_ISSUE_DESCRIPTION", "issue_description is required")
	}

	ticketID, err := r.tickets.CreateTicket(ctx, args.ChargerID, args.IssueDescription)
	if err != nil {
		r.logger.Printf("ticket creation failed charger_id=%s err=%v", args.ChargerID, err)
		return errorResult("TICKET_CREATE_FAILED", "ticket system rejected the request")
	}

	return Result{
		"status":     "success",
		"ticket_id":  ticketID,
		"charger_id": args.ChargerID,
		"message":    fmt.Sprintf("ticket %s created for charger %s", ticketID, args.ChargerID),
	}
}
