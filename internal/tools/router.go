// Package tools routes named tool invocations from the conversational
// agent to their backend operations. Every operation returns a Result
// with at least "status" and "message"; failed validations carry an
// "error_code" and never reach a side effect.
package tools

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Result is the free-form JSON object handed back to the agent.
type Result map[string]any

// Operation executes one named tool against its payload. Operations
// validate their own required fields and report failures as Results,
// not errors.
type Operation func(ctx context.Context, payload map[string]any) Result

type Option func(*Router)

type Router struct {
	logger  *log.Logger
	ops     map[string]Operation
	now     func() time.Time
	randInt func(n int) int
	tickets TicketSystem
	surveys SurveyStore
}

func NewRouter(logger *log.Logger, opts ...Option) *Router {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	r := &Router{
		logger:  logger,
		now:     time.Now,
		randInt: rand.Intn,
		tickets: simulatedTicketSystem{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.ops = map[string]Operation{
		"get_charger_status": r.getChargerStatus,
		"control_charger":    r.controlCharger,
		"create_ticket":      r.createTicket,
		"check_reservation":  r.checkReservation,
		"classify_inquiry":   r.classifyInquiry,
		"schedule_callback":  r.scheduleCallback,
		"submit_survey":      r.submitSurvey,
	}
	return r
}

func WithClock(now func() time.Time) Option {
	return func(r *Router) {
		if now != nil {
			r.now = now
		}
	}
}

func WithRandInt(randInt func(n int) int) Option {
	return func(r *Router) {
		if randInt != nil {
			r.randInt = randInt
		}
	}
}

func WithTicketSystem(ts TicketSystem) Option {
	return func(r *Router) {
		if ts != nil {
			r.tickets = ts
		}
	}
}

func WithSurveyStore(ss SurveyStore) Option {
	return func(r *Router) {
		r.surveys = ss
	}
}

// Dispatch resolves the tool by exact name match. Unrecognized names
// fail softly with an error Result.
func (r *Router) Dispatch(ctx context.Context, toolName string, payload map[string]any) Result {
	op, ok := r.ops[toolName]
	if !ok {
		r.logger.Printf("unknown tool call tool=%q", toolName)
		return errorResult("UNKNOWN_TOOL", fmt.Sprintf("unknown tool: %s", toolName))
	}
	r.logger.Printf("tool call tool=%q", toolName)
	return op(ctx, payload)
}

func errorResult(code, message string) Result {
	return Result{
		"status":     "error",
		"error_code": code,
		"message":    message,
	}
}

func decodeArgs(payload map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{Result: out})
	if err != nil {
		return err
	}
	return dec.Decode(payload)
}
