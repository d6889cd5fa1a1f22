// Package vox holds the wire types exchanged with the Vox.ai platform:
// call lifecycle webhooks, inbound-call webhooks and their responses.
package vox

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type EventType string

const (
	EventCallStarted EventType = "call_started"
	EventCallEnded   EventType = "call_ended"
	EventCallInbound EventType = "call_inbound"
)

// CallEvent is the envelope the platform POSTs on call lifecycle
// transitions. The same call shape carries both call_started and
// call_ended; ended-only fields stay empty on start events.
type CallEvent struct {
	Event EventType   `json:"event"`
	Call  CallDetails `json:"call"`
}

type CallDetails struct {
	AgentID                    string           `json:"agent_id,omitempty"`
	CallID                     string           `json:"call_id"`
	CallType                   string           `json:"call_type,omitempty"`
	CallFrom                   string           `json:"call_from,omitempty"`
	CallTo                     string           `json:"call_to,omitempty"`
	DynamicVariables           map[string]any   `json:"dynamic_variables,omitempty"`
	Metadata                   map[string]any   `json:"metadata,omitempty"`
	StartTimestamp             *int64           `json:"start_timestamp,omitempty"`
	OptOutSensitiveDataStorage *bool            `json:"opt_out_sensitive_data_storage,omitempty"`
	DisconnectionReason        string           `json:"disconnection_reason,omitempty"`
	EndTimestamp               *int64           `json:"end_timestamp,omitempty"`
	DurationMS                 *int64           `json:"duration_ms,omitempty"`
	Transcript                 []TranscriptTurn `json:"transcript,omitempty"`
	TranscriptWithToolCalls    []TranscriptTurn `json:"transcript_with_tool_calls,omitempty"`
	RecordingURL               string           `json:"recording_url,omitempty"`
	CallCost                   *CallCost        `json:"call_cost,omitempty"`
	CallAnalysis               *CallAnalysis    `json:"call_analysis,omitempty"`
}

// TranscriptTurn covers both plain dialogue turns (role/content) and
// tool-call turns (tool_call_id/name/arguments/content). Unused fields
// stay empty so mixed transcripts round-trip losslessly.
type TranscriptTurn struct {
	Role       string         `json:"role"`
	Content    string         `json:"content,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
	Name       string         `json:"name,omitempty"`
	Arguments  map[string]any `json:"arguments,omitempty"`
}

type CallCost struct {
	TotalCreditsUsed *int `json:"total_credits_used,omitempty"`
	DurationSeconds  *int `json:"duration_seconds,omitempty"`
}

type CustomAnalysisItem struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value any    `json:"value"`
}

type CallAnalysis struct {
	Summary            string               `json:"summary,omitempty"`
	UserSentiment      string               `json:"user_sentiment,omitempty"`
	CustomAnalysisData []CustomAnalysisItem `json:"custom_analysis_data,omitempty"`
}

func (e CallEvent) Validate() error {
	switch e.Event {
	case EventCallStarted, EventCallEnded:
	case "":
		return errors.New("event is required")
	default:
		return fmt.Errorf("unsupported event %q", e.Event)
	}
	if strings.TrimSpace(e.Call.CallID) == "" {
		return errors.New("call.call_id is required")
	}
	return nil
}

// InboundRequest is the payload of the inbound-call webhook.
type InboundRequest struct {
	Event       EventType   `json:"event"`
	CallInbound InboundCall `json:"call_inbound"`
}

type InboundCall struct {
	FromNumber string `json:"from_number,omitempty"`
	ToNumber   string `json:"to_number,omitempty"`
}

func (r InboundRequest) Validate() error {
	if r.Event != EventCallInbound {
		return fmt.Errorf("unsupported event %q", r.Event)
	}
	return nil
}

// InboundEnrichment steers the live conversation: dynamic variables are
// substituted into the agent prompt, metadata is attached to the call.
type InboundEnrichment struct {
	DynamicVariables map[string]any `json:"dynamic_variables"`
	Metadata         map[string]any `json:"metadata"`
}

type InboundResponse struct {
	CallInbound InboundEnrichment `json:"call_inbound"`
}

// DecodeCallEvent parses and validates a call lifecycle webhook body.
func DecodeCallEvent(data []byte) (CallEvent, error) {
	var event CallEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return CallEvent{}, fmt.Errorf("decode call event: %w", err)
	}
	if err := event.Validate(); err != nil {
		return CallEvent{}, err
	}
	return event, nil
}
