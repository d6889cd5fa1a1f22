package vox

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestDecodeCallEventValidation(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"started ok", `{"event":"call_started","call":{"call_id":"c_1"}}`, false},
		{"ended ok", `{"event":"call_ended","call":{"call_id":"c_2"}}`, false},
		{"missing event", `{"call":{"call_id":"c_3"}}`, true},
		{"unknown event", `{"event":"call_paused","call":{"call_id":"c_4"}}`, true},
		{"missing call id", `{"event":"call_ended","call":{}}`, true},
		{"invalid json", `{"event":`, true},
	}

	for _, tc := range cases {
		_, err := DecodeCallEvent([]byte(tc.body))
		if tc.wantErr && err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestCallEndedTranscriptRoundTrip(t *testing.T) {
	startTS := int64(1714000000000)
	endTS := int64(1714000180000)
	duration := int64(180000)
	credits := 42

	original := CallEvent{
		Event: EventCallEnded,
		Call: CallDetails{
			AgentID:             "agent_1",
			CallID:              "call_abc",
			CallType:            "phone",
			CallFrom:            "821012345678",
			CallTo:              "820212341234",
			DynamicVariables:    map[string]any{"customer_name": "김철수"},
			Metadata:            map[string]any{"campaign": "summer"},
			StartTimestamp:      &startTS,
			EndTimestamp:        &endTS,
			DurationMS:          &duration,
			DisconnectionReason: "user_hangup",
			RecordingURL:        "https://example.com/rec/call_abc.wav",
			Transcript: []TranscriptTurn{
				{Role: "agent", Content: "무엇을 도와드릴까요?"},
				{Role: "user", Content: "충전기가 고장났어요."},
			},
			TranscriptWithToolCalls: []TranscriptTurn{
				{Role: "agent", Content: "확인해 보겠습니다."},
				{
					Role:       "tool_call_invocation",
					ToolCallID: "tc_1",
					Name:       "get_charger_status",
					Arguments:  map[string]any{"charger_id": "CHG-001"},
				},
				{
					Role:       "tool_call_result",
					ToolCallID: "tc_1",
					Content:    `{"status":"out_of_service"}`,
				},
				{Role: "agent", Content: "점검이 필요한 상태입니다."},
			},
			CallCost: &CallCost{TotalCreditsUsed: &credits},
			CallAnalysis: &CallAnalysis{
				Summary:       "charger fault report",
				UserSentiment: "negative",
				CustomAnalysisData: []CustomAnalysisItem{
					{Type: "boolean", Name: "needs_followup", Value: true},
				},
			},
		},
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	decoded, err := DecodeCallEvent(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	reencoded, err := json.Marshal(decoded)
	if err != nil {
		t.Fatalf("remarshal: %v", err)
	}

	var first, second map[string]any
	if err := json.Unmarshal(data, &first); err != nil {
		t.Fatalf("unmarshal first: %v", err)
	}
	if err := json.Unmarshal(reencoded, &second); err != nil {
		t.Fatalf("unmarshal second: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("round trip lost fields:\n first=%s\nsecond=%s", data, reencoded)
	}

	if len(decoded.Call.TranscriptWithToolCalls) != 4 {
		t.Fatalf("expected 4 transcript turns, got %d", len(decoded.Call.TranscriptWithToolCalls))
	}
	toolTurn := decoded.Call.TranscriptWithToolCalls[1]
	if toolTurn.Name != "get_charger_status" || toolTurn.ToolCallID != "tc_1" {
		t.Fatalf("tool call turn not preserved: %+v", toolTurn)
	}
}

func TestInboundResponseAlwaysCarriesBothKeys(t *testing.T) {
	resp := InboundResponse{CallInbound: InboundEnrichment{
		DynamicVariables: map[string]any{"user_name": "고객님"},
		Metadata:         map[string]any{},
	}}
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"dynamic_variables"`) || !strings.Contains(string(data), `"metadata"`) {
		t.Fatalf("inbound response must keep both keys: %s", data)
	}
}

func TestInboundRequestValidate(t *testing.T) {
	req := InboundRequest{Event: EventCallInbound}
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req.Event = EventCallStarted
	if err := req.Validate(); err == nil {
		t.Fatalf("expected error for wrong event type")
	}
}
