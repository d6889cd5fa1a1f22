// Package forward delivers call events to an external automation
// receiver (Make.com style webhook), reshaping the payload per event
// type before sending.
package forward

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/voxkit/voxbridge/internal/vox"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBodyBytes  = 1 << 20
)

type Option func(*Handler)

type Handler struct {
	url        string
	overrides  map[string]string
	httpClient *http.Client
	logger     *log.Logger
	now        func() time.Time
}

// New builds a forwarding handler. url may be empty, in which case the
// handler skips every event. overrides maps an agent id to the
// dynamic-variable key whose value becomes the customer name in the
// compact per-agent envelope.
func New(url string, overrides map[string]string, logger *log.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	h := &Handler{
		url:        strings.TrimSpace(url),
		overrides:  overrides,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

func WithHTTPClient(client *http.Client) Option {
	return func(h *Handler) {
		if client != nil {
			h.httpClient = client
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

func (h *Handler) Name() string {
	return "forward"
}

func (h *Handler) Handle(ctx context.Context, event vox.CallEvent) error {
	if h.url == "" {
		h.logger.Printf("forward: no automation webhook url configured, skipping event=%s", event.Event)
		return nil
	}
	// Start events carry nothing the automation flow consumes.
	if event.Event == vox.EventCallStarted {
		return nil
	}

	body, err := json.Marshal(h.buildPayload(event))
	if err != nil {
		return fmt.Errorf("marshal forward payload: %w", err)
	}
	return post(ctx, h.httpClient, h.url, body)
}

func (h *Handler) buildPayload(event vox.CallEvent) map[string]any {
	now := h.now().UTC().Format(time.RFC3339)
	agentID := event.Call.AgentID

	if key, ok := h.overrides[agentID]; ok && agentID != "" {
		h.logger.Printf("forward: using override envelope agent_id=%s variable=%s", agentID, key)
		var customerName any
		if event.Call.DynamicVariables != nil {
			customerName = event.Call.DynamicVariables[key]
		}
		return map[string]any{
			"event_type":           "custom_call_ended",
			"call_id":              event.Call.CallID,
			"disconnection_reason": event.Call.DisconnectionReason,
			"customer_name":        customerName,
			"processed_at":         now,
			"agent_id":             agentID,
		}
	}

	return map[string]any{
		"event_type":           string(event.Event),
		"timestamp":            now,
		"call_id":              event.Call.CallID,
		"agent_id":             agentID,
		"disconnection_reason": event.Call.DisconnectionReason,
		"duration_ms":          event.Call.DurationMS,
		"call_from":            event.Call.CallFrom,
		"call_to":              event.Call.CallTo,
	}
}

func post(ctx context.Context, client *http.Client, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build forward request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("post forward webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	errorBody, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		return fmt.Errorf("forward webhook status=%d read body: %w", resp.StatusCode, err)
	}
	return fmt.Errorf("forward webhook status=%d body=%q", resp.StatusCode, string(errorBody))
}
