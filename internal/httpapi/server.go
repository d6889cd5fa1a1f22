// Package httpapi exposes the integration endpoints called by the
// Vox.ai platform.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/voxkit/voxbridge/internal/tools"
	"github.com/voxkit/voxbridge/internal/vox"
)

const maxRequestBodyBytes = 2 << 20

// ToolDispatcher routes a named tool invocation.
type ToolDispatcher interface {
	Dispatch(ctx context.Context, toolName string, payload map[string]any) tools.Result
}

// EventDispatcher fans a call lifecycle event out to the handlers.
type EventDispatcher interface {
	Dispatch(ctx context.Context, event vox.CallEvent) string
}

// Enricher resolves inbound caller context.
type Enricher interface {
	Enrich(fromNumber, toNumber string) vox.InboundEnrichment
}

type server struct {
	logger     *log.Logger
	tools      ToolDispatcher
	dispatcher EventDispatcher
	enricher   Enricher
}

// NewServer builds the HTTP server with the public integration routes.
func NewServer(logger *log.Logger, addr string, td ToolDispatcher, ed EventDispatcher, en Enricher) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewHandler(logger, td, ed, en),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func NewHandler(logger *log.Logger, td ToolDispatcher, ed EventDispatcher, en Enricher) http.Handler {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &server{
		logger:     logger,
		tools:      td,
		dispatcher: ed,
		enricher:   en,
	}

	r := chi.NewRouter()
	r.Get("/", s.handleRoot)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/tools/{tool_name}", s.handleTool)
		r.Post("/call_events", s.handleCallEvents)
		r.Post("/inbound", s.handleInbound)
	})
	return r
}

func (s *server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Voxbridge integration server is running.",
	})
}

func (s *server) handleTool(w http.ResponseWriter, r *http.Request) {
	defer s.recoverInternal(w, "tool")

	toolName := chi.URLParam(r, "tool_name")

	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "read body failed")
		return
	}

	payload := map[string]any{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			writeDetail(w, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
			return
		}
	}

	result := s.tools.Dispatch(r.Context(), toolName, payload)
	writeJSON(w, http.StatusOK, result)
}

func (s *server) handleCallEvents(w http.ResponseWriter, r *http.Request) {
	defer s.recoverInternal(w, "call_events")

	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "read body failed")
		return
	}

	event, err := vox.DecodeCallEvent(body)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("invalid call event: %v", err))
		return
	}

	s.logger.Printf("call event received event=%s call_id=%s", event.Event, event.Call.CallID)
	details := s.dispatcher.Dispatch(r.Context(), event)

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": fmt.Sprintf("webhook event %q accepted", event.Event),
		"details": details,
	})
}

func (s *server) handleInbound(w http.ResponseWriter, r *http.Request) {
	defer s.recoverInternal(w, "inbound")

	defer r.Body.Close()
	var req vox.InboundRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("invalid inbound webhook: %v", err))
		return
	}

	s.logger.Printf("inbound call webhook from=%s to=%s", req.CallInbound.FromNumber, req.CallInbound.ToNumber)
	enrichment := s.enricher.Enrich(req.CallInbound.FromNumber, req.CallInbound.ToNumber)

	writeJSON(w, http.StatusOK, vox.InboundResponse{CallInbound: enrichment})
}

// recoverInternal converts a panic in the routing glue or an operation
// into the generic HTTP 500 detail response.
func (s *server) recoverInternal(w http.ResponseWriter, route string) {
	if recovered := recover(); recovered != nil {
		s.logger.Printf("panic in %s handler: %v", route, recovered)
		writeDetail(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]any{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
