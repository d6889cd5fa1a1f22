// Package customurl forwards the verbatim call event payload to a
// customer-provided endpoint.
package customurl

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
	httpClient *http.Client
	logger     *log.Logger
}

func New(url string, logger *log.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	h := &Handler{
		url:        strings.TrimSpace(url),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		logger:     logger,
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

func (h *Handler) Name() string {
	return "customurl"
}

func (h *Handler) Handle(ctx context.Context, event vox.CallEvent) error {
	if h.url == "" {
		h.logger.Printf("customurl: no custom webhook url configured, skipping event=%s", event.Event)
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal call event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build custom webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post custom webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	errorBody, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		return fmt.Errorf("custom webhook status=%d read body: %w", resp.StatusCode, err)
	}
	return fmt.Errorf("custom webhook status=%d body=%q", resp.StatusCode, string(errorBody))
}
