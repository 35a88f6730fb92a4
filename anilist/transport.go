package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Mode selects how the default transport decodes response bodies.
type Mode int

const (
	// ModeBuffered reads the full response body into memory and then
	// unmarshals it.
	ModeBuffered Mode = iota
	// ModeStreaming decodes the response body directly from the stream.
	ModeStreaming
)

// String returns the mode name used in configuration files.
func (m Mode) String() string {
	switch m {
	case ModeBuffered:
		return "buffered"
	case ModeStreaming:
		return "streaming"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Response is the decoded GraphQL response envelope.
type Response struct {
	Data   json.RawMessage `json:"data"`
	Errors []QueryError    `json:"errors"`
}

// QueryError is one entry of a GraphQL error payload. Status is absent
// (zero) for generic failures.
type QueryError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// Transport performs a single GraphQL POST exchange. Implementations must
// be safe for concurrent use; the client issues overlapping calls through
// one shared instance.
type Transport interface {
	Send(ctx context.Context, url string, body any) (*Response, error)
}

// httpTransport is the default Transport over net/http. It is stateless
// apart from the shared http.Client, which handles its own pooling.
type httpTransport struct {
	mode       Mode
	httpClient *http.Client
}

const defaultTimeout = 30 * time.Second

// NewTransport creates a Transport for the given decode mode. A nil
// httpClient selects a default client with a 30 second timeout. An unknown
// mode fails with ErrUnsupportedMode before any network activity.
func NewTransport(mode Mode, httpClient *http.Client) (Transport, error) {
	if mode != ModeBuffered && mode != ModeStreaming {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMode, int(mode))
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &httpTransport{mode: mode, httpClient: httpClient}, nil
}

// Send posts the JSON body and decodes the response envelope. Network and
// decode failures are returned as-is (wrapped with context only); the
// GraphQL errors array is left for the caller to inspect.
func (t *httpTransport) Send(ctx context.Context, url string, body any) (*Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var out Response
	switch t.mode {
	case ModeStreaming:
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	default:
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return &out, nil
}
