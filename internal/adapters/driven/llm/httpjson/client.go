// Package httpjson is the HTTP transport shared by the LLM adapters:
// JSON requests, provider error bodies and the mapping of transport
// failures onto domain.ErrLLMUnavailable.
package httpjson

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// maxErrorBody caps how much of an error response is quoted in errors.
const maxErrorBody = 512

// Client sends JSON requests to one provider.
type Client struct {
	// Provider prefixes every error ("ollama", "openai", ...).
	Provider string
	BaseURL  string
	HTTP     *http.Client

	// Header sets authentication headers on every request. Optional.
	Header func(h http.Header)
}

// StatusError is a non-2xx reply from the provider.
type StatusError struct {
	Provider string
	Status   int
	Message  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.Status, e.Message)
}

// Post sends in as JSON to path and decodes the reply into out.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: marshal request: %w", c.Provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: create request: %w", c.Provider, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// Get requests path and discards the body. Used for pings.
func (c *Client) Get(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", c.Provider, err)
	}
	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.Header != nil {
		c.Header(req.Header)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrLLMUnavailable, c.Provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Provider: c.Provider, Status: resp.StatusCode, Message: errorMessage(data)}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", c.Provider, err)
	}
	return nil
}

// errorMessage pulls the message out of the {"error": {...}} or
// {"error": "..."} bodies the providers return, falling back to the raw text.
func errorMessage(body []byte) string {
	var wrapped struct {
		Error json.RawMessage `json:"error"`
	}
	if json.Unmarshal(body, &wrapped) == nil && len(wrapped.Error) > 0 {
		var detail struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(wrapped.Error, &detail) == nil && detail.Message != "" {
			return detail.Message
		}
		var text string
		if json.Unmarshal(wrapped.Error, &text) == nil && text != "" {
			return text
		}
	}
	return strings.TrimSpace(string(body))
}
