package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// apiClient is the outbound HTTP plumbing shared by the adapters: bearer
// auth, JSON bodies, per-call timeouts, and conversion of every failure
// mode into *Error.
type apiClient struct {
	provider Name
	baseURL  string
	token    string
	client   *http.Client

	// errMessage extracts a human-readable message from the provider's
	// error payload. Falls back to the HTTP status line when it returns "".
	errMessage func(body []byte) string
}

func newAPIClient(provider Name, cfg ProviderConfig, errMessage func([]byte) string) *apiClient {
	return &apiClient{
		provider:   provider,
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		client:     &http.Client{},
		errMessage: errMessage,
	}
}

func (c *apiClient) hasToken() bool {
	return c.token != ""
}

// do executes one JSON round trip. A nil body sends an empty request, a
// nil out discards the response body. Non-2xx responses become
// KindRejected errors carrying the provider's message.
func (c *apiClient) do(ctx context.Context, op, method, path string, body, out any, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Provider: c.provider, Op: op, Kind: KindTransport, Message: err.Error(), Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Provider: c.provider, Op: op, Kind: KindTransport, Message: err.Error(), Err: err}
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return transportError(c.provider, op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(c.provider, op, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		message := ""
		if c.errMessage != nil {
			message = c.errMessage(data)
		}
		if message == "" {
			message = fmt.Sprintf("unexpected status %s", resp.Status)
		}
		return rejected(c.provider, op, message)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return transportError(c.provider, op, fmt.Errorf("failed to decode response: %w", err))
		}
	}

	return nil
}
