package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TransportError reports a failed call to the relay: a non-2xx reply, a
// network failure or an undecodable body.
type TransportError struct {
	Status  int
	Message string
	Code    string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("relay error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("relay error %d: %s", e.Status, e.Message)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Client posts chat requests to a relay. It performs exactly one HTTP call per
// Send and never retries.
type Client struct {
	endpoint string
	client   *http.Client
}

func NewClient(relayURL string, timeout time.Duration) *Client {
	return &Client{
		endpoint: strings.TrimRight(relayURL, "/") + "/api/chat",
		client:   &http.Client{Timeout: timeout},
	}
}

// Send delivers req to the relay and returns the assistant reply.
func (c *Client) Send(ctx context.Context, req Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Status: http.StatusInternalServerError, Message: "relay unreachable", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Status: http.StatusInternalServerError, Message: "read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody ErrorBody
		if err := json.Unmarshal(respBody, &errBody); err != nil {
			return nil, &TransportError{Status: http.StatusInternalServerError, Message: "invalid response body", Err: err}
		}
		msg := errBody.Error
		if msg == "" {
			msg = "Failed to get response"
		}
		return nil, &TransportError{Status: resp.StatusCode, Message: msg, Code: errBody.Code}
	}

	var out Response
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, &TransportError{Status: http.StatusInternalServerError, Message: "invalid response body", Err: err}
	}
	return &out, nil
}
