// Package submit posts a completed lead record to the contact endpoint
// and interprets the response. It is the wizard's sole exit point to
// the outside world.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/vucehq/go-leadengine/pkg/lead"
)

// FallbackMessage is shown when the endpoint cannot be reached or
// returns an unreadable error body.
const FallbackMessage = "Failed to send message. Please try again later."

const defaultTimeout = 15 * time.Second

// Result is the transport outcome. Message carries the success text on
// OK or the user-facing error otherwise.
type Result struct {
	OK      bool
	Message string
}

// Client posts lead records as JSON.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// OptionFn mutates a Client during construction.
type OptionFn func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) OptionFn {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New constructs a Client targeting the given contact endpoint.
func New(endpoint string, fns ...OptionFn) *Client {
	c := &Client{
		endpoint:   strings.TrimSpace(endpoint),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, fn := range fns {
		if fn != nil {
			fn(c)
		}
	}
	return c
}

type successBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Send posts the record and maps the response to a Result. Any network
// failure or non-2xx status produces a failed Result; no retry is
// attempted.
func (c *Client) Send(ctx context.Context, record *lead.Record) Result {
	if c == nil || c.endpoint == "" || record == nil {
		return Result{Message: FallbackMessage}
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return Result{Message: FallbackMessage}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{Message: FallbackMessage}
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return Result{Message: FallbackMessage}
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode >= 200 && res.StatusCode <= 299 {
		var body successBody
		message := "Thank you for your message!"
		if err := json.NewDecoder(res.Body).Decode(&body); err == nil && body.Message != "" {
			message = body.Message
		}
		return Result{OK: true, Message: message}
	}

	var body errorBody
	if err := json.NewDecoder(res.Body).Decode(&body); err == nil && strings.TrimSpace(body.Error) != "" {
		return Result{Message: body.Error}
	}
	return Result{Message: FallbackMessage}
}
