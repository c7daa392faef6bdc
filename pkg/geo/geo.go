// Package geo resolves the caller's country from an IP-geolocation
// service so the wizard can prefill country and phone-prefix defaults.
// The lookup is strictly best-effort: every failure mode (network
// error, non-2xx status, unknown country code, cancelled context)
// collapses into a negative result and is never surfaced as an error.
package geo

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/vucehq/go-leadengine/components/countries"
)

// DefaultEndpoint is the ipapi-style JSON endpoint queried when no
// override is configured.
const DefaultEndpoint = "https://ipapi.co/json/"

const defaultTimeout = 5 * time.Second

// Client performs one-shot geolocation lookups.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// OptionFn mutates a Client during construction.
type OptionFn func(*Client)

// WithEndpoint overrides the lookup URL.
func WithEndpoint(endpoint string) OptionFn {
	return func(c *Client) {
		if strings.TrimSpace(endpoint) != "" {
			c.endpoint = endpoint
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) OptionFn {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New constructs a Client with defaults plus any overrides.
func New(fns ...OptionFn) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, fn := range fns {
		if fn != nil {
			fn(c)
		}
	}
	return c
}

type lookupPayload struct {
	CountryCode string `json:"country_code"`
}

// CountryCode returns the ISO-2 country code reported for the caller's
// IP, or false when anything goes wrong. Cancelling ctx aborts the
// request cleanly; an aborted lookup reports false without side
// effects.
func (c *Client) CountryCode(ctx context.Context) (string, bool) {
	if c == nil {
		return "", false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", false
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", false
	}

	var payload lookupPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", false
	}
	code := strings.ToUpper(strings.TrimSpace(payload.CountryCode))
	if code == "" {
		return "", false
	}
	return code, true
}

// Defaults resolves the detected country code against the directory.
// Unknown codes report false so the form proceeds with empty defaults.
func (c *Client) Defaults(ctx context.Context, entries []countries.Entry) (countries.Entry, bool) {
	code, found := c.CountryCode(ctx)
	if !found {
		return countries.Entry{}, false
	}
	return countries.ByCode(entries, code)
}
