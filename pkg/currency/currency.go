// Package currency fetches exchange rates from an open exchange-rate
// endpoint, caching results for the store's TTL so page-level pricing
// widgets do not hammer the upstream. It follows the same best-effort
// contract as the geolocation lookup: failures collapse into a
// negative result.
package currency

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/vucehq/go-leadengine/pkg/cache"
)

// DefaultEndpoint serves USD-based rates in the open.er-api.com shape.
const DefaultEndpoint = "https://open.er-api.com/v6/latest/USD"

const (
	defaultTimeout = 5 * time.Second
	cacheKey       = "currency:rates"
)

// Client fetches and caches exchange rates.
type Client struct {
	endpoint   string
	httpClient *http.Client
	store      *cache.Store
}

// OptionFn mutates a Client during construction.
type OptionFn func(*Client)

// WithEndpoint overrides the rates URL.
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

// WithStore overrides the cache store.
func WithStore(store *cache.Store) OptionFn {
	return func(c *Client) {
		if store != nil {
			c.store = store
		}
	}
}

// New constructs a Client with a five-minute cache plus any overrides.
func New(fns ...OptionFn) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		httpClient: &http.Client{Timeout: defaultTimeout},
		store:      cache.New(),
	}
	for _, fn := range fns {
		if fn != nil {
			fn(c)
		}
	}
	return c
}

type ratesPayload struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

// Rates returns the current rate table, served from cache when fresh.
func (c *Client) Rates(ctx context.Context) (map[string]float64, bool) {
	if c == nil {
		return nil, false
	}
	if cached, found := c.store.Get(cacheKey); found {
		if rates, valid := cached.(map[string]float64); valid {
			return rates, true
		}
		c.store.Remove(cacheKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, false
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, false
	}

	var payload ratesPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, false
	}
	if payload.Result != "success" || len(payload.Rates) == 0 {
		return nil, false
	}

	c.store.Set(cacheKey, payload.Rates)
	return payload.Rates, true
}

// Rate returns the rate for a single currency code.
func (c *Client) Rate(ctx context.Context, code string) (float64, bool) {
	rates, found := c.Rates(ctx)
	if !found {
		return 0, false
	}
	rate, present := rates[strings.ToUpper(strings.TrimSpace(code))]
	return rate, present
}
