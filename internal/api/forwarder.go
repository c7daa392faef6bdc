package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Forwarder hands an accepted submission to the downstream relay and
// reports the relay's verbatim status and body.
type Forwarder interface {
	Forward(ctx context.Context, payload []byte) (status int, body []byte, err error)
}

// HTTPForwarder posts to a remote relay endpoint.
type HTTPForwarder struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPForwarder targets a remote relay URL.
func NewHTTPForwarder(endpoint string) *HTTPForwarder {
	return &HTTPForwarder{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (f *HTTPForwarder) Forward(ctx context.Context, payload []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("api: build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := f.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("api: relay request: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("api: read relay response: %w", err)
	}
	return res.StatusCode, body, nil
}

// LocalForwarder dispatches to an in-process relay handler, used when
// the server hosts the relay itself instead of a separate worker.
type LocalForwarder struct {
	handler http.Handler
}

// NewLocalForwarder wraps an in-process relay handler.
func NewLocalForwarder(handler http.Handler) *LocalForwarder {
	return &LocalForwarder{handler: handler}
}

func (f *LocalForwarder) Forward(ctx context.Context, payload []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/", bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("api: build local request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	rec := &bufferRecorder{status: http.StatusOK}
	f.handler.ServeHTTP(rec, req)
	return rec.status, rec.body.Bytes(), nil
}

// bufferRecorder is the minimal ResponseWriter LocalForwarder needs.
type bufferRecorder struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func (r *bufferRecorder) Header() http.Header {
	if r.header == nil {
		r.header = make(http.Header)
	}
	return r.header
}

func (r *bufferRecorder) Write(p []byte) (int, error) {
	return r.body.Write(p)
}

func (r *bufferRecorder) WriteHeader(status int) {
	r.status = status
}
