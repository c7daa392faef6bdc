// Package api hosts the public contact endpoint: a thin acceptance
// gate in front of the relay. It re-checks only what must hold before
// spending a relay call; full field validation already happened in the
// wizard, and the relay re-validates its own inputs.
package api

import (
	"encoding/json"
	"net/http"
	"regexp"

	"go.uber.org/zap"

	"github.com/vucehq/go-leadengine/pkg/lead"
	"github.com/vucehq/go-leadengine/pkg/validation"
)

// ContactRoutePath is where the submission endpoint mounts by default.
const ContactRoutePath = "/api/contact"

var contactEmailRe = regexp.MustCompile(validation.EmailPattern)

// ContactOptions configures the contact endpoint.
type ContactOptions struct {
	Forwarder Forwarder
	// DevFallback accepts submissions with a log line when no
	// forwarder is configured, instead of failing with a server error.
	DevFallback bool
	Logger      *zap.Logger
	Metrics     *Metrics
}

// ContactOptionFn mutates ContactOptions during construction.
type ContactOptionFn func(*ContactOptions)

// WithForwarder installs the downstream relay.
func WithForwarder(f Forwarder) ContactOptionFn {
	return func(o *ContactOptions) { o.Forwarder = f }
}

// WithDevFallback toggles the development no-relay success path.
func WithDevFallback(enabled bool) ContactOptionFn {
	return func(o *ContactOptions) { o.DevFallback = enabled }
}

// WithLogger installs a logger.
func WithLogger(logger *zap.Logger) ContactOptionFn {
	return func(o *ContactOptions) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithMetrics installs submission counters.
func WithMetrics(m *Metrics) ContactOptionFn {
	return func(o *ContactOptions) { o.Metrics = m }
}

// NewContactOptions applies option functions over defaults.
func NewContactOptions(fns ...ContactOptionFn) ContactOptions {
	o := ContactOptions{Logger: zap.NewNop()}
	for _, fn := range fns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// ContactHandler accepts a lead record, gates it, and forwards it to
// the relay, passing the relay's verdict back to the caller.
func ContactHandler(fns ...ContactOptionFn) http.Handler {
	opts := NewContactOptions(fns...)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Use POST.")
			return
		}

		var record lead.Record
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			opts.Metrics.observe(OutcomeRejected)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if record.FullName == "" || record.Email == "" || record.ProjectGoal == "" || record.Blocker == "" {
			opts.Metrics.observe(OutcomeRejected)
			writeError(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		if !contactEmailRe.MatchString(record.Email) {
			opts.Metrics.observe(OutcomeRejected)
			writeError(w, http.StatusBadRequest, "Invalid email address")
			return
		}

		if opts.Forwarder == nil {
			if opts.DevFallback {
				opts.Logger.Warn("relay not configured; accepting submission without delivery",
					zap.String("email", record.Email),
				)
				opts.Metrics.observe(OutcomeAccepted)
				writeBody(w, http.StatusOK, map[string]any{
					"success": true,
					"message": "Thank you for your message! We will get back to you soon.",
				})
				return
			}
			opts.Metrics.observe(OutcomeConfigError)
			writeError(w, http.StatusInternalServerError, "Server configuration error")
			return
		}

		payload, err := json.Marshal(&record)
		if err != nil {
			opts.Metrics.observe(OutcomeRelayError)
			writeError(w, http.StatusInternalServerError, "Failed to send message. Please try again later.")
			return
		}

		status, body, err := opts.Forwarder.Forward(r.Context(), payload)
		if err != nil {
			opts.Logger.Error("relay forward failed", zap.Error(err))
			opts.Metrics.observe(OutcomeRelayError)
			writeError(w, http.StatusInternalServerError, "Failed to send message. Please try again later.")
			return
		}

		if status < 200 || status > 299 {
			opts.Metrics.observe(OutcomeRelayError)
			message := relayErrorMessage(body)
			writeError(w, status, message)
			return
		}

		opts.Metrics.observe(OutcomeAccepted)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	})
}

// relayErrorMessage lifts the relay's error text when it sent one.
func relayErrorMessage(body []byte) string {
	var parsed struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		return parsed.Error
	}
	return "Failed to send message"
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeBody(w, status, map[string]any{"error": message})
}

func writeBody(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
