package relay

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"

	"go.uber.org/zap"

	"github.com/vucehq/go-leadengine/pkg/lead"
	"github.com/vucehq/go-leadengine/pkg/validation"
)

// RoutePath is where the relay endpoint mounts by default.
const RoutePath = "/api/relay"

var emailRe = regexp.MustCompile(validation.EmailPattern)

// Options configures the relay handler.
type Options struct {
	Mailer       Mailer
	Templates    *Templates
	ContactEmail string
	FromEmail    string
	Logger       *zap.Logger
}

// OptionFn mutates Options during construction.
type OptionFn func(*Options)

// WithMailer installs the delivery backend.
func WithMailer(m Mailer) OptionFn {
	return func(o *Options) { o.Mailer = m }
}

// WithTemplates overrides the notification templates.
func WithTemplates(t *Templates) OptionFn {
	return func(o *Options) {
		if t != nil {
			o.Templates = t
		}
	}
}

// WithContactEmail sets the studio inbox for admin notifications.
func WithContactEmail(addr string) OptionFn {
	return func(o *Options) { o.ContactEmail = addr }
}

// WithFromEmail sets the sender identity.
func WithFromEmail(addr string) OptionFn {
	return func(o *Options) {
		if addr != "" {
			o.FromEmail = addr
		}
	}
}

// WithLogger installs a logger for delivery failures.
func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// NewOptions applies option functions over defaults.
func NewOptions(fns ...OptionFn) (Options, error) {
	templates, err := NewTemplates()
	if err != nil {
		return Options{}, err
	}
	o := Options{
		Templates: templates,
		FromEmail: "Vuce <onboarding@resend.dev>",
		Logger:    zap.NewNop(),
	}
	for _, fn := range fns {
		if fn != nil {
			fn(&o)
		}
	}
	return o, nil
}

// EmailIDs carries the provider ids of both notifications.
type EmailIDs struct {
	Client string `json:"client"`
	Admin  string `json:"admin"`
}

type successResponse struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	EmailIDs EmailIDs `json:"emailIds"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves the relay endpoint: validate the record, render both
// notifications, deliver them, and report the provider ids.
func Handler(opts Options) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeCORS(w)

		switch r.Method {
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
			return
		case http.MethodPost:
		default:
			writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed. Use POST."})
			return
		}

		var record lead.Record
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to process request"})
			return
		}

		if record.FullName == "" || record.Email == "" || record.ProjectGoal == "" || record.Blocker == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing required fields: fullName, email, projectGoal, blocker"})
			return
		}
		if !emailRe.MatchString(record.Email) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid email address"})
			return
		}

		if opts.Mailer == nil || opts.ContactEmail == "" {
			opts.Logger.Error("relay misconfigured",
				zap.Bool("mailer", opts.Mailer != nil),
				zap.Bool("contact_email", opts.ContactEmail != ""),
			)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Server configuration error"})
			return
		}

		clientHTML, err := opts.Templates.ClientConfirmation(&record)
		if err == nil {
			var adminHTML string
			adminHTML, err = opts.Templates.AdminNotification(&record)
			if err == nil {
				var ids EmailIDs
				ids, err = deliver(r, opts, &record, clientHTML, adminHTML)
				if err == nil {
					writeJSON(w, http.StatusOK, successResponse{
						Success:  true,
						Message:  "Thank you for your message! We will get back to you soon.",
						EmailIDs: ids,
					})
					return
				}
			}
		}

		opts.Logger.Error("relay delivery failed", zap.Error(err), zap.String("email", record.Email))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to send emails"})
	})
}

func deliver(r *http.Request, opts Options, record *lead.Record, clientHTML, adminHTML string) (EmailIDs, error) {
	ctx := r.Context()

	clientID, err := opts.Mailer.Send(ctx, Message{
		From:    opts.FromEmail,
		To:      []string{record.Email},
		Subject: fmt.Sprintf("Thank You, %s! We've Received Your Project Inquiry", record.FullName),
		HTML:    clientHTML,
	})
	if err != nil {
		return EmailIDs{}, fmt.Errorf("client confirmation: %w", err)
	}

	adminID, err := opts.Mailer.Send(ctx, Message{
		From:    opts.FromEmail,
		To:      []string{opts.ContactEmail},
		Subject: fmt.Sprintf("🎯 New Contact Form Submission: %s - %s", record.FullName, record.ProjectGoal),
		HTML:    adminHTML,
	})
	if err != nil {
		return EmailIDs{}, fmt.Errorf("admin notification: %w", err)
	}

	return EmailIDs{Client: clientID, Admin: adminID}, nil
}

func writeCORS(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	h.Set("Access-Control-Max-Age", "86400")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
