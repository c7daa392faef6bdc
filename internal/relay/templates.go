package relay

import (
	"embed"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/vucehq/go-leadengine/pkg/lead"
)

//go:embed templates/*.html
var templateFS embed.FS

// DefaultTheme is the studio email palette. Callers can swap the whole
// config to rebrand both notifications without touching the templates.
func DefaultTheme() *theme.RendererConfig {
	return &theme.RendererConfig{
		Theme:   "vuce",
		Variant: "dark",
		Tokens: map[string]string{
			"background": "#000000",
			"heading":    "#ffffff",
			"foreground": "#ededed",
			"muted":      "#a1a1aa",
			"faint":      "#525252",
			"label":      "#6d6d6d",
			"link":       "#888888",
			"footer":     "#404040",
			"border":     "#333333",
			"divider":    "#222222",
			"card":       "#0a0a0a",
			"panel":      "#111111",
		},
	}
}

// Templates renders the two notification bodies. User-entered text is
// stripped of markup before it reaches the template context; pongo2
// escaping covers the rest.
type Templates struct {
	set     *pongo2.TemplateSet
	theme   *theme.RendererConfig
	policy  *bluemonday.Policy
	siteURL string
	now     func() time.Time
}

// TemplatesOption mutates Templates during construction.
type TemplatesOption func(*Templates)

// WithTheme overrides the brand tokens.
func WithTheme(cfg *theme.RendererConfig) TemplatesOption {
	return func(t *Templates) {
		if cfg != nil {
			t.theme = cfg
		}
	}
}

// WithSiteURL sets the public site linked from the confirmation email.
func WithSiteURL(siteURL string) TemplatesOption {
	return func(t *Templates) {
		if siteURL != "" {
			t.siteURL = strings.TrimRight(siteURL, "/")
		}
	}
}

// WithNow overrides the clock used for the submission timestamp.
func WithNow(now func() time.Time) TemplatesOption {
	return func(t *Templates) {
		if now != nil {
			t.now = now
		}
	}
}

// NewTemplates loads the embedded template set.
func NewTemplates(fns ...TemplatesOption) (*Templates, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("relay: template fs: %w", err)
	}
	t := &Templates{
		set:     pongo2.NewSet("relay", pongo2.NewFSLoader(sub)),
		theme:   DefaultTheme(),
		policy:  bluemonday.StrictPolicy(),
		siteURL: "https://vuce.in",
		now:     time.Now,
	}
	for _, fn := range fns {
		if fn != nil {
			fn(t)
		}
	}
	return t, nil
}

// ClientConfirmation renders the prospect-facing thank-you email.
func (t *Templates) ClientConfirmation(record *lead.Record) (string, error) {
	return t.render("client_confirmation.html", record)
}

// AdminNotification renders the full-detail studio alert.
func (t *Templates) AdminNotification(record *lead.Record) (string, error) {
	return t.render("admin_notification.html", record)
}

func (t *Templates) render(name string, record *lead.Record) (string, error) {
	tmpl, err := t.set.FromFile(name)
	if err != nil {
		return "", fmt.Errorf("relay: load template %q: %w", name, err)
	}
	out, err := tmpl.Execute(t.context(record))
	if err != nil {
		return "", fmt.Errorf("relay: execute template %q: %w", name, err)
	}
	return out, nil
}

func (t *Templates) context(record *lead.Record) pongo2.Context {
	now := t.now()
	ctx := pongo2.Context{
		"siteURL":     t.siteURL,
		"siteHost":    hostOf(t.siteURL),
		"year":        now.Year(),
		"submittedAt": now.Format("Monday, January 2, 2006 at 3:04 PM"),
		"theme": map[string]any{
			"name":    t.theme.Theme,
			"variant": t.theme.Variant,
			"tokens":  t.theme.Tokens,
		},
	}
	for _, id := range []lead.FieldID{
		lead.FieldFullName, lead.FieldEmail, lead.FieldCountry,
		lead.FieldPhonePrefix, lead.FieldPhone, lead.FieldProjectGoal,
		lead.FieldBlocker, lead.FieldVision, lead.FieldTimeline,
		lead.FieldEngagementScale, lead.FieldOrigin,
	} {
		ctx[string(id)] = t.policy.Sanitize(record.Get(id))
	}
	ctx[string(lead.FieldLinkedIn)] = profileURL(record.LinkedIn)
	ctx[string(lead.FieldGitHub)] = profileURL(record.GitHub)
	return ctx
}

// profileURL tolerates bare hostnames the way the original form did.
func profileURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "http") {
		return "https://" + raw
	}
	return raw
}

func hostOf(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		return u.Host
	}
	return raw
}
