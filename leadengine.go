// Package leadengine re-exports the pieces of the lead-capture wizard
// most callers assemble together: the session state machine, the field
// rules behind it, and the clients that feed and drain it.
package leadengine

import (
	"context"
	"sync"

	"github.com/vucehq/go-leadengine/components/countries"
	"github.com/vucehq/go-leadengine/internal/config"
	"github.com/vucehq/go-leadengine/pkg/currency"
	"github.com/vucehq/go-leadengine/pkg/geo"
	"github.com/vucehq/go-leadengine/pkg/lead"
	"github.com/vucehq/go-leadengine/pkg/submit"
	"github.com/vucehq/go-leadengine/pkg/validation"
	"github.com/vucehq/go-leadengine/pkg/wizard"
)

// Record is the lead record a wizard session collects.
type Record = lead.Record

// Mode selects the desktop or mobile flow.
type Mode = wizard.Mode

// Session is the wizard state machine.
type Session = wizard.Wizard

// Flow mode values, re-exported for callers of NewSession.
const (
	ModeDesktop = wizard.ModeDesktop
	ModeMobile  = wizard.ModeMobile
)

// NewSession starts a wizard session that submits to the given contact
// endpoint.
func NewSession(mode Mode, endpoint string) *Session {
	return wizard.New(mode, wizard.WithTransport(submit.New(endpoint)))
}

// SessionForWidth picks the flow from a viewport width and starts a
// session, mirroring how the web form latches its layout.
func SessionForWidth(width int, endpoint string) *Session {
	return NewSession(wizard.ModeForWidth(width), endpoint)
}

// PrefillCountry runs a best-effort geolocation lookup against the
// default directory and applies the result to the session.
func PrefillCountry(ctx context.Context, s *Session) {
	entries, err := countries.DefaultEntries()
	if err != nil {
		return
	}
	s.PrefillFromGeo(ctx, geo.New(), entries)
}

// ValidateField checks one field value against its rule.
func ValidateField(id lead.FieldID, value string) validation.Result {
	return validation.Field(id, value)
}

var (
	currencyOnce   sync.Once
	currencyClient *currency.Client
)

// sharedCurrencyClient holds the one client all ExchangeRate calls go
// through, so its five-minute rate cache actually spans calls. The
// endpoint honors LEADENGINE_CURRENCY_ENDPOINT on first use.
func sharedCurrencyClient() *currency.Client {
	currencyOnce.Do(func() {
		cfg := config.FromEnv()
		currencyClient = currency.New(currency.WithEndpoint(cfg.Lookups.CurrencyEndpoint))
	})
	return currencyClient
}

// ExchangeRate is a best-effort USD exchange-rate lookup served through
// a shared client with a five-minute cache.
func ExchangeRate(ctx context.Context, code string) (float64, bool) {
	return sharedCurrencyClient().Rate(ctx, code)
}
