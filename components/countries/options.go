package countries

import "net/http"

// EmptySearchMode controls what an empty query returns.
type EmptySearchMode string

const (
	EmptySearchNone EmptySearchMode = "none"
	EmptySearchTop  EmptySearchMode = "top"
)

// GuardFunc can reject a request before the handler runs.
type GuardFunc func(r *http.Request) error

// Options configures the component. A country selector usually wants
// the full directory on an empty query, so EmptySearchTop is the
// default and the limits are sized to the directory.
type Options struct {
	RoutePath       string
	SearchParam     string
	LimitParam      string
	DefaultLimit    int
	MaxLimit        int
	EmptySearchMode EmptySearchMode
	Guard           GuardFunc

	Entries []Entry
}

// OptionFn mutates Options during construction.
type OptionFn func(*Options)

// DefaultOptions returns the baseline configuration.
func DefaultOptions() Options {
	return Options{
		RoutePath:       "/api/countries",
		SearchParam:     "q",
		LimitParam:      "limit",
		DefaultLimit:    250,
		MaxLimit:        250,
		EmptySearchMode: EmptySearchTop,
	}
}

// NewOptions applies overrides on top of the defaults and normalises
// the result.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 250
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 250
	}
	if opts.EmptySearchMode == "" {
		opts.EmptySearchMode = EmptySearchTop
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/countries"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.Entries != nil {
		opts.Entries = append([]Entry{}, opts.Entries...)
	}
	return opts
}

// WithRoutePath overrides the mount path.
func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

// WithSearchParam overrides the query parameter name.
func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

// WithLimitParam overrides the limit parameter name.
func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

// WithDefaultLimit overrides the limit applied when none is requested.
func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

// WithMaxLimit caps the requestable limit.
func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

// WithEmptySearchMode selects the empty-query behavior.
func WithEmptySearchMode(mode EmptySearchMode) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.EmptySearchMode = mode
	}
}

// WithGuard installs a request guard.
func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithEntries replaces the embedded directory.
func WithEntries(entries []Entry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if entries == nil {
			o.Entries = nil
			return
		}
		o.Entries = append([]Entry{}, entries...)
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
