package options

import "net/http"

// EmptyQueryMode decides what an empty search query returns.
type EmptyQueryMode string

const (
	// EmptyQueryNone returns no options until the client types something.
	EmptyQueryNone EmptyQueryMode = "none"
	// EmptyQueryTop returns the first options up to the limit.
	EmptyQueryTop EmptyQueryMode = "top"
)

// GuardFunc vetoes a request before any lookup happens. Returning an error
// produces a 403 unless the error carries its own status code.
type GuardFunc func(r *http.Request) error

// Config tunes the handler and search behavior.
type Config struct {
	RoutePath    string
	SearchParam  string
	LimitParam   string
	DefaultLimit int
	MaxLimit     int
	EmptyQuery   EmptyQueryMode
	Guard        GuardFunc
}

// ConfigFn mutates a Config during construction.
type ConfigFn func(*Config)

// DefaultConfig returns the handler defaults.
func DefaultConfig() Config {
	return Config{
		RoutePath:    "/api/options",
		SearchParam:  "q",
		LimitParam:   "limit",
		DefaultLimit: 50,
		MaxLimit:     200,
		EmptyQuery:   EmptyQueryNone,
	}
}

// NewConfig applies overrides on top of the defaults and clamps the
// results back into usable ranges.
func NewConfig(fns ...ConfigFn) Config {
	cfg := DefaultConfig()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&cfg)
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 50
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = 200
	}
	if cfg.EmptyQuery == "" {
		cfg.EmptyQuery = EmptyQueryNone
	}
	if cfg.RoutePath == "" {
		cfg.RoutePath = "/api/options"
	}
	if cfg.SearchParam == "" {
		cfg.SearchParam = "q"
	}
	if cfg.LimitParam == "" {
		cfg.LimitParam = "limit"
	}
	return cfg
}
