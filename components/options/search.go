package options

import (
	"sort"
	"strings"

	"github.com/goliatone/go-viewdef/pkg/document"
)

// Filter narrows a collection to the options matching query, prefix
// matches ranked first, capped at limit. Matching is case-insensitive
// against both label and value. An empty query follows cfg.EmptyQuery. A
// zero limit falls back to cfg.DefaultLimit; a negative one yields nothing.
func Filter(opts []document.Option, query string, limit int, cfg Config) []document.Option {
	limit = clampLimit(limit, cfg)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if cfg.EmptyQuery == EmptyQueryTop {
			if len(opts) <= limit {
				return append([]document.Option(nil), opts...)
			}
			return append([]document.Option(nil), opts[:limit]...)
		}
		return nil
	}

	q := strings.ToLower(query)
	matches := make([]match, 0, 32)
	for _, opt := range opts {
		label := strings.ToLower(opt.Label)
		value := strings.ToLower(opt.Value)
		if !strings.Contains(label, q) && !strings.Contains(value, q) {
			continue
		}
		matches = append(matches, match{
			option:   opt,
			isPrefix: strings.HasPrefix(label, q) || strings.HasPrefix(value, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].option.Label < matches[j].option.Label
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]document.Option, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.option)
	}
	return out
}

type match struct {
	option   document.Option
	isPrefix bool
}

func clampLimit(limit int, cfg Config) int {
	switch {
	case limit < 0:
		return 0
	case limit == 0:
		limit = cfg.DefaultLimit
	}
	if cfg.MaxLimit > 0 && limit > cfg.MaxLimit {
		return cfg.MaxLimit
	}
	return limit
}
