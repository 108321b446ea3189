package normalize

import (
	"github.com/goliatone/go-viewdef/internal/rawdoc"
)

// attrs reads one raw node's attributes, remembering every key it consumed
// so the leftovers can be preserved verbatim on the canonical value. The
// family parameter of the getters resolves attributes that canonical
// documents nest under a family object (repeater, table, number, ...) while
// authored documents write them flat on the field; passing "" reads flat
// aliases only. Reading the nested location first keeps re-normalizing a
// canonical document stable.
type attrs struct {
	node map[string]any
	used map[string]struct{}
}

func newAttrs(node map[string]any) *attrs {
	return &attrs{node: node, used: make(map[string]struct{}, len(node))}
}

func (a *attrs) mark(keys ...string) {
	for _, key := range keys {
		a.used[key] = struct{}{}
	}
}

func (a *attrs) resolve(family string, aliases []string) (any, bool) {
	if family != "" {
		if nested, ok := rawdoc.ToMap(a.node[family]); ok {
			a.mark(family)
			for _, alias := range aliases {
				if value, declared := nested[alias]; declared {
					return value, true
				}
			}
		}
	}
	for _, alias := range aliases {
		if value, declared := a.node[alias]; declared {
			a.mark(alias)
			return value, true
		}
	}
	return nil, false
}

// raw returns the first declared alias untouched.
func (a *attrs) raw(family string, aliases ...string) (any, bool) {
	return a.resolve(family, aliases)
}

// str returns the first alias that resolves to a non-empty trimmed scalar,
// or "" when none does. Blank and non-scalar values fall through to the
// next alias so a declared-but-empty attribute never shadows a usable one.
func (a *attrs) str(family string, aliases ...string) string {
	for _, alias := range aliases {
		value, ok := a.resolve(family, []string{alias})
		if !ok {
			continue
		}
		if str, ok := rawdoc.ScalarString(value); ok {
			return str
		}
	}
	return ""
}

// boolean returns the first declared alias as a bool, false when absent.
func (a *attrs) boolean(family string, aliases ...string) bool {
	value, ok := a.resolve(family, aliases)
	if !ok {
		return false
	}
	b, _ := rawdoc.ToBool(value)
	return b
}

// boolPtr distinguishes absent from false.
func (a *attrs) boolPtr(family string, aliases ...string) *bool {
	value, ok := a.resolve(family, aliases)
	if !ok {
		return nil
	}
	b, ok := rawdoc.ToBool(value)
	if !ok {
		return nil
	}
	return &b
}

// intPtr distinguishes absent from zero.
func (a *attrs) intPtr(family string, aliases ...string) *int {
	value, ok := a.resolve(family, aliases)
	if !ok {
		return nil
	}
	n, ok := rawdoc.ToInt(value)
	if !ok {
		return nil
	}
	return &n
}

// integer returns the first declared alias as an int.
func (a *attrs) integer(family string, aliases ...string) (int, bool) {
	value, ok := a.resolve(family, aliases)
	if !ok {
		return 0, false
	}
	return rawdoc.ToInt(value)
}

// floatPtr distinguishes absent from zero.
func (a *attrs) floatPtr(family string, aliases ...string) *float64 {
	value, ok := a.resolve(family, aliases)
	if !ok {
		return nil
	}
	f, ok := rawdoc.ToFloat(value)
	if !ok {
		return nil
	}
	return &f
}

// list returns the first declared alias as a sequence.
func (a *attrs) list(family string, aliases ...string) ([]any, bool) {
	value, ok := a.resolve(family, aliases)
	if !ok {
		return nil, false
	}
	return rawdoc.ToSlice(value)
}

// object returns the first declared alias as a map.
func (a *attrs) object(family string, aliases ...string) (map[string]any, bool) {
	value, ok := a.resolve(family, aliases)
	if !ok {
		return nil, false
	}
	return rawdoc.ToMap(value)
}

// leftovers returns the attributes no getter consumed, merging in the
// contents of a canonical "attrs" envelope when present. The result is nil
// when nothing is left.
func (a *attrs) leftovers() map[string]any {
	out := make(map[string]any)
	for key, value := range a.node {
		if key == "attrs" {
			continue
		}
		if _, consumed := a.used[key]; consumed {
			continue
		}
		out[key] = value
	}
	if envelope, ok := rawdoc.ToMap(a.node["attrs"]); ok {
		for key, value := range envelope {
			out[key] = value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
