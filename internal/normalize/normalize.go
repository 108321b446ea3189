// Package normalize turns a classified raw document that passed validation
// into the canonical document model. Both authoring shapes collapse here:
// array-form collections become keyed maps with deterministic slug keys,
// attribute aliases resolve to their canonical names, shorthand forms
// (plain-string actions, display_fields tables, string option lists) expand
// to their full equivalents, and attributes nothing consumed are preserved
// verbatim. Normalization never reports problems; it assumes the validator
// already ran and found none.
package normalize

import (
	"fmt"

	"github.com/goliatone/go-viewdef/internal/rawdoc"
	"github.com/goliatone/go-viewdef/pkg/document"
)

// Normalize resolves the classified raw tree into the canonical document.
// The input must have passed validation; calling it with an invalid tree is
// a caller bug, not a reported condition.
func Normalize(doc *rawdoc.Document) *document.Document {
	if doc == nil {
		return &document.Document{Screens: map[string]document.ScreenDefinition{}}
	}
	return &document.Document{
		Screens:    normalizeView(doc.View),
		Components: normalizeComponents(doc.Components),
		Rules:      normalizeRules(doc.Validations),
	}
}

func normalizeView(view rawdoc.Collection) map[string]document.ScreenDefinition {
	out := make(map[string]document.ScreenDefinition)
	switch view.Shape {
	case rawdoc.ShapeKeyed:
		// Authored keys pass through verbatim; only array entries get
		// slugged.
		for _, key := range rawdoc.SortedKeys(view.Keyed) {
			screen, ok := rawdoc.ToMap(view.Keyed[key])
			if !ok {
				continue
			}
			out[key] = normalizeScreen(screen)
		}
	case rawdoc.ShapeEntries:
		used := make(map[string]struct{}, len(view.Entries))
		for i, entry := range view.Entries {
			screen, ok := rawdoc.ToMap(entry)
			if !ok {
				continue
			}
			base := ToSafeKey(screenName(screen))
			if base == "" {
				base = fmt.Sprintf("screen_%d", i)
			}
			out[uniqueKey(base, used)] = normalizeScreen(screen)
		}
	}
	return out
}

// screenName picks the slug source for an array-form screen: the first
// naming alias carrying a usable scalar.
func screenName(screen map[string]any) string {
	for _, alias := range []string{"name", "title", "label", "screen_title"} {
		if str, ok := rawdoc.ScalarString(screen[alias]); ok {
			return str
		}
	}
	return ""
}

// uniqueKey claims base in used, appending the lowest numeric suffix that
// avoids a collision. Two distinct screens never share a key; the first
// claimant keeps the bare slug and later ones get _2, _3 and so on.
func uniqueKey(base string, used map[string]struct{}) string {
	key := base
	for i := 2; ; i++ {
		if _, taken := used[key]; !taken {
			used[key] = struct{}{}
			return key
		}
		key = fmt.Sprintf("%s_%d", base, i)
	}
}

func normalizeComponents(col rawdoc.Collection) map[string]document.Component {
	if !col.Declared() {
		return nil
	}
	out := make(map[string]document.Component)
	switch col.Shape {
	case rawdoc.ShapeKeyed:
		for _, key := range rawdoc.SortedKeys(col.Keyed) {
			raw, ok := rawdoc.ToMap(col.Keyed[key])
			if !ok {
				continue
			}
			out[key] = normalizeComponent(newAttrs(raw))
		}
	case rawdoc.ShapeEntries:
		used := make(map[string]struct{}, len(col.Entries))
		for i, entry := range col.Entries {
			raw, ok := rawdoc.ToMap(entry)
			if !ok {
				continue
			}
			a := newAttrs(raw)
			component := normalizeComponent(a)
			base := ToSafeKey(component.Title)
			if base == "" {
				base = fmt.Sprintf("component_%d", i)
			}
			out[uniqueKey(base, used)] = component
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeComponent(a *attrs) document.Component {
	component := document.Component{
		Title:  a.str("", "title", "name", "id"),
		Fields: []document.InputField{},
	}
	if fields, ok := a.list("", "fields"); ok {
		component.Fields = normalizeFields(fields)
	}
	component.Attrs = a.leftovers()
	return component
}

func normalizeRules(col rawdoc.Collection) map[string]document.ValidationRule {
	if !col.Declared() {
		return nil
	}
	out := make(map[string]document.ValidationRule)
	switch col.Shape {
	case rawdoc.ShapeKeyed:
		for _, key := range rawdoc.SortedKeys(col.Keyed) {
			raw, ok := rawdoc.ToMap(col.Keyed[key])
			if !ok {
				continue
			}
			out[key] = normalizeRule(newAttrs(raw), "")
		}
	case rawdoc.ShapeEntries:
		used := make(map[string]struct{}, len(col.Entries))
		for i, entry := range col.Entries {
			raw, ok := rawdoc.ToMap(entry)
			if !ok {
				continue
			}
			a := newAttrs(raw)
			name := a.str("", "name", "id")
			base := ToSafeKey(name)
			if base == "" {
				base = fmt.Sprintf("validation_%d", i)
			}
			out[uniqueKey(base, used)] = normalizeRule(a, name)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// normalizeRule resolves one validation rule. Scalar attributes the getters
// did not consume become rule parameters alongside anything nested under
// params, so authored flat rules (min: 0, max: 100) and canonical nested
// ones read the same.
func normalizeRule(a *attrs, fallbackKind string) document.ValidationRule {
	rule := document.ValidationRule{
		Kind:    a.str("", "kind", "type"),
		Message: a.str("", "message", "error_message", "errorMessage"),
	}
	if rule.Kind == "" {
		rule.Kind = fallbackKind
	}

	params := make(map[string]string)
	if nested, ok := a.object("", "params"); ok {
		for _, key := range rawdoc.SortedKeys(nested) {
			if str, ok := rawdoc.ScalarString(nested[key]); ok {
				params[key] = str
			}
		}
	}
	for key, value := range a.leftovers() {
		if str, ok := rawdoc.ScalarString(value); ok {
			params[key] = str
		}
	}
	if len(params) > 0 {
		rule.Params = params
	}
	return rule
}
