// Package structure implements the collect-all structural validator. It
// walks the classified raw document and reports every problem it can find
// in one pass; nothing is mutated and nothing stops at the first failure.
// Keyed collections are checked under the strict rule set, legacy entry
// arrays under the relaxed one. The two sets share every type-conditional
// rule through the allow-lists in pkg/document so they cannot drift apart.
package structure

import (
	"github.com/goliatone/go-viewdef/internal/rawdoc"
	"github.com/goliatone/go-viewdef/pkg/diag"
	"github.com/goliatone/go-viewdef/pkg/document"
)

// MaxNestingDepth bounds recursion through repeater item fields. Documents
// deeper than this are rejected with a diagnostic instead of exhausting the
// call stack.
const MaxNestingDepth = 32

// Screen title aliases accepted by both rule sets; the normalizer resolves
// them in this order.
var titleAliases = []string{"title", "name", "label", "screen_title"}

// Validate reports every structural problem in the classified document.
func Validate(doc *rawdoc.Document) diag.List {
	w := &walker{}
	if doc == nil {
		return nil
	}
	w.validateView(doc.View)
	w.validateComponents(doc.Components)
	w.validateValidations(doc.Validations)
	return w.diagnostics
}

type walker struct {
	diagnostics diag.List
}

func (w *walker) report(d diag.Diagnostic) {
	w.diagnostics.Add(d)
}

func (w *walker) validateView(view rawdoc.Collection) {
	switch view.Shape {
	case rawdoc.ShapeKeyed:
		for _, key := range rawdoc.SortedKeys(view.Keyed) {
			path := diag.JoinPath(rawdoc.KeyView, key)
			screen, ok := rawdoc.ToMap(view.Keyed[key])
			if !ok {
				w.report(diag.New(diag.KindInvalidValue, path, "screen must be an object"))
				continue
			}
			w.validateScreenStrict(path, screen)
		}
	case rawdoc.ShapeEntries:
		for i, entry := range view.Entries {
			path := diag.IndexPath(rawdoc.KeyView, i)
			screen, ok := rawdoc.ToMap(entry)
			if !ok {
				w.report(diag.New(diag.KindInvalidValue, path, "screen entry must be an object"))
				continue
			}
			w.validateScreenRelaxed(path, screen)
		}
	}
}

// validateScreenStrict applies the full rule set used for object-keyed
// screens: a title is required and every section, field, action and wizard
// step is checked recursively.
func (w *walker) validateScreenStrict(path string, screen map[string]any) {
	if !hasScalarAlias(screen, titleAliases) {
		w.report(diag.New(diag.KindMissingRequiredField, path, "screen must declare a title"))
	}

	if value, ok := screen["sections"]; ok {
		w.validateSections(diag.JoinPath(path, "sections"), value)
	}
	if value, ok := screen["fields"]; ok {
		w.validateFieldList(diag.JoinPath(path, "fields"), value)
	}
	if value, ok := screen["input_fields"]; ok {
		w.validateFieldList(diag.JoinPath(path, "input_fields"), value)
	}
	if value, ok := screen["display_fields"]; ok {
		w.validateNameList(diag.JoinPath(path, "display_fields"), value, "display field")
	}
	if value, ok := screen["filters"]; ok {
		w.validateNameList(diag.JoinPath(path, "filters"), value, "filter")
	}
	if value, ok := screen["actions"]; ok {
		w.validateActions(diag.JoinPath(path, "actions"), value)
	}
	if value, ok := screen["wizard"]; ok {
		w.validateWizard(diag.JoinPath(path, "wizard"), value)
	}
	w.validateHeaderBlock(path, screen)
	w.validateNavigationBlock(path, screen)
}

// validateScreenRelaxed applies the minimal rule set used for legacy
// array-form screens, which only have to identify themselves. Their inner
// content is normalized best-effort without prior validation.
func (w *walker) validateScreenRelaxed(path string, screen map[string]any) {
	if !hasScalarAlias(screen, titleAliases) {
		w.report(diag.New(diag.KindMissingRequiredField, path, "screen entry must declare a name or title"))
	}
}

func (w *walker) validateSections(path string, value any) {
	sections, ok := rawdoc.ToSlice(value)
	if !ok {
		w.report(diag.New(diag.KindInvalidValue, path, `"sections" must be an array`))
		return
	}
	for i, entry := range sections {
		sectionPath := diag.IndexPath(path, i)
		section, ok := rawdoc.ToMap(entry)
		if !ok {
			w.report(diag.New(diag.KindInvalidValue, sectionPath, "section must be an object"))
			continue
		}
		if !hasScalarAlias(section, []string{"title", "id", "name"}) {
			w.report(diag.New(diag.KindMissingRequiredField, sectionPath, "section must declare a title"))
		}
		if fields, ok := section["fields"]; ok {
			w.validateFieldList(diag.JoinPath(sectionPath, "fields"), fields)
		}
	}
}

func (w *walker) validateFieldList(path string, value any) {
	fields, ok := rawdoc.ToSlice(value)
	if !ok {
		w.report(diag.New(diag.KindInvalidValue, path, "fields must be an array"))
		return
	}
	for i, entry := range fields {
		w.validateField(diag.IndexPath(path, i), entry, 0)
	}
}

// validateField applies the type-conditional field rules. depth counts
// repeater nesting levels.
func (w *walker) validateField(path string, value any, depth int) {
	if depth > MaxNestingDepth {
		w.report(diag.Newf(diag.KindInvalidValue, path, "nesting exceeds the maximum depth of %d", MaxNestingDepth))
		return
	}

	field, ok := rawdoc.ToMap(value)
	if !ok {
		w.report(diag.New(diag.KindInvalidValue, path, "field must be an object"))
		return
	}

	fieldType := fieldTypeOf(field)
	if raw, declared := field["type"]; declared {
		if _, ok := rawdoc.ToString(raw); !ok {
			w.report(diag.New(diag.KindInvalidValue, diag.JoinPath(path, "type"), `"type" must be a string`))
		}
	}

	// Presentation widgets and unknown (future) types are exempt from the
	// id/label requirement; unknowns survive normalization as the fallback
	// variant.
	identified := document.KnownFieldType(fieldType) && !document.PresentationOnly(fieldType)
	if identified {
		if !hasScalarAlias(field, []string{"id"}) {
			w.report(diag.New(diag.KindMissingRequiredField, path, "field requires an id"))
		}
		if !hasScalarAlias(field, []string{"label", "name"}) {
			w.report(diag.New(diag.KindMissingRequiredField, path, "field requires a label"))
		}
	}

	if document.SelectLike(fieldType) {
		w.validateOptions(path, fieldType, field)
	}
	if fieldType == document.FieldRepeater {
		w.validateRepeater(path, field, depth)
	}
	if value, ok := optionOf(field, "rules", "validations"); ok {
		w.validateNameList(diag.JoinPath(path, "rules"), value, "rule reference")
	}
}

func (w *walker) validateOptions(path string, fieldType document.FieldType, field map[string]any) {
	raw, declared := optionOf(field, "options", "choices", "optionsRef")
	if !declared {
		w.report(diag.Newf(diag.KindMissingRequiredField, path, "field type %q requires options", fieldType))
		return
	}

	if _, ok := rawdoc.ToString(raw); ok {
		return // reference into the shared component table
	}
	options, ok := rawdoc.ToSlice(raw)
	if !ok {
		w.report(diag.New(diag.KindInvalidValue, diag.JoinPath(path, "options"), `"options" must be an array or a reference string`))
		return
	}
	if len(options) == 0 {
		w.report(diag.Newf(diag.KindMissingRequiredField, path, "field type %q requires options", fieldType))
		return
	}
	for i, entry := range options {
		if _, ok := rawdoc.FormatScalar(entry); ok {
			continue
		}
		option, ok := rawdoc.ToMap(entry)
		if !ok {
			w.report(diag.New(diag.KindInvalidValue, diag.IndexPath(diag.JoinPath(path, "options"), i), "option must be a scalar or an object"))
			continue
		}
		if !hasScalarAlias(option, []string{"value", "label"}) {
			w.report(diag.New(diag.KindMissingRequiredField, diag.IndexPath(diag.JoinPath(path, "options"), i), "option must carry a value or label"))
		}
	}
}

func (w *walker) validateRepeater(path string, field map[string]any, depth int) {
	raw, declared := optionOf(field, "item_fields", "itemFields")
	if !declared {
		if nested, ok := rawdoc.ToMap(field["repeater"]); ok {
			raw, declared = optionOf(nested, "itemFields", "item_fields")
		}
	}
	if !declared {
		w.report(diag.New(diag.KindMissingRequiredField, path, "repeater requires item_fields"))
		return
	}
	items, ok := rawdoc.ToSlice(raw)
	if !ok {
		w.report(diag.New(diag.KindInvalidValue, diag.JoinPath(path, "item_fields"), `"item_fields" must be an array`))
		return
	}
	if len(items) == 0 {
		w.report(diag.New(diag.KindInvalidValue, diag.JoinPath(path, "item_fields"), "item_fields must not be empty"))
		return
	}
	for i, entry := range items {
		w.validateField(diag.IndexPath(diag.JoinPath(path, "item_fields"), i), entry, depth+1)
	}
}

func (w *walker) validateNameList(path string, value any, what string) {
	names, ok := rawdoc.ToSlice(value)
	if !ok {
		w.report(diag.Newf(diag.KindInvalidValue, path, "%s list must be an array", what))
		return
	}
	for i, entry := range names {
		if _, ok := rawdoc.ScalarString(entry); !ok {
			w.report(diag.Newf(diag.KindInvalidValue, diag.IndexPath(path, i), "%s must be a string", what))
		}
	}
}

func (w *walker) validateActions(path string, value any) {
	actions, ok := rawdoc.ToSlice(value)
	if !ok {
		w.report(diag.New(diag.KindInvalidValue, path, `"actions" must be an array`))
		return
	}
	for i, entry := range actions {
		w.validateAction(diag.IndexPath(path, i), entry)
	}
}

func (w *walker) validateAction(path string, value any) {
	if str, ok := value.(string); ok {
		// plain-string shorthand, expanded by the normalizer
		if _, ok := rawdoc.ToString(str); !ok {
			w.report(diag.New(diag.KindInvalidValue, path, "action shorthand must not be empty"))
		}
		return
	}

	action, ok := rawdoc.ToMap(value)
	if !ok {
		w.report(diag.New(diag.KindInvalidValue, path, "action must be an object or a string"))
		return
	}

	if !hasScalarAlias(action, []string{"id"}) {
		w.report(diag.New(diag.KindMissingRequiredField, path, "action requires an id"))
	}
	if !hasScalarAlias(action, []string{"label"}) {
		w.report(diag.New(diag.KindMissingRequiredField, path, "action requires a label"))
	}

	rawType, declared := action["type"]
	if !declared {
		w.report(diag.New(diag.KindMissingRequiredField, path, "action requires a type"))
		return
	}
	actionType, ok := rawdoc.ToString(rawType)
	if !ok {
		w.report(diag.New(diag.KindInvalidValue, diag.JoinPath(path, "type"), `"type" must be a string`))
		return
	}
	if !document.ValidActionType(document.ActionType(actionType)) {
		w.report(diag.Newf(diag.KindInvalidFieldType, diag.JoinPath(path, "type"), "unknown action type %q", actionType))
		return
	}
	if document.ActionType(actionType) == document.ActionNavigate {
		if !hasScalarAlias(action, []string{"target", "destination", "to"}) {
			w.report(diag.New(diag.KindMissingRequiredField, path, "navigate action requires a destination"))
		}
	}
}

func (w *walker) validateWizard(path string, value any) {
	wizard, ok := rawdoc.ToMap(value)
	if !ok {
		w.report(diag.New(diag.KindInvalidValue, path, "wizard must be an object"))
		return
	}
	rawSteps, declared := wizard["steps"]
	if !declared {
		w.report(diag.New(diag.KindMissingRequiredField, path, "wizard requires steps"))
		return
	}
	steps, ok := rawdoc.ToSlice(rawSteps)
	if !ok {
		w.report(diag.New(diag.KindInvalidValue, diag.JoinPath(path, "steps"), `"steps" must be an array`))
		return
	}
	if len(steps) == 0 {
		w.report(diag.New(diag.KindInvalidValue, diag.JoinPath(path, "steps"), "steps must not be empty"))
		return
	}
	for i, entry := range steps {
		stepPath := diag.IndexPath(diag.JoinPath(path, "steps"), i)
		step, ok := rawdoc.ToMap(entry)
		if !ok {
			w.report(diag.New(diag.KindInvalidValue, stepPath, "wizard step must be an object"))
			continue
		}
		if !hasScalarAlias(step, []string{"id"}) {
			w.report(diag.New(diag.KindMissingRequiredField, stepPath, "wizard step requires an id"))
		}
		if !hasScalarAlias(step, []string{"title"}) {
			w.report(diag.New(diag.KindMissingRequiredField, stepPath, "wizard step requires a title"))
		}
		rawFields, declared := step["fields"]
		if !declared {
			w.report(diag.New(diag.KindMissingRequiredField, stepPath, "wizard step requires fields"))
			continue
		}
		fields, ok := rawdoc.ToSlice(rawFields)
		if !ok {
			w.report(diag.New(diag.KindInvalidValue, diag.JoinPath(stepPath, "fields"), "fields must be an array"))
			continue
		}
		if len(fields) == 0 {
			w.report(diag.New(diag.KindInvalidValue, diag.JoinPath(stepPath, "fields"), "fields must not be empty"))
			continue
		}
		for j, fieldEntry := range fields {
			w.validateField(diag.IndexPath(diag.JoinPath(stepPath, "fields"), j), fieldEntry, 0)
		}
	}
}

func (w *walker) validateHeaderBlock(path string, screen map[string]any) {
	value, ok := optionOf(screen, "header", "header_config")
	if !ok {
		return
	}
	header, isMap := rawdoc.ToMap(value)
	if !isMap {
		w.report(diag.New(diag.KindInvalidValue, diag.JoinPath(path, "header"), "header must be an object"))
		return
	}
	if actions, ok := header["actions"]; ok {
		w.validateActions(diag.JoinPath(path, "header.actions"), actions)
	}
}

func (w *walker) validateNavigationBlock(path string, screen map[string]any) {
	value, ok := optionOf(screen, "navigation", "navigation_config")
	if !ok {
		return
	}
	navigation, isMap := rawdoc.ToMap(value)
	if !isMap {
		w.report(diag.New(diag.KindInvalidValue, diag.JoinPath(path, "navigation"), "navigation must be an object"))
		return
	}
	rawItems, declared := navigation["items"]
	if !declared {
		return
	}
	items, ok := rawdoc.ToSlice(rawItems)
	if !ok {
		w.report(diag.New(diag.KindInvalidValue, diag.JoinPath(path, "navigation.items"), `"items" must be an array`))
		return
	}
	for i, entry := range items {
		if _, ok := rawdoc.ToMap(entry); !ok {
			w.report(diag.New(diag.KindInvalidValue, diag.IndexPath(diag.JoinPath(path, "navigation.items"), i), "navigation item must be an object"))
		}
	}
}

func (w *walker) validateComponents(components rawdoc.Collection) {
	switch components.Shape {
	case rawdoc.ShapeKeyed:
		for _, key := range rawdoc.SortedKeys(components.Keyed) {
			path := diag.JoinPath(rawdoc.KeyComponents, key)
			component, ok := rawdoc.ToMap(components.Keyed[key])
			if !ok {
				w.report(diag.New(diag.KindInvalidValue, path, "component must be an object"))
				continue
			}
			if fields, ok := component["fields"]; ok {
				w.validateFieldList(diag.JoinPath(path, "fields"), fields)
			}
		}
	case rawdoc.ShapeEntries:
		for i, entry := range components.Entries {
			path := diag.IndexPath(rawdoc.KeyComponents, i)
			component, ok := rawdoc.ToMap(entry)
			if !ok {
				w.report(diag.New(diag.KindInvalidValue, path, "component entry must be an object"))
				continue
			}
			if !hasScalarAlias(component, []string{"name", "title", "id"}) {
				w.report(diag.New(diag.KindMissingRequiredField, path, "component entry must declare a name"))
			}
		}
	}
}

func (w *walker) validateValidations(validations rawdoc.Collection) {
	switch validations.Shape {
	case rawdoc.ShapeKeyed:
		for _, key := range rawdoc.SortedKeys(validations.Keyed) {
			path := diag.JoinPath(rawdoc.KeyValidations, key)
			rule, ok := rawdoc.ToMap(validations.Keyed[key])
			if !ok {
				w.report(diag.New(diag.KindInvalidValue, path, "validation rule must be an object"))
				continue
			}
			if !hasScalarAlias(rule, []string{"kind", "type"}) {
				w.report(diag.New(diag.KindMissingRequiredField, path, "validation rule requires a kind"))
			}
		}
	case rawdoc.ShapeEntries:
		for i, entry := range validations.Entries {
			path := diag.IndexPath(rawdoc.KeyValidations, i)
			rule, ok := rawdoc.ToMap(entry)
			if !ok {
				w.report(diag.New(diag.KindInvalidValue, path, "validation rule entry must be an object"))
				continue
			}
			if !hasScalarAlias(rule, []string{"name", "id"}) {
				w.report(diag.New(diag.KindMissingRequiredField, path, "validation rule entry must declare a name"))
			}
		}
	}
}

// fieldTypeOf resolves a field's declared type tag, empty when absent or
// not a string.
func fieldTypeOf(field map[string]any) document.FieldType {
	str, ok := rawdoc.ToString(field["type"])
	if !ok {
		return ""
	}
	return document.FieldType(str)
}

// hasScalarAlias reports whether any of the alias keys holds a non-empty
// scalar.
func hasScalarAlias(node map[string]any, aliases []string) bool {
	for _, alias := range aliases {
		value, declared := node[alias]
		if !declared {
			continue
		}
		if _, ok := rawdoc.ScalarString(value); ok {
			return true
		}
	}
	return false
}

// optionOf returns the first declared key among aliases.
func optionOf(node map[string]any, aliases ...string) (any, bool) {
	for _, alias := range aliases {
		if value, declared := node[alias]; declared {
			return value, true
		}
	}
	return nil, false
}
