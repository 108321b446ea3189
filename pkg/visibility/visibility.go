// Package visibility decides which fields of a canonical document should be
// shown for a given set of values. Documents declare conditions through the
// visible_when attribute (preserved verbatim by the parser in a field's
// Attrs); an Evaluator interprets the condition string against the values a
// consumer supplies. The package only filters copies: the canonical document
// itself is never mutated.
package visibility

import (
	"github.com/goliatone/go-viewdef/pkg/document"
)

// Rule attribute aliases, checked in order.
var ruleAliases = []string{"visible_when", "visibleWhen", "show_if", "showIf"}

// Context carries the inputs a condition can reference. Values holds the
// current field values, addressed by field id with dot-path traversal into
// nested maps. Extras lets callers inject ambient facts such as user roles
// or feature flags, addressed through the "extras." prefix.
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// Evaluator interprets one condition string. fieldPath names the field the
// condition is attached to, for error reporting.
type Evaluator interface {
	Eval(fieldPath, condition string, ctx Context) (bool, error)
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(fieldPath, condition string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(fieldPath, condition string, ctx Context) (bool, error) {
	return fn(fieldPath, condition, ctx)
}

// RuleOf returns the visibility condition declared on the field, or "" when
// the field is unconditional.
func RuleOf(field document.InputField) string {
	for _, alias := range ruleAliases {
		if raw, ok := field.Attrs[alias]; ok {
			if condition, ok := raw.(string); ok && condition != "" {
				return condition
			}
		}
	}
	return ""
}

// Visible reports whether the field should be shown under ctx. Fields
// without a condition are always visible.
func Visible(evaluator Evaluator, field document.InputField, ctx Context) (bool, error) {
	condition := RuleOf(field)
	if condition == "" {
		return true, nil
	}
	return evaluator.Eval(field.ID, condition, ctx)
}

// FilterFields returns the fields visible under ctx, descending into
// repeater item fields. The input slice is not modified.
func FilterFields(evaluator Evaluator, fields []document.InputField, ctx Context) ([]document.InputField, error) {
	if len(fields) == 0 {
		return fields, nil
	}
	out := make([]document.InputField, 0, len(fields))
	for _, field := range fields {
		ok, err := Visible(evaluator, field, ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if field.Repeater != nil {
			items, err := FilterFields(evaluator, field.Repeater.ItemFields, ctx)
			if err != nil {
				return nil, err
			}
			repeater := *field.Repeater
			repeater.ItemFields = items
			field.Repeater = &repeater
		}
		out = append(out, field)
	}
	return out, nil
}

// FilterScreen returns a copy of the screen with every invisible field
// removed: the flat field list, each section, and each wizard step are
// filtered with the same evaluator. Sections and steps stay in place even
// when all of their fields are filtered out, so consumers keep their
// navigation structure.
func FilterScreen(evaluator Evaluator, screen document.ScreenDefinition, ctx Context) (document.ScreenDefinition, error) {
	fields, err := FilterFields(evaluator, screen.Fields, ctx)
	if err != nil {
		return document.ScreenDefinition{}, err
	}
	screen.Fields = fields

	if len(screen.Sections) > 0 {
		sections := make([]document.FormSection, len(screen.Sections))
		copy(sections, screen.Sections)
		for i := range sections {
			filtered, err := FilterFields(evaluator, sections[i].Fields, ctx)
			if err != nil {
				return document.ScreenDefinition{}, err
			}
			sections[i].Fields = filtered
		}
		screen.Sections = sections
	}

	if screen.Wizard != nil {
		steps := make([]document.WizardStep, len(screen.Wizard.Steps))
		copy(steps, screen.Wizard.Steps)
		for i := range steps {
			filtered, err := FilterFields(evaluator, steps[i].Fields, ctx)
			if err != nil {
				return document.ScreenDefinition{}, err
			}
			steps[i].Fields = filtered
		}
		screen.Wizard = &document.WizardConfig{Steps: steps}
	}

	return screen, nil
}
