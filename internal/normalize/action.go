package normalize

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-viewdef/internal/rawdoc"
	"github.com/goliatone/go-viewdef/pkg/document"
)

// normalizeActions maps a raw action list onto canonical actions. Entries
// authored as plain strings expand into submit actions with synthesized
// sequential ids; the first entry of the list styles as primary, every
// other shorthand as secondary.
func normalizeActions(entries []any) []document.Action {
	if len(entries) == 0 {
		return nil
	}
	out := make([]document.Action, 0, len(entries))
	shorthand := 0
	for i, entry := range entries {
		if label, ok := rawdoc.ScalarString(entry); ok {
			shorthand++
			style := document.ActionStyleSecondary
			if i == 0 {
				style = document.ActionStylePrimary
			}
			out = append(out, document.Action{
				ID:    fmt.Sprintf("action_%d", shorthand),
				Type:  document.ActionSubmit,
				Label: label,
				Style: style,
			})
			continue
		}
		raw, ok := rawdoc.ToMap(entry)
		if !ok {
			continue
		}
		out = append(out, normalizeAction(raw))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeAction(raw map[string]any) document.Action {
	a := newAttrs(raw)
	action := document.Action{
		ID:       a.str("", "id"),
		Type:     document.ActionType(a.str("", "type")),
		Label:    a.str("", "label"),
		Style:    a.str("", "style", "variant"),
		Icon:     sanitizeIcon(a.str("", "icon")),
		Target:   a.str("", "target", "destination", "to"),
		Endpoint: a.str("", "endpoint", "url"),
		Confirm:  a.str("", "confirm", "confirm_message"),
	}
	if method := a.str("", "method"); method != "" {
		action.Method = strings.ToUpper(method)
	}
	action.Attrs = a.leftovers()
	return action
}
