package normalize

import (
	"github.com/goliatone/go-viewdef/internal/rawdoc"
	"github.com/goliatone/go-viewdef/pkg/document"
)

// Synthetic identity of the data_table generated from the display_fields
// shorthand.
const (
	displayTableID    = "records_table"
	displayTableLabel = "Records"
)

// normalizeScreen resolves one raw screen into its canonical definition.
// Screen content derives from the first authored source in the precedence
// order: sections, fields, the display_fields shorthand, legacy
// input_fields. Fields is always populated; with sections it carries the
// flattened section fields so whole-screen consumers never walk sections
// themselves.
func normalizeScreen(raw map[string]any) document.ScreenDefinition {
	a := newAttrs(raw)

	screen := document.ScreenDefinition{
		Title:       a.str("", "title", "name", "label", "screen_title"),
		Description: a.str("", "description", "desc"),
		Icon:        sanitizeIcon(a.str("", "icon")),
		Fields:      []document.InputField{},
	}

	screen.Header = headerConfig(a)
	screen.Navigation = navigationConfig(a)
	screen.Layout = layoutConfig(a)

	sections, hasSections := a.list("", "sections")
	fields, hasFields := a.list("", "fields")
	displayFields, hasDisplay := a.list("", "display_fields", "displayFields")
	filters, _ := a.list("", "filters")
	inputFields, hasInput := a.list("", "input_fields", "inputFields")

	switch {
	case hasSections && len(sections) > 0:
		screen.Sections = normalizeSections(sections)
		screen.Fields = flattenSections(screen.Sections)
	case hasFields && len(fields) > 0:
		screen.Fields = normalizeFields(fields)
	case hasDisplay && len(displayFields) > 0:
		screen.Fields = []document.InputField{synthesizeDisplayTable(displayFields, filters)}
	case hasInput && len(inputFields) > 0:
		screen.Fields = normalizeFields(inputFields)
	}

	if actions, ok := a.list("", "actions"); ok {
		screen.Actions = normalizeActions(actions)
	}
	if wizard, ok := a.object("", "wizard"); ok {
		screen.Wizard = wizardConfig(wizard)
	}

	return screen
}

func normalizeSections(entries []any) []document.FormSection {
	out := make([]document.FormSection, 0, len(entries))
	for _, entry := range entries {
		raw, ok := rawdoc.ToMap(entry)
		if !ok {
			continue
		}
		a := newAttrs(raw)
		section := document.FormSection{
			ID:        a.str("", "id"),
			Title:     a.str("", "title", "name"),
			Icon:      sanitizeIcon(a.str("", "icon")),
			Published: a.boolPtr("", "published", "publish"),
			Fields:    []document.InputField{},
		}
		if section.Title == "" {
			section.Title = section.ID
		}
		if section.ID == "" {
			section.ID = ToSafeKey(section.Title)
		}
		if fields, ok := a.list("", "fields"); ok {
			section.Fields = normalizeFields(fields)
		}
		out = append(out, section)
	}
	return out
}

func flattenSections(sections []document.FormSection) []document.InputField {
	total := 0
	for _, section := range sections {
		total += len(section.Fields)
	}
	out := make([]document.InputField, 0, total)
	for _, section := range sections {
		out = append(out, section.Fields...)
	}
	return out
}

// synthesizeDisplayTable expands the legacy display_fields + filters
// shorthand into exactly one data_table field: one column per display name
// in authored order, one filter per filter name, with the free-text
// "search" keyword toggling the search box instead of becoming a filter.
func synthesizeDisplayTable(displayFields, filters []any) document.InputField {
	cfg := &document.DataTableConfig{
		Columns:         tableColumns(displayFields),
		RowsPerPage:     defaultRowsPerPage,
		PageSizeOptions: defaultPageSizes(),
		EmptyMessage:    defaultEmptyMessage,
	}
	if len(filters) > 0 {
		normalized, search := tableFilters(filters)
		cfg.Filters = normalized
		cfg.ShowSearch = search
	}
	return document.InputField{
		ID:    displayTableID,
		Type:  document.FieldDataTable,
		Label: displayTableLabel,
		Table: cfg,
	}
}

func wizardConfig(raw map[string]any) *document.WizardConfig {
	a := newAttrs(raw)
	cfg := &document.WizardConfig{Steps: []document.WizardStep{}}
	steps, ok := a.list("", "steps")
	if !ok {
		return cfg
	}
	for _, entry := range steps {
		rawStep, ok := rawdoc.ToMap(entry)
		if !ok {
			continue
		}
		sa := newAttrs(rawStep)
		step := document.WizardStep{
			ID:        sa.str("", "id"),
			Title:     sa.str("", "title"),
			Subtitle:  sa.str("", "subtitle", "sub_title"),
			Status:    sa.str("", "status"),
			Skippable: sa.boolPtr("", "skippable", "optional"),
			Fields:    []document.InputField{},
		}
		if fields, ok := sa.list("", "fields"); ok {
			step.Fields = normalizeFields(fields)
		}
		cfg.Steps = append(cfg.Steps, step)
	}
	return cfg
}

func headerConfig(a *attrs) *document.HeaderConfig {
	raw, ok := a.object("", "header", "header_config")
	if !ok {
		return nil
	}
	ha := newAttrs(raw)
	cfg := &document.HeaderConfig{
		Title:    ha.str("", "title"),
		Subtitle: ha.str("", "subtitle"),
		ShowBack: ha.boolPtr("", "showBack", "show_back"),
	}
	if actions, ok := ha.list("", "actions"); ok {
		cfg.Actions = normalizeActions(actions)
	}
	cfg.Attrs = ha.leftovers()
	return cfg
}

func navigationConfig(a *attrs) *document.NavigationConfig {
	raw, ok := a.object("", "navigation", "navigation_config")
	if !ok {
		return nil
	}
	na := newAttrs(raw)
	cfg := &document.NavigationConfig{
		Kind: na.str("", "kind", "type"),
	}
	if items, ok := na.list("", "items"); ok {
		cfg.Items = navigationItems(items)
	}
	cfg.Attrs = na.leftovers()
	return cfg
}

func navigationItems(entries []any) []document.NavigationItem {
	out := make([]document.NavigationItem, 0, len(entries))
	for _, entry := range entries {
		raw, ok := rawdoc.ToMap(entry)
		if !ok {
			continue
		}
		ia := newAttrs(raw)
		item := document.NavigationItem{
			ID:     ia.str("", "id"),
			Label:  ia.str("", "label", "title"),
			Icon:   sanitizeIcon(ia.str("", "icon")),
			Target: ia.str("", "target", "destination", "to"),
		}
		if item.ID == "" {
			item.ID = ToSafeKey(item.Label)
		}
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func layoutConfig(a *attrs) *document.LayoutConfig {
	raw, ok := a.object("", "layout")
	if !ok {
		return nil
	}
	la := newAttrs(raw)
	cfg := &document.LayoutConfig{
		Gutter: la.str("", "gutter"),
	}
	if columns, ok := la.integer("", "gridColumns", "grid_columns", "columns"); ok {
		cfg.GridColumns = columns
	}
	if cfg.GridColumns == 0 && cfg.Gutter == "" {
		return nil
	}
	return cfg
}
