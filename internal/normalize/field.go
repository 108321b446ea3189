package normalize

import (
	"strings"

	"github.com/goliatone/go-viewdef/internal/rawdoc"
	"github.com/goliatone/go-viewdef/pkg/document"
)

// Data table defaults applied whenever a table does not declare its own
// pagination or empty state.
const (
	defaultRowsPerPage  = 10
	defaultEmptyMessage = "No records found"
	searchFilterKeyword = "search"
)

func defaultPageSizes() []int {
	return []int{10, 25, 50, 100}
}

// normalizeFields maps a raw field list onto canonical fields, skipping
// entries that are not objects (possible for legacy array-form screens,
// whose content is not validated).
func normalizeFields(entries []any) []document.InputField {
	out := make([]document.InputField, 0, len(entries))
	for _, entry := range entries {
		raw, ok := rawdoc.ToMap(entry)
		if !ok {
			continue
		}
		out = append(out, normalizeField(raw))
	}
	return out
}

// normalizeField is the closed dispatch over every known field-type tag.
// Unknown tags survive as the fallback variant with their attributes kept
// verbatim.
func normalizeField(raw map[string]any) document.InputField {
	a := newAttrs(raw)

	fieldType := document.FieldType(a.str("", "type"))
	out := document.InputField{
		ID:          a.str("", "id"),
		Type:        fieldType,
		Label:       a.str("", "label", "name"),
		Placeholder: a.str("", "placeholder"),
		HelpText:    a.str("", "helpText", "help_text", "hint"),
		Icon:        sanitizeIcon(a.str("", "icon")),
		Required:    a.boolean("", "required"),
		ReadOnly:    a.boolean("", "readOnly", "read_only", "readonly"),
		Hidden:      a.boolean("", "hidden"),
	}
	if value, ok := a.raw("", "default", "default_value", "defaultValue"); ok {
		out.Default = value
	}
	if rules, ok := a.list("", "rules", "validations"); ok {
		out.Rules = scalarList(rules)
	}
	a.mark("unknown")

	if !document.KnownFieldType(fieldType) {
		out.Unknown = true
		out.Attrs = a.leftovers()
		return out
	}

	switch {
	case document.SelectLike(fieldType) || fieldType == document.FieldCombobox:
		applyOptions(a, &out)
	case fieldType == document.FieldNumber || fieldType == document.FieldSlider:
		out.Number = numberConfig(a)
	case fieldType == document.FieldRating:
		out.Rating = ratingConfig(a)
	case fieldType == document.FieldToggle:
		out.Toggle = toggleConfig(a)
	case isDateFamily(fieldType):
		out.DateTime = dateTimeConfig(a)
	case isUploadFamily(fieldType):
		out.Upload = uploadConfig(a)
	case fieldType == document.FieldMapEmbed:
		out.Map = mapConfig(a)
	case fieldType == document.FieldPhotoManager:
		out.Photos = photoConfig(a)
	case fieldType == document.FieldRepeater:
		out.Repeater = repeaterConfig(a)
	case fieldType == document.FieldDataTable:
		out.Table = tableConfig(a)
	case isTextFamily(fieldType):
		out.Text = textConfig(a)
	case document.PresentationOnly(fieldType) || fieldType == document.FieldBadge || fieldType == document.FieldKeyValue:
		out.Display = displayConfig(a, fieldType)
	}

	out.Attrs = a.leftovers()
	return out
}

func isDateFamily(t document.FieldType) bool {
	switch t {
	case document.FieldDate, document.FieldTime, document.FieldDateTime,
		document.FieldDateRange, document.FieldDuration:
		return true
	}
	return false
}

func isUploadFamily(t document.FieldType) bool {
	switch t {
	case document.FieldFileUpload, document.FieldImageUpload, document.FieldSignature:
		return true
	}
	return false
}

func isTextFamily(t document.FieldType) bool {
	switch t {
	case document.FieldText, document.FieldEmail, document.FieldPassword,
		document.FieldTel, document.FieldURL, document.FieldTextarea,
		document.FieldRichText:
		return true
	}
	return false
}

// applyOptions resolves either an inline option list or a reference into
// the shared component table. String-array entries become pairs whose value
// equals their label.
func applyOptions(a *attrs, out *document.InputField) {
	raw, declared := a.raw("", "options", "choices", "optionsRef")
	if !declared {
		return
	}
	if ref, ok := rawdoc.ToString(raw); ok {
		out.OptionsRef = ref
		return
	}
	entries, ok := rawdoc.ToSlice(raw)
	if !ok {
		return
	}
	options := make([]document.Option, 0, len(entries))
	for _, entry := range entries {
		if scalar, ok := rawdoc.FormatScalar(entry); ok {
			options = append(options, document.Option{Value: scalar, Label: scalar})
			continue
		}
		node, ok := rawdoc.ToMap(entry)
		if !ok {
			continue
		}
		value, _ := rawdoc.ScalarString(node["value"])
		label, _ := rawdoc.ScalarString(node["label"])
		if value == "" {
			value = label
		}
		if label == "" {
			label = value
		}
		if value == "" && label == "" {
			continue
		}
		options = append(options, document.Option{Value: value, Label: label})
	}
	out.Options = options
}

func numberConfig(a *attrs) *document.NumberConfig {
	cfg := &document.NumberConfig{
		Min:  a.floatPtr("number", "min"),
		Max:  a.floatPtr("number", "max"),
		Step: a.floatPtr("number", "step"),
		Unit: a.str("number", "unit"),
	}
	if cfg.Min == nil && cfg.Max == nil && cfg.Step == nil && cfg.Unit == "" {
		return nil
	}
	return cfg
}

func textConfig(a *attrs) *document.TextConfig {
	cfg := &document.TextConfig{
		MinLength: a.intPtr("text", "minLength", "min_length"),
		MaxLength: a.intPtr("text", "maxLength", "max_length"),
		Rows:      a.intPtr("text", "rows"),
		Pattern:   a.str("text", "pattern"),
	}
	if cfg.MinLength == nil && cfg.MaxLength == nil && cfg.Rows == nil && cfg.Pattern == "" {
		return nil
	}
	return cfg
}

func dateTimeConfig(a *attrs) *document.DateTimeConfig {
	cfg := &document.DateTimeConfig{
		Min:    a.str("dateTime", "min", "min_date"),
		Max:    a.str("dateTime", "max", "max_date"),
		Format: a.str("dateTime", "format"),
	}
	if cfg.Min == "" && cfg.Max == "" && cfg.Format == "" {
		return nil
	}
	return cfg
}

func toggleConfig(a *attrs) *document.ToggleConfig {
	cfg := &document.ToggleConfig{
		OnLabel:  a.str("toggle", "onLabel", "on_label"),
		OffLabel: a.str("toggle", "offLabel", "off_label"),
	}
	if cfg.OnLabel == "" && cfg.OffLabel == "" {
		return nil
	}
	return cfg
}

// ratingConfig always materializes: a rating without a declared maximum
// defaults to five.
func ratingConfig(a *attrs) *document.RatingConfig {
	cfg := &document.RatingConfig{
		Max:  5,
		Icon: sanitizeIcon(a.str("rating", "icon", "rating_icon")),
	}
	if max, ok := a.integer("rating", "max", "max_rating"); ok && max > 0 {
		cfg.Max = max
	}
	return cfg
}

// uploadConfig accepts the file-type allow-list either as an array or as a
// comma-joined string, a historical authoring alias.
func uploadConfig(a *attrs) *document.UploadConfig {
	cfg := &document.UploadConfig{
		MaxFiles:  a.intPtr("upload", "maxFiles", "max_files"),
		MaxSizeMB: a.intPtr("upload", "maxSizeMb", "max_size_mb", "max_size"),
	}
	if raw, ok := a.raw("upload", "accept", "accepted_file_types", "file_types"); ok {
		cfg.Accept = acceptList(raw)
	}
	if cfg.Accept == nil && cfg.MaxFiles == nil && cfg.MaxSizeMB == nil {
		return nil
	}
	return cfg
}

func acceptList(raw any) []string {
	if joined, ok := rawdoc.ToString(raw); ok {
		parts := strings.Split(joined, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	}
	if entries, ok := rawdoc.ToSlice(raw); ok {
		return scalarList(entries)
	}
	return nil
}

func mapConfig(a *attrs) *document.MapConfig {
	cfg := &document.MapConfig{
		Latitude:  a.floatPtr("map", "latitude", "lat"),
		Longitude: a.floatPtr("map", "longitude", "lng", "lon"),
		Zoom:      a.intPtr("map", "zoom"),
	}
	if cfg.Latitude == nil && cfg.Longitude == nil && cfg.Zoom == nil {
		return nil
	}
	return cfg
}

func photoConfig(a *attrs) *document.PhotoConfig {
	cfg := &document.PhotoConfig{
		MaxPhotos:    a.intPtr("photos", "maxPhotos", "max_photos"),
		AllowGallery: a.boolPtr("photos", "allowGallery", "allow_gallery"),
	}
	if cfg.MaxPhotos == nil && cfg.AllowGallery == nil {
		return nil
	}
	return cfg
}

// repeaterConfig recurses into the item fields; the validator has already
// bounded their depth.
func repeaterConfig(a *attrs) *document.RepeaterConfig {
	cfg := &document.RepeaterConfig{
		MinItems: a.intPtr("repeater", "minItems", "min_items"),
		MaxItems: a.intPtr("repeater", "maxItems", "max_items"),
		AddLabel: a.str("repeater", "addLabel", "add_label"),
	}
	cfg.ItemFields = []document.InputField{}
	if items, ok := a.list("repeater", "itemFields", "item_fields"); ok {
		cfg.ItemFields = normalizeFields(items)
	}
	return cfg
}

// tableConfig normalizes a directly authored data_table, applying the same
// pagination and empty-state defaults the display_fields shorthand gets.
func tableConfig(a *attrs) *document.DataTableConfig {
	cfg := &document.DataTableConfig{
		RowsPerPage:     defaultRowsPerPage,
		PageSizeOptions: defaultPageSizes(),
		EmptyMessage:    defaultEmptyMessage,
		ShowSearch:      a.boolean("table", "showSearch", "show_search"),
	}
	if rows, ok := a.integer("table", "rowsPerPage", "rows_per_page", "page_size"); ok && rows > 0 {
		cfg.RowsPerPage = rows
	}
	if sizes, ok := a.list("table", "pageSizeOptions", "page_size_options"); ok {
		if parsed := intList(sizes); len(parsed) > 0 {
			cfg.PageSizeOptions = parsed
		}
	}
	if message := a.str("table", "emptyMessage", "empty_message"); message != "" {
		cfg.EmptyMessage = message
	}
	cfg.Columns = []document.TableColumn{}
	if columns, ok := a.list("table", "columns"); ok {
		cfg.Columns = tableColumns(columns)
	}
	if filters, ok := a.list("table", "filters", "filter_fields"); ok {
		normalized, search := tableFilters(filters)
		cfg.Filters = normalized
		if search {
			cfg.ShowSearch = true
		}
	}
	return cfg
}

// tableColumns accepts plain column names or {key,label} objects.
func tableColumns(entries []any) []document.TableColumn {
	out := make([]document.TableColumn, 0, len(entries))
	for _, entry := range entries {
		if name, ok := rawdoc.ScalarString(entry); ok {
			out = append(out, document.TableColumn{Key: ToSafeKey(name), Label: name})
			continue
		}
		node, ok := rawdoc.ToMap(entry)
		if !ok {
			continue
		}
		key, _ := rawdoc.ScalarString(node["key"])
		label, _ := rawdoc.ScalarString(node["label"])
		if label == "" {
			label = key
		}
		if key == "" {
			key = ToSafeKey(label)
		}
		if key == "" && label == "" {
			continue
		}
		out = append(out, document.TableColumn{Key: key, Label: label})
	}
	return out
}

// tableFilters accepts plain filter names or {field,label} objects. The
// free-text "search" keyword is not a filter: it flips the search box on.
func tableFilters(entries []any) ([]document.TableFilter, bool) {
	showSearch := false
	out := make([]document.TableFilter, 0, len(entries))
	for _, entry := range entries {
		if name, ok := rawdoc.ScalarString(entry); ok {
			if strings.EqualFold(name, searchFilterKeyword) {
				showSearch = true
				continue
			}
			out = append(out, document.TableFilter{Field: ToSafeKey(name), Label: name})
			continue
		}
		node, ok := rawdoc.ToMap(entry)
		if !ok {
			continue
		}
		field, _ := rawdoc.ScalarString(node["field"])
		label, _ := rawdoc.ScalarString(node["label"])
		if field == "" {
			field = ToSafeKey(label)
		}
		if label == "" {
			label = field
		}
		if field == "" {
			continue
		}
		out = append(out, document.TableFilter{Field: field, Label: label})
	}
	if len(out) == 0 {
		out = nil
	}
	return out, showSearch
}

func displayConfig(a *attrs, fieldType document.FieldType) *document.DisplayConfig {
	cfg := &document.DisplayConfig{}
	switch fieldType {
	case document.FieldHeading:
		cfg.Text = a.str("display", "text", "content")
		cfg.Level = a.intPtr("display", "level")
	case document.FieldParagraph, document.FieldLabel:
		cfg.Text = a.str("display", "text", "content")
	case document.FieldBadge:
		cfg.Text = a.str("display", "text", "content")
		cfg.Variant = a.str("display", "variant", "style")
	case document.FieldImage:
		cfg.Source = a.str("display", "source", "src", "url")
		cfg.AltText = a.str("display", "altText", "alt_text", "alt")
	case document.FieldProgress:
		cfg.Value = a.floatPtr("display", "value")
	case document.FieldTimeline, document.FieldKeyValue:
		if entries, ok := a.list("display", "pairs", "items", "entries"); ok {
			cfg.Pairs = labeledValues(entries)
		}
	}
	if isEmptyDisplay(cfg) {
		return nil
	}
	return cfg
}

func isEmptyDisplay(cfg *document.DisplayConfig) bool {
	return cfg.Text == "" && cfg.Level == nil && cfg.Source == "" &&
		cfg.AltText == "" && cfg.Variant == "" && cfg.Value == nil && len(cfg.Pairs) == 0
}

func labeledValues(entries []any) []document.LabeledValue {
	out := make([]document.LabeledValue, 0, len(entries))
	for _, entry := range entries {
		node, ok := rawdoc.ToMap(entry)
		if !ok {
			continue
		}
		label, _ := rawdoc.ScalarString(node["label"])
		if label == "" {
			label, _ = rawdoc.ScalarString(node["key"])
		}
		value, _ := rawdoc.ScalarString(node["value"])
		if label == "" && value == "" {
			continue
		}
		out = append(out, document.LabeledValue{Label: label, Value: value})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func scalarList(entries []any) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if scalar, ok := rawdoc.ScalarString(entry); ok {
			out = append(out, scalar)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func intList(entries []any) []int {
	out := make([]int, 0, len(entries))
	for _, entry := range entries {
		if n, ok := rawdoc.ToInt(entry); ok {
			out = append(out, n)
		}
	}
	return out
}
