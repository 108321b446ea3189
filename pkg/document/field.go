package document

// FieldType discriminates the InputField variants. The set is closed: tags
// outside it are preserved through the fallback variant (Unknown true,
// attributes verbatim in Attrs) rather than rejected.
type FieldType string

const (
	FieldText         FieldType = "text"
	FieldEmail        FieldType = "email"
	FieldPassword     FieldType = "password"
	FieldTel          FieldType = "tel"
	FieldURL          FieldType = "url"
	FieldNumber       FieldType = "number"
	FieldTextarea     FieldType = "textarea"
	FieldRichText     FieldType = "rich_text"
	FieldSelect       FieldType = "select"
	FieldMultiSelect  FieldType = "multi_select"
	FieldCombobox     FieldType = "combobox"
	FieldRadioGroup   FieldType = "radio_group"
	FieldCheckbox     FieldType = "checkbox"
	FieldCheckboxGrp  FieldType = "checkbox_group"
	FieldToggle       FieldType = "toggle"
	FieldSlider       FieldType = "slider"
	FieldRating       FieldType = "rating"
	FieldDate         FieldType = "date"
	FieldTime         FieldType = "time"
	FieldDateTime     FieldType = "datetime"
	FieldDateRange    FieldType = "date_range"
	FieldDuration     FieldType = "duration"
	FieldColor        FieldType = "color"
	FieldFileUpload   FieldType = "file_upload"
	FieldImageUpload  FieldType = "image_upload"
	FieldPhotoManager FieldType = "photo_manager"
	FieldMapEmbed     FieldType = "map_embed"
	FieldSignature    FieldType = "signature"
	FieldRepeater     FieldType = "repeater"
	FieldDataTable    FieldType = "data_table"
	FieldHidden       FieldType = "hidden"

	FieldLabel     FieldType = "label"
	FieldBadge     FieldType = "badge"
	FieldHeading   FieldType = "heading"
	FieldParagraph FieldType = "paragraph"
	FieldDivider   FieldType = "divider"
	FieldSpacer    FieldType = "spacer"
	FieldImage     FieldType = "image"
	FieldProgress  FieldType = "progress"
	FieldTimeline  FieldType = "timeline"
	FieldKeyValue  FieldType = "key_value"
)

// InputField is the tagged variant for one field of a screen. The common
// header attributes apply to every variant; the per-family pointers are only
// populated for the variant they belong to. Attrs preserves attributes the
// dispatch did not map, and carries the entire raw attribute set when
// Unknown is true.
type InputField struct {
	ID          string    `json:"id,omitempty" yaml:"id,omitempty"`
	Type        FieldType `json:"type" yaml:"type"`
	Label       string    `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	HelpText    string    `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Icon        string    `json:"icon,omitempty" yaml:"icon,omitempty"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	ReadOnly    bool      `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	Hidden      bool      `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Default     any       `json:"default,omitempty" yaml:"default,omitempty"`

	Options    []Option `json:"options,omitempty" yaml:"options,omitempty"`
	OptionsRef string   `json:"optionsRef,omitempty" yaml:"optionsRef,omitempty"`

	Number   *NumberConfig    `json:"number,omitempty" yaml:"number,omitempty"`
	Text     *TextConfig      `json:"text,omitempty" yaml:"text,omitempty"`
	DateTime *DateTimeConfig  `json:"dateTime,omitempty" yaml:"dateTime,omitempty"`
	Toggle   *ToggleConfig    `json:"toggle,omitempty" yaml:"toggle,omitempty"`
	Rating   *RatingConfig    `json:"rating,omitempty" yaml:"rating,omitempty"`
	Upload   *UploadConfig    `json:"upload,omitempty" yaml:"upload,omitempty"`
	Map      *MapConfig       `json:"map,omitempty" yaml:"map,omitempty"`
	Photos   *PhotoConfig     `json:"photos,omitempty" yaml:"photos,omitempty"`
	Repeater *RepeaterConfig  `json:"repeater,omitempty" yaml:"repeater,omitempty"`
	Table    *DataTableConfig `json:"table,omitempty" yaml:"table,omitempty"`
	Display  *DisplayConfig   `json:"display,omitempty" yaml:"display,omitempty"`

	Rules []string `json:"rules,omitempty" yaml:"rules,omitempty"`

	Attrs   map[string]any `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Unknown bool           `json:"unknown,omitempty" yaml:"unknown,omitempty"`
}

// Option is one selectable choice of a select-like field. Option lists
// authored as plain strings become pairs whose Value equals their Label.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// NumberConfig carries the numeric-family attributes (number, slider).
type NumberConfig struct {
	Min  *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max  *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Step *float64 `json:"step,omitempty" yaml:"step,omitempty"`
	Unit string   `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// TextConfig carries the free-text attributes (textarea, rich_text and the
// single-line text family).
type TextConfig struct {
	MinLength *int   `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Rows      *int   `json:"rows,omitempty" yaml:"rows,omitempty"`
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
}

// DateTimeConfig carries the date/time-family attributes. Bounds stay in
// their authored string form.
type DateTimeConfig struct {
	Min    string `json:"min,omitempty" yaml:"min,omitempty"`
	Max    string `json:"max,omitempty" yaml:"max,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// ToggleConfig carries the on/off labels of a toggle.
type ToggleConfig struct {
	OnLabel  string `json:"onLabel,omitempty" yaml:"onLabel,omitempty"`
	OffLabel string `json:"offLabel,omitempty" yaml:"offLabel,omitempty"`
}

// RatingConfig carries the rating attributes. Max defaults to 5.
type RatingConfig struct {
	Max  int    `json:"max" yaml:"max"`
	Icon string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// UploadConfig carries the upload-family attributes (file_upload,
// image_upload, signature). Accept holds individual extensions or MIME
// patterns regardless of whether the document authored them as an array or
// a comma-joined string.
type UploadConfig struct {
	Accept    []string `json:"accept,omitempty" yaml:"accept,omitempty"`
	MaxFiles  *int     `json:"maxFiles,omitempty" yaml:"maxFiles,omitempty"`
	MaxSizeMB *int     `json:"maxSizeMb,omitempty" yaml:"maxSizeMb,omitempty"`
}

// MapConfig carries the map_embed attributes.
type MapConfig struct {
	Latitude  *float64 `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty" yaml:"longitude,omitempty"`
	Zoom      *int     `json:"zoom,omitempty" yaml:"zoom,omitempty"`
}

// PhotoConfig carries the photo_manager attributes.
type PhotoConfig struct {
	MaxPhotos    *int  `json:"maxPhotos,omitempty" yaml:"maxPhotos,omitempty"`
	AllowGallery *bool `json:"allowGallery,omitempty" yaml:"allowGallery,omitempty"`
}

// RepeaterConfig carries the repeatable group a repeater stamps out.
// ItemFields is non-empty and recursively normalized.
type RepeaterConfig struct {
	ItemFields []InputField `json:"itemFields" yaml:"itemFields"`
	MinItems   *int         `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems   *int         `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
	AddLabel   string       `json:"addLabel,omitempty" yaml:"addLabel,omitempty"`
}

// DataTableConfig carries the tabular attributes of a data_table, whether
// authored directly or synthesized from the legacy display_fields shorthand.
type DataTableConfig struct {
	Columns         []TableColumn `json:"columns" yaml:"columns"`
	Filters         []TableFilter `json:"filters,omitempty" yaml:"filters,omitempty"`
	ShowSearch      bool          `json:"showSearch,omitempty" yaml:"showSearch,omitempty"`
	RowsPerPage     int           `json:"rowsPerPage" yaml:"rowsPerPage"`
	PageSizeOptions []int         `json:"pageSizeOptions" yaml:"pageSizeOptions"`
	EmptyMessage    string        `json:"emptyMessage" yaml:"emptyMessage"`
}

// TableColumn is one column of a data_table.
type TableColumn struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
}

// TableFilter is one filterable field of a data_table.
type TableFilter struct {
	Field string `json:"field" yaml:"field"`
	Label string `json:"label" yaml:"label"`
}

// DisplayConfig carries the attributes of the presentation-only variants
// (heading, paragraph, label, badge, image, progress, timeline, key_value).
type DisplayConfig struct {
	Text    string         `json:"text,omitempty" yaml:"text,omitempty"`
	Level   *int           `json:"level,omitempty" yaml:"level,omitempty"`
	Source  string         `json:"source,omitempty" yaml:"source,omitempty"`
	AltText string         `json:"altText,omitempty" yaml:"altText,omitempty"`
	Variant string         `json:"variant,omitempty" yaml:"variant,omitempty"`
	Value   *float64       `json:"value,omitempty" yaml:"value,omitempty"`
	Pairs   []LabeledValue `json:"pairs,omitempty" yaml:"pairs,omitempty"`
}

// LabeledValue is one label/value pair of a key_value or timeline widget.
type LabeledValue struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}
