package document

// Document is the top-level canonical result of a successful parse. Screens
// is keyed by the safe screen key (authored key in the object form, derived
// slug in the legacy array form). Components and Rules hold the optional
// shared tables authored under "common_components" and "validations".
type Document struct {
	Screens    map[string]ScreenDefinition `json:"view" yaml:"view"`
	Components map[string]Component        `json:"commonComponents,omitempty" yaml:"commonComponents,omitempty"`
	Rules      map[string]ValidationRule   `json:"validationRules,omitempty" yaml:"validationRules,omitempty"`
}

// ScreenDefinition describes one application screen. Fields is always
// populated: with the authored field list, with the flattened fields of all
// sections when the screen is section-based, or with the synthesized fields
// of a legacy shorthand. Sections and Wizard are only set when the document
// authored them.
type ScreenDefinition struct {
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Icon        string            `json:"icon,omitempty" yaml:"icon,omitempty"`
	Header      *HeaderConfig     `json:"header,omitempty" yaml:"header,omitempty"`
	Navigation  *NavigationConfig `json:"navigation,omitempty" yaml:"navigation,omitempty"`
	Sections    []FormSection     `json:"sections,omitempty" yaml:"sections,omitempty"`
	Fields      []InputField      `json:"fields" yaml:"fields"`
	Actions     []Action          `json:"actions,omitempty" yaml:"actions,omitempty"`
	Wizard      *WizardConfig     `json:"wizard,omitempty" yaml:"wizard,omitempty"`
	Layout      *LayoutConfig     `json:"layout,omitempty" yaml:"layout,omitempty"`
}

// HeaderConfig captures the screen header block, accepted in the raw
// document under either "header" or "header_config".
type HeaderConfig struct {
	Title    string         `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle string         `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	ShowBack *bool          `json:"showBack,omitempty" yaml:"showBack,omitempty"`
	Actions  []Action       `json:"actions,omitempty" yaml:"actions,omitempty"`
	Attrs    map[string]any `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// NavigationConfig captures the screen navigation block, accepted in the raw
// document under either "navigation" or "navigation_config".
type NavigationConfig struct {
	Kind  string           `json:"kind,omitempty" yaml:"kind,omitempty"`
	Items []NavigationItem `json:"items,omitempty" yaml:"items,omitempty"`
	Attrs map[string]any   `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// NavigationItem is one entry of a navigation block.
type NavigationItem struct {
	ID     string `json:"id,omitempty" yaml:"id,omitempty"`
	Label  string `json:"label,omitempty" yaml:"label,omitempty"`
	Icon   string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
}

// LayoutConfig carries optional layout hints for the rendering layer.
type LayoutConfig struct {
	GridColumns int    `json:"gridColumns,omitempty" yaml:"gridColumns,omitempty"`
	Gutter      string `json:"gutter,omitempty" yaml:"gutter,omitempty"`
}

// FormSection groups related fields into a named, navigable unit. Icon has
// been sanitized by the normalizer and is safe to inline.
type FormSection struct {
	ID        string       `json:"id" yaml:"id"`
	Title     string       `json:"title" yaml:"title"`
	Icon      string       `json:"icon,omitempty" yaml:"icon,omitempty"`
	Published *bool        `json:"published,omitempty" yaml:"published,omitempty"`
	Fields    []InputField `json:"fields" yaml:"fields"`
}

// WizardConfig describes a multi-step flow.
type WizardConfig struct {
	Steps []WizardStep `json:"steps" yaml:"steps"`
}

// WizardStep is one ordered step of a wizard. ID, Title and Fields are
// guaranteed non-empty by the validator.
type WizardStep struct {
	ID        string       `json:"id" yaml:"id"`
	Title     string       `json:"title" yaml:"title"`
	Subtitle  string       `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Status    string       `json:"status,omitempty" yaml:"status,omitempty"`
	Skippable *bool        `json:"skippable,omitempty" yaml:"skippable,omitempty"`
	Fields    []InputField `json:"fields" yaml:"fields"`
}

// Component is a shared fragment from the "common_components" table.
// Fragments that declare fields carry them normalized; everything else is
// preserved in Attrs.
type Component struct {
	Title  string         `json:"title,omitempty" yaml:"title,omitempty"`
	Fields []InputField   `json:"fields,omitempty" yaml:"fields,omitempty"`
	Attrs  map[string]any `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// ValidationRule is a named, reusable constraint from the "validations"
// table. Params values are rendered as strings so serialized documents stay
// deterministic regardless of the authored scalar types.
type ValidationRule struct {
	Kind    string            `json:"kind" yaml:"kind"`
	Message string            `json:"message,omitempty" yaml:"message,omitempty"`
	Params  map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}
