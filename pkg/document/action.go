package document

// ActionType discriminates the Action variants. Unlike field types the set
// is strict: the validator rejects tags outside it.
type ActionType string

const (
	ActionSubmit   ActionType = "submit"
	ActionNavigate ActionType = "navigate"
	ActionCustom   ActionType = "custom"
	ActionReset    ActionType = "reset"
)

// Action is one call-to-action of a screen, header or table row. Target is
// set for navigate actions; Endpoint and Method only appear on submit
// actions that declare them.
type Action struct {
	ID       string         `json:"id" yaml:"id"`
	Type     ActionType     `json:"type" yaml:"type"`
	Label    string         `json:"label" yaml:"label"`
	Style    string         `json:"style,omitempty" yaml:"style,omitempty"`
	Icon     string         `json:"icon,omitempty" yaml:"icon,omitempty"`
	Target   string         `json:"target,omitempty" yaml:"target,omitempty"`
	Endpoint string         `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Method   string         `json:"method,omitempty" yaml:"method,omitempty"`
	Confirm  string         `json:"confirm,omitempty" yaml:"confirm,omitempty"`
	Attrs    map[string]any `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// Action style identifiers assigned when expanding the plain-string actions
// shorthand: the first synthesized action is primary, the rest secondary.
const (
	ActionStylePrimary   = "primary"
	ActionStyleSecondary = "secondary"
	ActionStyleDanger    = "danger"
)
