package normalize_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-viewdef/internal/normalize"
	"github.com/goliatone/go-viewdef/internal/rawdoc"
	"github.com/goliatone/go-viewdef/internal/rawyaml"
	"github.com/goliatone/go-viewdef/internal/structure"
	"github.com/goliatone/go-viewdef/pkg/document"
)

// normalizeText runs the full deserialize/classify/validate sequence and
// fails the test on any diagnostic, so every fixture here honours the
// precondition that normalization only sees valid documents.
func normalizeText(t *testing.T, text string) *document.Document {
	t.Helper()
	tree, d := rawyaml.Decode([]byte(text))
	if d != nil {
		t.Fatalf("decode failed: %s", d)
	}
	raw, diagnostics := rawdoc.Classify(tree)
	diagnostics.Add(structure.Validate(raw)...)
	if diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", diagnostics.Format())
	}
	return normalize.Normalize(raw)
}

func fieldIDs(screen document.ScreenDefinition) []string {
	return fieldIDsOf(screen.Fields)
}

func fieldIDsOf(fields []document.InputField) []string {
	ids := make([]string, 0, len(fields))
	for _, field := range fields {
		ids = append(ids, field.ID)
	}
	return ids
}

func intp(v int) *int { return &v }

func boolp(v bool) *bool { return &v }

func floatp(v float64) *float64 { return &v }

func TestNormalizeKeyedView(t *testing.T) {
	doc := normalizeText(t, "view:\n  home:\n    title: Welcome\n")

	home, ok := doc.Screens["home"]
	if !ok {
		t.Fatalf("screens = %v, want key %q", doc.Screens, "home")
	}
	if home.Title != "Welcome" {
		t.Fatalf("title = %q, want %q", home.Title, "Welcome")
	}
	if home.Fields == nil {
		t.Fatalf("fields must always be initialized")
	}
	if len(home.Fields) != 0 {
		t.Fatalf("fields = %v, want empty", home.Fields)
	}
}

func TestNormalizeArrayViewDerivesSlugKeys(t *testing.T) {
	doc := normalizeText(t, `
view:
  - name: User List
    fields:
      - {id: q, type: text, label: Query}
  - title: 設定（管理者）
`)

	if len(doc.Screens) != 2 {
		t.Fatalf("screens = %d, want 2", len(doc.Screens))
	}
	users, ok := doc.Screens["user_list"]
	if !ok {
		t.Fatalf("missing key user_list, have %v", keysOf(doc.Screens))
	}
	if users.Title != "User List" {
		t.Fatalf("title = %q, want the original name", users.Title)
	}
	settings, ok := doc.Screens["設定管理者"]
	if !ok {
		t.Fatalf("missing key 設定管理者, have %v", keysOf(doc.Screens))
	}
	if settings.Title != "設定（管理者）" {
		t.Fatalf("title = %q, want the unstripped original", settings.Title)
	}
}

func keysOf(screens map[string]document.ScreenDefinition) []string {
	keys := make([]string, 0, len(screens))
	for key := range screens {
		keys = append(keys, key)
	}
	return keys
}

func TestNormalizeSlugCollisionKeepsBothScreens(t *testing.T) {
	doc := normalizeText(t, `
view:
  - name: A Screen!
    description: first
  - name: A Screen!
    description: second
`)

	first, ok := doc.Screens["a_screen"]
	if !ok {
		t.Fatalf("missing key a_screen, have %v", keysOf(doc.Screens))
	}
	second, ok := doc.Screens["a_screen_2"]
	if !ok {
		t.Fatalf("missing key a_screen_2, have %v", keysOf(doc.Screens))
	}
	if first.Description != "first" || second.Description != "second" {
		t.Fatalf("descriptions = %q/%q, want first/second", first.Description, second.Description)
	}
}

func TestNormalizeUnnamedEntriesFallBackToIndexKeys(t *testing.T) {
	doc := normalizeText(t, "view:\n  - name: \"!!!\"\n  - name: \"***\"\n")

	for _, key := range []string{"screen_0", "screen_1"} {
		if _, ok := doc.Screens[key]; !ok {
			t.Fatalf("missing key %s, have %v", key, keysOf(doc.Screens))
		}
	}
}

func TestNormalizeScreenContentPrecedence(t *testing.T) {
	doc := normalizeText(t, `
view:
  sectioned:
    title: Sectioned
    sections:
      - title: Basics
        fields:
          - {id: a, type: text, label: A}
    fields:
      - {id: shadowed, type: text, label: Shadowed}
    display_fields: [X]
  fielded:
    title: Fielded
    fields:
      - {id: b, type: text, label: B}
    display_fields: [Y]
  legacy:
    title: Legacy
    input_fields:
      - {id: c, type: text, label: C}
`)

	sectioned := doc.Screens["sectioned"]
	if len(sectioned.Sections) != 1 || sectioned.Sections[0].ID != "basics" {
		t.Fatalf("sections = %+v, want one section with id basics", sectioned.Sections)
	}
	if diff := cmp.Diff([]string{"a"}, fieldIDs(sectioned)); diff != "" {
		t.Fatalf("sectioned fields should flatten the sections (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b"}, fieldIDs(doc.Screens["fielded"])); diff != "" {
		t.Fatalf("fields should win over display_fields (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"c"}, fieldIDs(doc.Screens["legacy"])); diff != "" {
		t.Fatalf("input_fields should be the final fallback (-want +got):\n%s", diff)
	}
}

func TestNormalizeDisplayFieldsShorthand(t *testing.T) {
	doc := normalizeText(t, `
view:
  records:
    title: Records
    display_fields: [Name, Status]
`)

	screen := doc.Screens["records"]
	if len(screen.Fields) != 1 {
		t.Fatalf("fields = %d, want exactly one synthesized table", len(screen.Fields))
	}
	want := document.InputField{
		ID:    "records_table",
		Type:  document.FieldDataTable,
		Label: "Records",
		Table: &document.DataTableConfig{
			Columns: []document.TableColumn{
				{Key: "name", Label: "Name"},
				{Key: "status", Label: "Status"},
			},
			RowsPerPage:     10,
			PageSizeOptions: []int{10, 25, 50, 100},
			EmptyMessage:    "No records found",
		},
	}
	if diff := cmp.Diff(want, screen.Fields[0]); diff != "" {
		t.Fatalf("synthesized table mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeFiltersAndSearchKeyword(t *testing.T) {
	doc := normalizeText(t, `
view:
  records:
    title: Records
    display_fields: [Name]
    filters: [Region, Search, Status]
`)

	table := doc.Screens["records"].Fields[0].Table
	if table == nil {
		t.Fatalf("expected a synthesized data_table")
	}
	if !table.ShowSearch {
		t.Fatalf("the search keyword should toggle ShowSearch")
	}
	want := []document.TableFilter{
		{Field: "region", Label: "Region"},
		{Field: "status", Label: "Status"},
	}
	if diff := cmp.Diff(want, table.Filters); diff != "" {
		t.Fatalf("filters mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeStringOptions(t *testing.T) {
	doc := normalizeText(t, `
view:
  f:
    title: F
    fields:
      - id: color
        type: radio_group
        label: Color
        options: [Red, Green, {value: "#00f", label: Blue}]
`)

	want := []document.Option{
		{Value: "Red", Label: "Red"},
		{Value: "Green", Label: "Green"},
		{Value: "#00f", Label: "Blue"},
	}
	if diff := cmp.Diff(want, doc.Screens["f"].Fields[0].Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeActionShorthand(t *testing.T) {
	doc := normalizeText(t, `
view:
  form:
    title: Form
    fields:
      - {id: q, type: text, label: Q}
    actions:
      - Save
      - Cancel
      - {id: del, type: custom, label: Delete, style: danger, confirm: "Sure?"}
`)

	want := []document.Action{
		{ID: "action_1", Type: document.ActionSubmit, Label: "Save", Style: "primary"},
		{ID: "action_2", Type: document.ActionSubmit, Label: "Cancel", Style: "secondary"},
		{ID: "del", Type: document.ActionCustom, Label: "Delete", Style: "danger", Confirm: "Sure?"},
	}
	if diff := cmp.Diff(want, doc.Screens["form"].Actions); diff != "" {
		t.Fatalf("actions mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeFieldFamilies(t *testing.T) {
	doc := normalizeText(t, `
view:
  profile:
    title: Profile
    fields:
      - id: avatar
        type: image_upload
        label: Avatar
        help_text: Square images look best
        read_only: true
        accepted_file_types: "image/png, image/jpeg"
        max_files: 1
      - id: docs
        type: file_upload
        label: Documents
        accept: [application/pdf]
      - id: active
        type: toggle
        label: Active
        on_label: Enabled
        off_label: Disabled
      - id: stars
        type: rating
        label: Stars
      - id: volume
        type: slider
        label: Volume
        min: 0
        max: 1
        step: 0.1
      - id: starts
        type: date
        label: Starts
        min_date: "2024-01-01"
        rules: [required]
`)

	want := []document.InputField{
		{
			ID: "avatar", Type: document.FieldImageUpload, Label: "Avatar",
			HelpText: "Square images look best", ReadOnly: true,
			Upload: &document.UploadConfig{
				Accept:   []string{"image/png", "image/jpeg"},
				MaxFiles: intp(1),
			},
		},
		{
			ID: "docs", Type: document.FieldFileUpload, Label: "Documents",
			Upload: &document.UploadConfig{Accept: []string{"application/pdf"}},
		},
		{
			ID: "active", Type: document.FieldToggle, Label: "Active",
			Toggle: &document.ToggleConfig{OnLabel: "Enabled", OffLabel: "Disabled"},
		},
		{
			ID: "stars", Type: document.FieldRating, Label: "Stars",
			Rating: &document.RatingConfig{Max: 5},
		},
		{
			ID: "volume", Type: document.FieldSlider, Label: "Volume",
			Number: &document.NumberConfig{Min: floatp(0), Max: floatp(1), Step: floatp(0.1)},
		},
		{
			ID: "starts", Type: document.FieldDate, Label: "Starts",
			DateTime: &document.DateTimeConfig{Min: "2024-01-01"},
			Rules:    []string{"required"},
		},
	}
	if diff := cmp.Diff(want, doc.Screens["profile"].Fields); diff != "" {
		t.Fatalf("field families mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeRepeater(t *testing.T) {
	doc := normalizeText(t, `
view:
  form:
    title: Form
    fields:
      - id: contacts
        type: repeater
        label: Contacts
        item_fields:
          - id: kind
            type: select
            label: Kind
            options: [Phone, Email]
        max_items: 5
        add_label: Add contact
`)

	repeater := doc.Screens["form"].Fields[0].Repeater
	if repeater == nil {
		t.Fatalf("expected a repeater config")
	}
	want := &document.RepeaterConfig{
		ItemFields: []document.InputField{{
			ID: "kind", Type: document.FieldSelect, Label: "Kind",
			Options: []document.Option{{Value: "Phone", Label: "Phone"}, {Value: "Email", Label: "Email"}},
		}},
		MaxItems: intp(5),
		AddLabel: "Add contact",
	}
	if diff := cmp.Diff(want, repeater); diff != "" {
		t.Fatalf("repeater mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeUnknownTypePreservesAttributes(t *testing.T) {
	doc := normalizeText(t, `
view:
  lab:
    title: Lab
    fields:
      - id: holo
        type: hologram_3d
        label: Holo
        depth: 4
        shader: phong
`)

	field := doc.Screens["lab"].Fields[0]
	if !field.Unknown {
		t.Fatalf("unrecognized type should set Unknown")
	}
	if field.Type != "hologram_3d" {
		t.Fatalf("type = %q, want the original tag", field.Type)
	}
	wantAttrs := map[string]any{"depth": 4, "shader": "phong"}
	if diff := cmp.Diff(wantAttrs, field.Attrs); diff != "" {
		t.Fatalf("attrs mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeWizardHeaderNavigation(t *testing.T) {
	doc := normalizeText(t, `
view:
  setup:
    title: Setup
    header:
      title: Getting started
      show_back: true
    navigation_config:
      type: tabs
      items:
        - {label: Home, to: /home}
    wizard:
      steps:
        - id: basics
          title: Basics
          optional: true
          fields:
            - {id: email, type: email, label: Email}
`)

	screen := doc.Screens["setup"]
	wantHeader := &document.HeaderConfig{Title: "Getting started", ShowBack: boolp(true)}
	if diff := cmp.Diff(wantHeader, screen.Header); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}
	wantNav := &document.NavigationConfig{
		Kind:  "tabs",
		Items: []document.NavigationItem{{ID: "home", Label: "Home", Target: "/home"}},
	}
	if diff := cmp.Diff(wantNav, screen.Navigation); diff != "" {
		t.Fatalf("navigation mismatch (-want +got):\n%s", diff)
	}
	if screen.Wizard == nil || len(screen.Wizard.Steps) != 1 {
		t.Fatalf("wizard = %+v, want one step", screen.Wizard)
	}
	step := screen.Wizard.Steps[0]
	if step.ID != "basics" || step.Title != "Basics" {
		t.Fatalf("step = %+v, want id basics title Basics", step)
	}
	if step.Skippable == nil || !*step.Skippable {
		t.Fatalf("optional alias should set Skippable")
	}
	if diff := cmp.Diff([]string{"email"}, fieldIDsOf(step.Fields)); diff != "" {
		t.Fatalf("step fields mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeComponentsAndRules(t *testing.T) {
	doc := normalizeText(t, `
view:
  home:
    title: Home
common_components:
  - name: Region List
    fields:
      - {id: region, type: text, label: Region}
  - title: Countries
validations:
  - name: Max 100
    type: range
    max: 100
    message: Too large
`)

	regions, ok := doc.Components["region_list"]
	if !ok {
		t.Fatalf("missing component region_list, have %v", doc.Components)
	}
	if regions.Title != "Region List" || len(regions.Fields) != 1 {
		t.Fatalf("component = %+v, want title and one field", regions)
	}
	if _, ok := doc.Components["countries"]; !ok {
		t.Fatalf("missing component countries, have %v", doc.Components)
	}

	rule, ok := doc.Rules["max_100"]
	if !ok {
		t.Fatalf("missing rule max_100, have %v", doc.Rules)
	}
	want := document.ValidationRule{
		Kind:    "range",
		Message: "Too large",
		Params:  map[string]string{"max": "100"},
	}
	if diff := cmp.Diff(want, rule); diff != "" {
		t.Fatalf("rule mismatch (-want +got):\n%s", diff)
	}
}

// TestNormalizeRoundTrip feeds the serialized canonical document back
// through the whole pipeline and requires the second pass to change
// nothing. This is the property that keeps legacy and canonical documents
// interchangeable.
func TestNormalizeRoundTrip(t *testing.T) {
	authored := `
view:
  - name: User List
    description: All users
    display_fields: [Name, Status]
    filters: [Region, search]
    actions: [Save, Cancel]
  - name: User List
    fields:
      - id: role
        type: select
        label: Role
        options: [Admin, Member]
      - id: country
        type: select
        label: Country
        options: region_list
      - id: contacts
        type: repeater
        label: Contacts
        item_fields:
          - {id: phone, type: tel, label: Phone}
        min_items: 1
      - id: holo
        type: hologram_3d
        label: Holo
        depth: 4
  - title: Wizard Screen
    header_config:
      title: Setup
      show_back: true
    navigation_config:
      kind: tabs
      items:
        - {id: home, label: Home, target: /home}
    wizard:
      steps:
        - id: step_1
          title: Basics
          fields:
            - id: email
              type: email
              label: Email
              max_length: 120
  - name: Sectioned
    sections:
      - title: Basics
        fields:
          - {id: first_name, type: text, label: First name}
      - id: meta
        title: Meta
        published: false
        fields:
          - id: tags
            type: multi_select
            label: Tags
            options: [a, b]
common_components:
  - name: Region List
    fields:
      - {id: region, type: text, label: Region}
validations:
  - name: Max 100
    type: range
    max: 100
    message: Too large
`
	first := normalizeText(t, authored)

	serialized, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal canonical document: %v", err)
	}

	second := normalizeText(t, string(serialized))
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("canonical document changed across a re-parse (-first +second):\n%s", diff)
	}
}
