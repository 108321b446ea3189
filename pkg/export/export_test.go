package export_test

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	viewdef "github.com/goliatone/go-viewdef"
	"github.com/goliatone/go-viewdef/pkg/export"
)

const outlineFixture = `
view:
  users:
    title: User list
    fields:
      - id: email
        type: text
        label: Email
        required: true
      - id: role
        type: select
        label: Role
        options: [Admin, Member]
    actions:
      - id: save
        type: submit
        label: Save
      - id: cancel
        type: custom
        label: Cancel
  settings:
    title: Settings
    sections:
      - id: profile
        title: Profile
        fields:
          - id: nickname
            type: text
            label: Nickname
common_components:
  countries:
    title: Countries
    fields:
      - id: code
        type: text
        label: Code
validations:
  max_100:
    kind: max
    message: Too large
`

func parseFixture(t *testing.T) *viewdef.Document {
	t.Helper()
	result := viewdef.Parse(outlineFixture)
	if !result.Success() {
		t.Fatalf("fixture did not parse:\n%s", result.Diagnostics.Format())
	}
	return result.Document
}

func TestOutlineRendersScreensInKeyOrder(t *testing.T) {
	doc := parseFixture(t)

	exporter, err := export.New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	var buf bytes.Buffer
	outline, err := exporter.Outline(doc, &buf)
	if err != nil {
		t.Fatalf("Outline() error: %v", err)
	}
	if outline != buf.String() {
		t.Errorf("Outline() return value and writer output differ")
	}

	for _, want := range []string{
		"# View outline",
		"## Settings (`settings`)",
		"### Profile",
		"- Nickname `text`",
		"## User list (`users`)",
		"- Email `text` (required)",
		"- Role `select`",
		"Actions: Save, Cancel",
		"## Shared components",
		"- Countries (`countries`), 1 field(s)",
		"## Validation rules",
		"- `max_100`: max (Too large)",
	} {
		if !strings.Contains(outline, want) {
			t.Errorf("outline is missing %q:\n%s", want, outline)
		}
	}

	// Sorted screen keys, so settings renders before users.
	if strings.Index(outline, "`settings`") > strings.Index(outline, "`users`") {
		t.Errorf("screens are not in key order:\n%s", outline)
	}
}

func TestRenderStringExposesSlugFilter(t *testing.T) {
	doc := parseFixture(t)

	exporter, err := export.New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	out, err := exporter.RenderString(`{{ "User List"|slug }}`, doc)
	if err != nil {
		t.Fatalf("RenderString() error: %v", err)
	}
	if out != "user_list" {
		t.Errorf("slug filter produced %q, want %q", out, "user_list")
	}
}

func TestRenderUsesCallerTemplates(t *testing.T) {
	doc := parseFixture(t)

	files := fstest.MapFS{
		"keys.txt.tpl": &fstest.MapFile{
			Data: []byte(`{% for screen in screens %}{{ screen.key }};{% endfor %}`),
		},
	}
	exporter, err := export.New(export.WithTemplates(files))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	out, err := exporter.Render("keys.txt", doc)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if out != "settings;users;" {
		t.Errorf("Render() = %q, want %q", out, "settings;users;")
	}
}

func TestRenderUnknownTemplateFails(t *testing.T) {
	doc := parseFixture(t)

	exporter, err := export.New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if _, err := exporter.Render("missing", doc); err == nil {
		t.Fatalf("Render() succeeded for a template that does not exist")
	}
}

func TestRenderNilDocumentFails(t *testing.T) {
	exporter, err := export.New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, err := exporter.Outline(nil); err == nil {
		t.Fatalf("Outline() accepted a nil document")
	}
}
