package diag_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-viewdef/pkg/diag"
)

func TestDiagnosticString(t *testing.T) {
	cases := map[string]struct {
		diagnostic diag.Diagnostic
		want       string
	}{
		"path and full position": {
			diagnostic: diag.NewAt(diag.KindSchema, "view.home", "screen must be an object", 4, 2),
			want:       `[SCHEMA] at "view.home" (line 4, column 2): screen must be an object`,
		},
		"path only": {
			diagnostic: diag.New(diag.KindMissingRequiredField, "view", `document must declare a "view" collection`),
			want:       `[MISSING_REQUIRED_FIELD] at "view": document must declare a "view" collection`,
		},
		"position only": {
			diagnostic: diag.NewAt(diag.KindSyntax, "", "mapping values are not allowed in this context", 2, 0),
			want:       `[SYNTAX] (line 2, column 0): mapping values are not allowed in this context`,
		},
		"line without column": {
			diagnostic: diag.NewAtLine(diag.KindSyntax, "", "could not find expected ':'", 7),
			want:       `[SYNTAX] (line 7): could not find expected ':'`,
		},
		"neither path nor position": {
			diagnostic: diag.New(diag.KindSchema, "", "document root must be an object"),
			want:       "[SCHEMA]: document root must be an object",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := tc.diagnostic.String(); got != tc.want {
				t.Fatalf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestListFormatPreservesOrder(t *testing.T) {
	var list diag.List
	list.Add(
		diag.New(diag.KindMissingRequiredField, "view.home.title", "screen requires a title"),
		diag.New(diag.KindInvalidValue, "view.home.actions[0].type", `unknown action type "teleport"`),
	)

	got := list.Format()
	want := strings.Join([]string{
		`[MISSING_REQUIRED_FIELD] at "view.home.title": screen requires a title`,
		`[INVALID_VALUE] at "view.home.actions[0].type": unknown action type "teleport"`,
	}, "\n")
	if got != want {
		t.Fatalf("Format() mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestListError(t *testing.T) {
	single := diag.List{diag.New(diag.KindSchema, "view", "view must be an object or an array")}
	if got := single.Error(); got != `[SCHEMA] at "view": view must be an object or an array` {
		t.Fatalf("single Error() = %q", got)
	}

	multi := diag.List{
		diag.New(diag.KindMissingRequiredField, "view.a.fields[0].id", "field requires an id"),
		diag.New(diag.KindMissingRequiredField, "view.a.fields[0].label", "field requires a label"),
	}
	if got := multi.Error(); !strings.HasPrefix(got, "2 problems found:\n") {
		t.Fatalf("multi Error() = %q, want count prefix", got)
	}
}

func TestListOfKind(t *testing.T) {
	list := diag.List{
		diag.New(diag.KindSchema, "view", "a"),
		diag.New(diag.KindInvalidValue, "view.x", "b"),
		diag.New(diag.KindSchema, "validations", "c"),
	}

	got := list.OfKind(diag.KindSchema)
	want := diag.List{
		diag.New(diag.KindSchema, "view", "a"),
		diag.New(diag.KindSchema, "validations", "c"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("OfKind mismatch (-want +got):\n%s", diff)
	}
}

func TestPathHelpers(t *testing.T) {
	if got := diag.JoinPath("", "view"); got != "view" {
		t.Fatalf("JoinPath empty parent = %q", got)
	}
	if got := diag.JoinPath("view.home", "fields"); got != "view.home.fields" {
		t.Fatalf("JoinPath = %q", got)
	}
	if got := diag.IndexPath("view.home.fields", 3); got != "view.home.fields[3]" {
		t.Fatalf("IndexPath = %q", got)
	}
}
