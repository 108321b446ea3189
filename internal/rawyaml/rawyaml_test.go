package rawyaml_test

import (
	"testing"

	"github.com/goliatone/go-viewdef/internal/rawyaml"
	"github.com/goliatone/go-viewdef/pkg/diag"
)

func TestDecodeValidDocument(t *testing.T) {
	tree, d := rawyaml.Decode([]byte("view:\n  home:\n    title: Welcome\n"))
	if d != nil {
		t.Fatalf("unexpected diagnostic: %s", d)
	}

	root, ok := tree.(map[string]any)
	if !ok {
		t.Fatalf("root = %T, want map", tree)
	}
	view, ok := root["view"].(map[string]any)
	if !ok {
		t.Fatalf("view = %T, want map", root["view"])
	}
	home, ok := view["home"].(map[string]any)
	if !ok || home["title"] != "Welcome" {
		t.Fatalf("home = %#v", view["home"])
	}
}

func TestDecodeEmptyDocument(t *testing.T) {
	tree, d := rawyaml.Decode(nil)
	if d != nil {
		t.Fatalf("unexpected diagnostic: %s", d)
	}
	if tree != nil {
		t.Fatalf("tree = %#v, want nil", tree)
	}
}

func TestDecodeSyntaxFailure(t *testing.T) {
	cases := map[string]struct {
		input    string
		wantLine int
	}{
		"tab indentation": {
			input:    "view:\n\thome: {}\n",
			wantLine: 1,
		},
		"mapping value in flow context": {
			input:    "view: home: dashboard\n",
			wantLine: 0,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			tree, d := rawyaml.Decode([]byte(tc.input))
			if tree != nil {
				t.Fatalf("tree = %#v, want nil on failure", tree)
			}
			if d == nil {
				t.Fatalf("expected a diagnostic")
			}
			if d.Kind != diag.KindSyntax {
				t.Fatalf("kind = %s, want SYNTAX", d.Kind)
			}
			if d.Path != "" {
				t.Fatalf("path = %q, want empty", d.Path)
			}
			if d.Line == nil {
				t.Fatalf("expected a line position")
			}
			if *d.Line != tc.wantLine {
				t.Fatalf("line = %d, want %d (zero-based)", *d.Line, tc.wantLine)
			}
			if d.Message == "" {
				t.Fatalf("expected a message")
			}
		})
	}
}
