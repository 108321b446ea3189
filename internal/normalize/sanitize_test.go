package normalize

import (
	"strings"
	"testing"
)

func TestSanitizeIconPassesPlainNames(t *testing.T) {
	for _, name := range []string{"home", "chevron-right", "mdi:account", ""} {
		if got := sanitizeIcon(name); got != name {
			t.Fatalf("sanitizeIcon(%q) = %q, want unchanged", name, got)
		}
	}
	if got := sanitizeIcon("  home  "); got != "home" {
		t.Fatalf("sanitizeIcon trims whitespace, got %q", got)
	}
}

func TestSanitizeIconStripsScriptableMarkup(t *testing.T) {
	input := `<svg viewBox="0 0 24 24" onclick="alert('x')"><script>alert('x')</script><path d="M0 0h24v24H0z"/></svg>`
	got := sanitizeIcon(input)
	if got == "" {
		t.Fatalf("expected sanitized markup, got empty string")
	}
	if strings.Contains(got, "script") || strings.Contains(got, "onclick") {
		t.Fatalf("expected scriptable content to be removed, got %q", got)
	}
	if !strings.Contains(got, "<svg") || !strings.Contains(got, "<path") {
		t.Fatalf("expected svg/path elements to remain, got %q", got)
	}
}
