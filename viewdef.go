// Package viewdef parses YAML view definitions into a validated, canonical
// document model. Parse runs the full pipeline: deserialize, collect every
// structural diagnostic, and only normalize documents with none.
package viewdef

import (
	"github.com/goliatone/go-viewdef/internal/normalize"
	"github.com/goliatone/go-viewdef/internal/rawdoc"
	"github.com/goliatone/go-viewdef/internal/rawyaml"
	"github.com/goliatone/go-viewdef/internal/structure"
	"github.com/goliatone/go-viewdef/pkg/diag"
	"github.com/goliatone/go-viewdef/pkg/document"
)

// Aliases exported via the root package so most consumers only import it.
type (
	Document         = document.Document
	ScreenDefinition = document.ScreenDefinition
	InputField       = document.InputField
	Action           = document.Action
	Diagnostic       = diag.Diagnostic
	Diagnostics      = diag.List
)

// Result is the discriminated outcome of a parse: either a canonical
// document or the batched diagnostics explaining why there is none. A
// failed parse never panics and never returns a partial document.
type Result struct {
	Document    *document.Document `json:"document,omitempty"`
	Diagnostics diag.List          `json:"diagnostics,omitempty"`
}

// Success reports whether the parse produced a canonical document.
func (r Result) Success() bool {
	return r.Document != nil && !r.Diagnostics.HasErrors()
}

// Err returns the diagnostics as a single error, nil on success.
func (r Result) Err() error {
	if r.Success() {
		return nil
	}
	return r.Diagnostics
}

// Parse runs the pipeline over document text.
func Parse(text string) Result {
	return ParseBytes([]byte(text))
}

// ParseBytes runs the pipeline over raw document bytes.
func ParseBytes(data []byte) Result {
	tree, syntax := rawyaml.Decode(data)
	if syntax != nil {
		return Result{Diagnostics: diag.List{*syntax}}
	}
	return ParseTree(tree)
}

// ParseDocument is the error-shaped convenience form of Parse: it returns
// the canonical document, or the diagnostic list as the error.
func ParseDocument(text string) (*Document, error) {
	result := Parse(text)
	if err := result.Err(); err != nil {
		return nil, err
	}
	return result.Document, nil
}

// ParseTree runs classification, validation and normalization over an
// already-deserialized tree. Callers that received the document through a
// JSON body or another decoder can skip the YAML stage this way.
func ParseTree(tree any) Result {
	raw, diagnostics := rawdoc.Classify(tree)
	if raw == nil {
		return Result{Diagnostics: diagnostics}
	}
	diagnostics.Add(structure.Validate(raw)...)
	if diagnostics.HasErrors() {
		return Result{Diagnostics: diagnostics}
	}
	return Result{Document: normalize.Normalize(raw)}
}

// SafeKey derives the deterministic slug used to key screens synthesized
// from the legacy array form. Exposed so consumers can look screens up by
// their human-readable names.
func SafeKey(name string) string {
	return normalize.ToSafeKey(name)
}

// FindScreen resolves a screen by canonical key first and by the slug of
// the given name second.
func FindScreen(doc *Document, name string) (ScreenDefinition, bool) {
	if screen, ok := doc.Screen(name); ok {
		return screen, true
	}
	return doc.Screen(SafeKey(name))
}
