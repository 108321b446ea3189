// Package diag defines the diagnostic values produced while parsing screen
// definition documents. Every stage of the pipeline reports problems as
// Diagnostic values collected into a List instead of aborting on the first
// failure, so authors see all fixable issues in one pass. Positions are
// zero-based and only present when the underlying failure carries them,
// which in practice means syntax errors reported by the YAML decoder.
package diag

import (
	"fmt"
	"strings"
)

// Kind classifies a diagnostic.
type Kind string

const (
	// KindSyntax marks a document that could not be deserialized at all.
	// A failed parse carries exactly one of these.
	KindSyntax Kind = "SYNTAX"
	// KindSchema marks a document whose root is not an object.
	KindSchema Kind = "SCHEMA"
	// KindMissingRequiredField marks a required attribute that is absent.
	// The diagnostic is reported at the path of the node lacking the
	// attribute, with the message naming what is missing.
	KindMissingRequiredField Kind = "MISSING_REQUIRED_FIELD"
	// KindInvalidFieldType marks a discriminator outside its fixed enum,
	// such as an action type the pipeline does not know.
	KindInvalidFieldType Kind = "INVALID_FIELD_TYPE"
	// KindInvalidValue marks a node of the wrong shape, such as a scalar
	// where an object or array is required.
	KindInvalidValue Kind = "INVALID_VALUE"
)

// Diagnostic describes a single problem found in a source document. Path is
// a dot/bracket path from the document root (for example
// "view.home.fields[0]") and is empty for failures that precede any
// structure, such as syntax errors. Line and Column are zero-based source
// positions, nil when unavailable.
type Diagnostic struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
	Line    *int   `json:"line,omitempty"`
	Column  *int   `json:"column,omitempty"`
}

// New returns a diagnostic without position information.
func New(kind Kind, path, message string) Diagnostic {
	return Diagnostic{Kind: kind, Path: path, Message: message}
}

// Newf returns a diagnostic without position information, formatting the
// message with fmt.Sprintf.
func Newf(kind Kind, path, format string, args ...any) Diagnostic {
	return Diagnostic{Kind: kind, Path: path, Message: fmt.Sprintf(format, args...)}
}

// NewAt returns a diagnostic annotated with a zero-based source position.
func NewAt(kind Kind, path, message string, line, column int) Diagnostic {
	return Diagnostic{Kind: kind, Path: path, Message: message, Line: &line, Column: &column}
}

// NewAtLine returns a diagnostic annotated with a zero-based line only, for
// decoders that report the line but not the column.
func NewAtLine(kind Kind, path, message string, line int) Diagnostic {
	return Diagnostic{Kind: kind, Path: path, Message: message, Line: &line}
}

// String renders the diagnostic in the canonical single-line report form:
//
//	[KIND] at "<path>" (line N, column M): <message>
//
// The path clause is omitted when the diagnostic has no path and the
// location clause is omitted (or reduced to the line) when position
// information is unavailable.
func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(string(d.Kind))
	b.WriteString("]")
	if d.Path != "" {
		b.WriteString(` at "`)
		b.WriteString(d.Path)
		b.WriteString(`"`)
	}
	if d.Line != nil {
		if d.Column != nil {
			fmt.Fprintf(&b, " (line %d, column %d)", *d.Line, *d.Column)
		} else {
			fmt.Fprintf(&b, " (line %d)", *d.Line)
		}
	}
	b.WriteString(": ")
	b.WriteString(d.Message)
	return b.String()
}

// List is an ordered collection of diagnostics in discovery order. The zero
// value is ready to append to. List implements error so entry points that
// return (document, error) can surface a failed parse directly.
type List []Diagnostic

// Add appends diagnostics to the list.
func (l *List) Add(diagnostics ...Diagnostic) {
	*l = append(*l, diagnostics...)
}

// HasErrors reports whether the list contains at least one diagnostic.
func (l List) HasErrors() bool {
	return len(l) > 0
}

// OfKind returns the diagnostics matching kind, preserving order.
func (l List) OfKind(kind Kind) List {
	var out List
	for _, d := range l {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Format renders the list as a newline-separated report, one diagnostic per
// line, in discovery order.
func (l List) Format() string {
	if len(l) == 0 {
		return ""
	}
	lines := make([]string, 0, len(l))
	for _, d := range l {
		lines = append(lines, d.String())
	}
	return strings.Join(lines, "\n")
}

// Error implements the error interface.
func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no diagnostics"
	case 1:
		return l[0].String()
	default:
		return fmt.Sprintf("%d problems found:\n%s", len(l), l.Format())
	}
}
