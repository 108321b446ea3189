// Package rawdoc classifies the untyped tree before validation and
// normalization run. The document grammar allows each top-level collection
// (view, common_components, validations) to be authored either as an object
// keyed by name or as a legacy array of self-naming entries; rawdoc resolves
// that duality into an explicit two-variant Collection exactly once, so the
// downstream walks never re-test a collection's shape and cannot drift apart
// in how they read it.
package rawdoc

import (
	"github.com/goliatone/go-viewdef/pkg/diag"
)

// Raw document keys resolved by Classify. The companion tables are also
// accepted under their serialized camelCase names so a canonical document
// classifies the same way an authored one does.
const (
	KeyView        = "view"
	KeyComponents  = "common_components"
	KeyValidations = "validations"

	keyComponentsAlias  = "commonComponents"
	keyValidationsAlias = "validationRules"
)

// Shape is the resolved authoring shape of one collection.
type Shape int

const (
	// ShapeAbsent marks a collection the document does not declare.
	ShapeAbsent Shape = iota
	// ShapeKeyed marks an object keyed by name.
	ShapeKeyed
	// ShapeEntries marks the legacy array of self-naming entries.
	ShapeEntries
	// ShapeInvalid marks a declared collection of the wrong shape. A
	// diagnostic has already been emitted for it.
	ShapeInvalid
)

// Collection is one classified top-level table. Keyed is set for
// ShapeKeyed, Entries for ShapeEntries; both are nil otherwise.
type Collection struct {
	Shape   Shape
	Keyed   map[string]any
	Entries []any
}

// Declared reports whether the document authored the collection at all.
func (c Collection) Declared() bool {
	return c.Shape != ShapeAbsent
}

// Document is the classified raw tree handed to the validator and the
// normalizer.
type Document struct {
	View        Collection
	Components  Collection
	Validations Collection
}

// Classify resolves the authoring shape of the top-level collections and
// reports every shape problem visible at this level: a root that is not an
// object (SCHEMA), a missing view (MISSING_REQUIRED_FIELD at the document
// root), and declared collections that are neither objects nor arrays
// (INVALID_VALUE). A nil Document is returned only for the SCHEMA case,
// where no further walking is possible.
func Classify(tree any) (*Document, diag.List) {
	var diagnostics diag.List

	root, ok := ToMap(tree)
	if !ok {
		diagnostics.Add(diag.New(diag.KindSchema, "", "document root must be an object"))
		return nil, diagnostics
	}

	doc := &Document{}

	if value, declared := root[KeyView]; declared {
		doc.View = classifyCollection(value, KeyView, &diagnostics)
	} else {
		diagnostics.Add(diag.New(diag.KindMissingRequiredField, "", `document must declare a "view" collection`))
	}
	if value, key, declared := aliased(root, KeyComponents, keyComponentsAlias); declared {
		doc.Components = classifyCollection(value, key, &diagnostics)
	}
	if value, key, declared := aliased(root, KeyValidations, keyValidationsAlias); declared {
		doc.Validations = classifyCollection(value, key, &diagnostics)
	}

	return doc, diagnostics
}

func aliased(root map[string]any, keys ...string) (any, string, bool) {
	for _, key := range keys {
		if value, declared := root[key]; declared {
			return value, key, true
		}
	}
	return nil, "", false
}

func classifyCollection(value any, key string, diagnostics *diag.List) Collection {
	if keyed, ok := ToMap(value); ok {
		return Collection{Shape: ShapeKeyed, Keyed: keyed}
	}
	if entries, ok := ToSlice(value); ok {
		return Collection{Shape: ShapeEntries, Entries: entries}
	}
	diagnostics.Add(diag.Newf(diag.KindInvalidValue, key, "%q must be an object or an array", key))
	return Collection{Shape: ShapeInvalid}
}
