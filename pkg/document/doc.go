// Package document defines the canonical screen-definition model produced by
// the parsing pipeline. A Document maps safe screen keys to ScreenDefinition
// values whose sections, fields, actions and wizard steps have already been
// normalized: authoring aliases are resolved, legacy shorthands are expanded,
// and every field is a tagged variant discriminated by FieldType with only
// the attributes meaningful to that variant populated. Field types outside
// the known set survive as a fallback variant whose raw attributes are kept
// verbatim in Attrs, so renderers can show a placeholder instead of failing.
// Values are treated as immutable once produced; the lookup helpers are safe
// for concurrent readers.
package document
