// Package openapi derives canonical view documents from OpenAPI 3
// descriptions. Every operation that accepts a request body becomes one
// screen whose fields mirror the body schema, so an existing API surface
// can seed an editable document instead of starting from a blank page.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-viewdef/internal/normalize"
	"github.com/goliatone/go-viewdef/pkg/document"
)

// bodyMethods are the HTTP methods whose operations are expected to carry
// a request body, in the order screens are derived for a single path.
var bodyMethods = []string{"POST", "PUT", "PATCH"}

// preferredMedia lists the request content types considered, most specific
// first. Anything else is picked up in lexical order as a fallback.
var preferredMedia = []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"}

const maxSchemaDepth = 32

// Options tunes the conversion.
type Options struct {
	// ResolveReferences validates the description so external $ref targets
	// are materialized before screens are derived. Internal references are
	// always resolved.
	ResolveReferences bool
	// Labeler turns property and operation names into field and screen
	// labels. Defaults to DefaultLabeler.
	Labeler func(string) string
}

// Convert parses an OpenAPI 3 description and derives one screen per
// body-accepting operation. Screen keys are slugs of the operation id,
// falling back to method plus path; duplicates get numeric suffixes in
// derivation order.
func Convert(ctx context.Context, data []byte, options Options) (*document.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	if options.Labeler == nil {
		options.Labeler = DefaultLabeler
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: options.ResolveReferences,
	}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load description: %w", err)
	}
	if options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate description: %w", err)
		}
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi: description does not contain any paths")
	}

	items := spec.Paths.Map()
	paths := make([]string, 0, len(items))
	for path := range items {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	conv := &converter{labeler: options.Labeler}
	screens := make(map[string]document.ScreenDefinition)
	used := make(map[string]struct{})
	for _, path := range paths {
		item := items[path]
		if item == nil {
			continue
		}
		for _, method := range bodyMethods {
			operation := operationFor(item, method)
			if operation == nil {
				continue
			}
			schema := requestSchema(operation.RequestBody)
			if schema == nil || len(schema.Properties) == 0 {
				continue
			}
			key := screenKey(used, operation.OperationID, method, path)
			screens[key] = conv.screen(operation, method, path, schema)
		}
	}

	if len(screens) == 0 {
		return nil, errors.New("openapi: no operation accepts a request body")
	}
	return &document.Document{Screens: screens}, nil
}

func operationFor(item *openapi3.PathItem, method string) *openapi3.Operation {
	switch method {
	case "POST":
		return item.Post
	case "PUT":
		return item.Put
	case "PATCH":
		return item.Patch
	default:
		return nil
	}
}

// requestSchema picks the body schema of the preferred media type.
func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range preferredMedia {
		if mt, ok := content[mediaType]; ok {
			return schemaOf(mt.Schema)
		}
	}
	names := make([]string, 0, len(content))
	for name := range content {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if schema := schemaOf(content[name].Schema); schema != nil {
			return schema
		}
	}
	return nil
}

func schemaOf(ref *openapi3.SchemaRef) *openapi3.Schema {
	if ref == nil {
		return nil
	}
	return ref.Value
}

// screenKey slugs the operation id, or method plus path when the id is
// absent. Keys always go through the default labeler so they stay stable
// regardless of the label option.
func screenKey(used map[string]struct{}, operationID, method, path string) string {
	name := operationID
	if name == "" {
		name = strings.ToLower(method) + " " + path
	}
	base := normalize.ToSafeKey(DefaultLabeler(name))
	if base == "" {
		base = strings.ToLower(method)
	}
	if _, taken := used[base]; !taken {
		used[base] = struct{}{}
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d", base, i)
		if _, taken := used[candidate]; !taken {
			used[candidate] = struct{}{}
			return candidate
		}
	}
}

type converter struct {
	labeler func(string) string
}

func (c *converter) screen(operation *openapi3.Operation, method, path string, schema *openapi3.Schema) document.ScreenDefinition {
	title := strings.TrimSpace(operation.Summary)
	if title == "" {
		title = c.labeler(operation.OperationID)
	}
	if title == "" {
		// Keyed screens must carry a title to stay canonical.
		title = method + " " + path
	}
	return document.ScreenDefinition{
		Title:       title,
		Description: strings.TrimSpace(operation.Description),
		Fields:      c.fields(schema, 0),
		Actions: []document.Action{
			{
				ID:       "submit",
				Type:     document.ActionSubmit,
				Label:    "Submit",
				Style:    document.ActionStylePrimary,
				Endpoint: path,
				Method:   method,
			},
			{
				ID:    "reset",
				Type:  document.ActionReset,
				Label: "Reset",
				Style: document.ActionStyleSecondary,
			},
		},
	}
}

// fields converts the properties of an object schema in name order, the
// required list applied to its direct children.
func (c *converter) fields(schema *openapi3.Schema, depth int) []document.InputField {
	fields := []document.InputField{}
	if schema == nil || depth > maxSchemaDepth {
		return fields
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		property := schemaOf(schema.Properties[name])
		if property == nil {
			continue
		}
		_, isRequired := required[name]
		fields = append(fields, c.propertyFields(name, property, isRequired, depth)...)
	}
	return fields
}

// propertyFields maps one property. Nested objects flatten into dotted
// identifiers because screens keep their field lists flat outside
// repeaters.
func (c *converter) propertyFields(name string, schema *openapi3.Schema, required bool, depth int) []document.InputField {
	kind := schemaType(schema)
	if kind == "object" || (kind == "" && len(schema.Properties) > 0) {
		nested := c.fields(schema, depth+1)
		out := make([]document.InputField, 0, len(nested))
		for _, field := range nested {
			field.ID = name + "." + field.ID
			out = append(out, field)
		}
		return out
	}
	return []document.InputField{c.field(name, schema, required, depth)}
}

func (c *converter) field(name string, schema *openapi3.Schema, required bool, depth int) document.InputField {
	field := document.InputField{
		ID:       name,
		Label:    c.labeler(name),
		HelpText: strings.TrimSpace(schema.Description),
		Required: required,
		ReadOnly: schema.ReadOnly,
		Default:  schema.Default,
	}

	switch schemaType(schema) {
	case "boolean":
		field.Type = document.FieldToggle
	case "integer":
		field.Type = document.FieldNumber
		field.Number = numberConfig(schema, true)
	case "number":
		field.Type = document.FieldNumber
		field.Number = numberConfig(schema, false)
	case "array":
		c.arrayField(&field, name, schema, depth)
	default:
		c.scalarField(&field, schema)
	}
	return field
}

// scalarField handles strings and untyped schemas. Enumerations become
// selects; otherwise the string format picks the input type.
func (c *converter) scalarField(field *document.InputField, schema *openapi3.Schema) {
	if options := enumOptions(schema.Enum); len(options) > 0 {
		field.Type = document.FieldSelect
		field.Options = options
		return
	}
	field.Type = formatFieldType(schema.Format)
	if isTextual(field.Type) {
		field.Text = textConfig(schema)
	}
}

// arrayField maps arrays. Enumerated items become a multi select; object
// items become a repeater over their converted fields; anything else
// becomes a repeater over a single synthesized item field.
func (c *converter) arrayField(field *document.InputField, name string, schema *openapi3.Schema, depth int) {
	items := schemaOf(schema.Items)
	if items != nil {
		if options := enumOptions(items.Enum); len(options) > 0 {
			field.Type = document.FieldMultiSelect
			field.Options = options
			return
		}
	}
	if items == nil {
		items = &openapi3.Schema{}
	}

	field.Type = document.FieldRepeater
	config := &document.RepeaterConfig{ItemFields: []document.InputField{}}
	if len(items.Properties) > 0 {
		config.ItemFields = c.fields(items, depth+1)
	}
	if len(config.ItemFields) == 0 {
		config.ItemFields = []document.InputField{c.field(name+"_item", items, false, depth+1)}
	}
	if schema.MinItems != 0 {
		value := int(schema.MinItems)
		config.MinItems = &value
	}
	if schema.MaxItems != nil {
		value := int(*schema.MaxItems)
		config.MaxItems = &value
	}
	field.Repeater = config
}

func formatFieldType(format string) document.FieldType {
	switch strings.TrimSpace(strings.ToLower(format)) {
	case "date":
		return document.FieldDate
	case "time":
		return document.FieldTime
	case "date-time", "datetime", "datetime-local":
		return document.FieldDateTime
	case "email":
		return document.FieldEmail
	case "uri", "iri", "uri-reference", "iri-reference", "url":
		return document.FieldURL
	case "tel", "phone":
		return document.FieldTel
	case "password":
		return document.FieldPassword
	case "byte", "binary":
		return document.FieldFileUpload
	default:
		return document.FieldText
	}
}

func isTextual(t document.FieldType) bool {
	switch t {
	case document.FieldText, document.FieldEmail, document.FieldPassword,
		document.FieldTel, document.FieldURL:
		return true
	}
	return false
}

func schemaType(schema *openapi3.Schema) string {
	if schema == nil || schema.Type == nil {
		return ""
	}
	values := schema.Type.Slice()
	if len(values) == 0 {
		return ""
	}
	// Nullable unions such as ["string", "null"] collapse to the first
	// concrete entry.
	for _, value := range values {
		if value != "null" {
			return value
		}
	}
	return values[0]
}
