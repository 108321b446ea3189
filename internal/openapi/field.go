package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-viewdef/internal/rawdoc"
	"github.com/goliatone/go-viewdef/pkg/document"
)

// enumOptions converts enum members into option pairs whose value equals
// their label. Members that are not scalars are skipped.
func enumOptions(enum []any) []document.Option {
	if len(enum) == 0 {
		return nil
	}
	options := make([]document.Option, 0, len(enum))
	for _, member := range enum {
		value, ok := rawdoc.FormatScalar(member)
		if !ok {
			continue
		}
		options = append(options, document.Option{Value: value, Label: value})
	}
	if len(options) == 0 {
		return nil
	}
	return options
}

// numberConfig carries numeric bounds over. Integer schemas get a unit
// step so renderers keep whole-number input.
func numberConfig(schema *openapi3.Schema, integral bool) *document.NumberConfig {
	config := &document.NumberConfig{}
	if schema.Min != nil {
		value := *schema.Min
		config.Min = &value
	}
	if schema.Max != nil {
		value := *schema.Max
		config.Max = &value
	}
	if integral {
		step := 1.0
		config.Step = &step
	}
	if config.Min == nil && config.Max == nil && config.Step == nil {
		return nil
	}
	return config
}

func textConfig(schema *openapi3.Schema) *document.TextConfig {
	config := &document.TextConfig{Pattern: schema.Pattern}
	if schema.MinLength != 0 {
		value := int(schema.MinLength)
		config.MinLength = &value
	}
	if schema.MaxLength != nil {
		value := int(*schema.MaxLength)
		config.MaxLength = &value
	}
	if config.MinLength == nil && config.MaxLength == nil && config.Pattern == "" {
		return nil
	}
	return config
}
