package viewdef

import (
	"context"

	"github.com/goliatone/go-viewdef/internal/openapi"
)

// FromOpenAPI derives a canonical document from an OpenAPI 3 description.
// Every operation that accepts a request body becomes one screen whose
// fields mirror the body schema; the submit action points back at the
// operation's endpoint. The result is already canonical, so it can be
// serialized and fed through Parse without picking up diagnostics.
func FromOpenAPI(ctx context.Context, data []byte) (*Document, error) {
	return openapi.Convert(ctx, data, openapi.Options{})
}
