package viewdef

import (
	"context"

	"github.com/goliatone/go-viewdef/pkg/loader"
)

// Load fetches a document from src and runs the parse pipeline over it.
// Fetch problems surface as the returned error; document problems surface
// as diagnostics on the Result.
func Load(ctx context.Context, src loader.Source, options ...loader.Option) (Result, error) {
	payload, err := loader.New(options...).Load(ctx, src)
	if err != nil {
		return Result{}, err
	}
	return ParseBytes(payload.Data()), nil
}
