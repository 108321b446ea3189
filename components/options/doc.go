// Package options serves the shared option collections that select-like
// fields point at through optionsRef. Collections are registered by name,
// either directly or harvested from a document's component table, and a
// small net/http handler answers option queries as JSON so clients can
// populate selects lazily.
//
// The handler responds to GET and HEAD requests and supports query and
// limit parameters to filter results. A curated IANA timezone list ships
// as a ready-made collection.
package options
