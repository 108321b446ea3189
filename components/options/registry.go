package options

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-viewdef/pkg/document"
)

// Registry holds named option collections. It is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	collections map[string][]document.Option
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{collections: make(map[string][]document.Option)}
}

// Register stores a collection under name, replacing any previous one. The
// options are copied so later mutations by the caller do not leak in.
func (r *Registry) Register(name string, opts []document.Option) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("options: collection name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.collections[name] = append([]document.Option(nil), opts...)
	return nil
}

// FromDocument harvests every component that carries an option list and
// registers it under the component's key. The first field of a component
// that declares options supplies the collection. Returns the number of
// collections registered.
func (r *Registry) FromDocument(doc *document.Document) int {
	if doc == nil {
		return 0
	}

	keys := make([]string, 0, len(doc.Components))
	for key := range doc.Components {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	registered := 0
	for _, key := range keys {
		component := doc.Components[key]
		for _, field := range component.Fields {
			if len(field.Options) == 0 {
				continue
			}
			if err := r.Register(key, field.Options); err == nil {
				registered++
			}
			break
		}
	}
	return registered
}

// Lookup returns a copy of the named collection.
func (r *Registry) Lookup(name string) ([]document.Option, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	opts, ok := r.collections[name]
	if !ok {
		return nil, false
	}
	return append([]document.Option(nil), opts...), true
}

// Names lists the registered collection names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.collections))
	for name := range r.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
