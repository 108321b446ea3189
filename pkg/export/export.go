// Package export renders canonical documents into text formats. The
// built-in outline template produces a markdown summary of every screen,
// its fields and actions; callers can swap in their own pongo2 bundles for
// other formats.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-viewdef/internal/normalize"
	"github.com/goliatone/go-viewdef/pkg/document"
)

// OutlineTemplate is the name of the built-in markdown outline.
const OutlineTemplate = "outline.md"

const defaultExtension = ".tpl"

// Option configures the exporter before construction.
type Option func(*config)

type config struct {
	templates fs.FS
	baseDir   string
	extension string
}

// WithTemplates swaps the embedded template bundle for a caller-provided
// one.
func WithTemplates(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithTemplateDir loads templates from a directory on disk in addition to
// the bundle.
func WithTemplateDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithExtension overrides the default .tpl template extension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// Exporter renders documents through a pongo2 template set. Compiled
// templates are cached per name.
type Exporter struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	extension string
}

// New constructs an Exporter. Without options it renders the embedded
// templates.
func New(options ...Option) (*Exporter, error) {
	cfg := &config{
		templates: TemplatesFS(),
		extension: defaultExtension,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("export: create directory loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))

	registerFilters()

	return &Exporter{
		set:       pongo2.NewSet("viewdef", loaders...),
		templates: make(map[string]*pongo2.Template),
		extension: cfg.extension,
	}, nil
}

// Outline renders the built-in markdown outline of the document.
func (e *Exporter) Outline(doc *document.Document, out ...io.Writer) (string, error) {
	return e.Render(OutlineTemplate, doc, out...)
}

// Render executes the named template against the document. The template
// extension is appended when the name does not carry it already.
func (e *Exporter) Render(name string, doc *document.Document, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("export: exporter is not initialized")
	}
	path := name
	if !strings.HasSuffix(path, e.extension) {
		path += e.extension
	}

	tmpl, err := e.template(path)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, doc, out)
}

// RenderString executes inline template content against the document.
func (e *Exporter) RenderString(content string, doc *document.Document, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("export: exporter is not initialized")
	}
	tmpl, err := e.set.FromString(content)
	if err != nil {
		return "", fmt.Errorf("export: parse template string: %w", err)
	}
	return e.execute(tmpl, doc, out)
}

func (e *Exporter) execute(tmpl *pongo2.Template, doc *document.Document, out []io.Writer) (string, error) {
	ctx, err := documentContext(doc)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("export: execute template: %w", err)
	}

	rendered := buf.String()
	for _, w := range out {
		if _, err := w.Write([]byte(rendered)); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (e *Exporter) template(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("export: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

// documentContext exposes the document to templates as sorted entry lists
// so rendering stays deterministic regardless of map order.
func documentContext(doc *document.Document) (pongo2.Context, error) {
	if doc == nil {
		return nil, errors.New("export: document is nil")
	}
	screens, err := sortedEntries(doc.Screens)
	if err != nil {
		return nil, err
	}
	components, err := sortedEntries(doc.Components)
	if err != nil {
		return nil, err
	}
	rules, err := sortedEntries(doc.Rules)
	if err != nil {
		return nil, err
	}
	return pongo2.Context{
		"screens":    screens,
		"components": components,
		"rules":      rules,
	}, nil
}

// sortedEntries flattens a keyed collection into key-ordered template maps
// with the key injected under "key".
func sortedEntries[T any](items map[string]T) ([]any, error) {
	keys := make([]string, 0, len(items))
	for key := range items {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := make([]any, 0, len(keys))
	for _, key := range keys {
		entry, err := toMap(items[key])
		if err != nil {
			return nil, fmt.Errorf("export: flatten entry %q: %w", key, err)
		}
		entry["key"] = key
		entries = append(entries, entry)
	}
	return entries, nil
}

func toMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var filterSetup sync.Once

// registerFilters installs the custom filters once per process; pongo2
// keeps a global filter registry.
func registerFilters() {
	filterSetup.Do(func() {
		if !pongo2.FilterExists("slug") {
			_ = pongo2.RegisterFilter("slug", filterSlug)
		}
	})
}

func filterSlug(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(normalize.ToSafeKey(in.String())), nil
}
