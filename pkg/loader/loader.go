// Package loader fetches view definition documents from the filesystem, an
// fs.FS, or HTTP endpoints. It is offline-first: remote fetch stays
// disabled until a caller opts in, only https is allowed unless plain http
// is explicitly permitted, payloads are capped in size, and local paths
// must carry an allowed document extension.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"
)

// DefaultMaxBytes caps document payloads when no explicit limit is set.
const DefaultMaxBytes = 4 << 20

// Options collects the loader knobs prior to construction.
type Options struct {
	// FileSystem enables loading from an abstract filesystem. Nil leaves
	// fs sources disabled; file sources always use the operating system.
	FileSystem fs.FS

	// HTTPClient injects custom HTTP behaviour (timeouts, proxies).
	// Supplying a client enables remote fetch.
	HTTPClient *http.Client

	// AllowRemote enables the built-in HTTP client for URL sources.
	AllowRemote bool

	// AllowInsecureHTTP additionally admits the plain http scheme. The
	// default admits https only.
	AllowInsecureHTTP bool

	// RequestTimeout caps remote fetch durations.
	RequestTimeout time.Duration

	// MaxBytes caps the payload size for every source kind. Zero or
	// negative falls back to DefaultMaxBytes.
	MaxBytes int64

	// Extensions is the allow-list applied to file and fs paths. Empty
	// falls back to .yaml, .yml and .json.
	Extensions []string
}

// Option mutates Options prior to construction.
type Option func(*Options)

// WithFileSystem injects an fs.FS implementation for fs sources.
func WithFileSystem(files fs.FS) Option {
	return func(opts *Options) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client and enables remote fetch.
func WithHTTPClient(client *http.Client) Option {
	return func(opts *Options) {
		opts.HTTPClient = client
	}
}

// WithRemoteFetch enables URL sources using the built-in HTTP client and
// assigns an optional timeout.
func WithRemoteFetch(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.AllowRemote = true
		opts.RequestTimeout = timeout
	}
}

// WithInsecureHTTP admits the plain http scheme alongside https.
func WithInsecureHTTP() Option {
	return func(opts *Options) {
		opts.AllowInsecureHTTP = true
	}
}

// WithMaxBytes overrides the payload size cap.
func WithMaxBytes(limit int64) Option {
	return func(opts *Options) {
		opts.MaxBytes = limit
	}
}

// WithExtensions overrides the path extension allow-list. Entries are
// matched case-insensitively and must include the leading dot.
func WithExtensions(extensions ...string) Option {
	return func(opts *Options) {
		opts.Extensions = extensions
	}
}

// Loader fetches documents by delegating to the file, fs.FS, or HTTP
// strategy matching the source kind.
type Loader struct {
	fs         fs.FS
	http       *http.Client
	insecure   bool
	timeout    time.Duration
	maxBytes   int64
	extensions map[string]struct{}
}

// New constructs a Loader from the supplied options.
func New(options ...Option) *Loader {
	cfg := Options{}
	for _, opt := range options {
		opt(&cfg)
	}

	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	extensions := cfg.Extensions
	if len(extensions) == 0 {
		extensions = []string{".yaml", ".yml", ".json"}
	}
	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	var client *http.Client
	switch {
	case cfg.HTTPClient != nil:
		clone := *cfg.HTTPClient
		if cfg.RequestTimeout > 0 && clone.Timeout == 0 {
			clone.Timeout = cfg.RequestTimeout
		}
		client = &clone
	case cfg.AllowRemote || cfg.AllowInsecureHTTP:
		client = &http.Client{Timeout: cfg.RequestTimeout}
	}

	return &Loader{
		fs:         cfg.FileSystem,
		http:       client,
		insecure:   cfg.AllowInsecureHTTP,
		timeout:    cfg.RequestTimeout,
		maxBytes:   maxBytes,
		extensions: allowed,
	}
}

// Payload is a fetched document together with its origin.
type Payload struct {
	source Source
	data   []byte
}

func newPayload(src Source, data []byte) (Payload, error) {
	if len(data) == 0 {
		return Payload{}, fmt.Errorf("loader: %s is empty", src.Location())
	}
	return Payload{source: src, data: append([]byte(nil), data...)}, nil
}

// Source returns the origin metadata for the payload.
func (p Payload) Source() Source {
	return p.source
}

// Data returns a defensive copy of the document bytes.
func (p Payload) Data() []byte {
	return append([]byte(nil), p.data...)
}

// Location returns the string identifier for the origin.
func (p Payload) Location() string {
	if p.source == nil {
		return ""
	}
	return p.source.Location()
}

// Load fetches a document from the provided source.
func (l *Loader) Load(ctx context.Context, src Source) (Payload, error) {
	if src == nil {
		return Payload{}, errors.New("loader: source is nil")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = l.readFile(ctx, src.Location())
	case SourceKindFS:
		data, err = l.readFS(ctx, src.Location())
	case SourceKindURL:
		data, err = l.fetchURL(ctx, src.Location())
	default:
		err = fmt.Errorf("loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return Payload{}, err
	}

	return newPayload(src, data)
}
