package options

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/goliatone/go-viewdef/pkg/document"
)

// HTTPError lets a guard pick the response status for a rejected request.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError is the ready-made HTTPError for guards. A zero Code keeps
// the handler's default rejection status.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("options: request rejected with status %d", e.Code)
	}
	return e.Err.Error()
}

func (e StatusError) Unwrap() error { return e.Err }

// StatusCode returns the status the guard chose, zero when unset.
func (e StatusError) StatusCode() int { return e.Code }

type listResponse struct {
	Data []document.Option `json:"data"`
}

// Handler answers option queries against the registry. The collection name
// is the request path relative to the mount point, so mount it with
// RegisterRoutes or wrap it in http.StripPrefix yourself.
func (r *Registry) Handler(fns ...ConfigFn) http.Handler {
	cfg := NewConfig(fns...)
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if req.Method != http.MethodGet && req.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if cfg.Guard != nil {
			if err := cfg.Guard(req); err != nil {
				code := guardStatus(err)
				http.Error(w, http.StatusText(code), code)
				return
			}
		}

		name, ok := collectionName(req.URL.Path)
		if !ok {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		collection, ok := r.Lookup(name)
		if !ok {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		params := req.URL.Query()
		limit := 0
		if v, err := strconv.Atoi(params.Get(cfg.LimitParam)); err == nil {
			limit = v
		}
		results := Filter(collection, params.Get(cfg.SearchParam), limit, cfg)
		if results == nil {
			results = []document.Option{}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if req.Method == http.MethodHead {
			return
		}
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(listResponse{Data: results})
	})
}

// collectionName extracts the collection a request addresses: exactly one
// path segment under the mount point.
func collectionName(path string) (string, bool) {
	name := strings.Trim(path, "/")
	if name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}

// guardStatus maps a guard rejection to its response status: 403 unless
// the error carries a positive status of its own.
func guardStatus(err error) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		if code := httpErr.StatusCode(); code > 0 {
			return code
		}
	}
	return http.StatusForbidden
}

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// RegisterRoutes mounts the registry handler under basePath on mux and
// returns the subtree pattern it registered.
func (r *Registry) RegisterRoutes(mux Mux, basePath string, fns ...ConfigFn) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("options: missing mux")
	}
	cfg := NewConfig(fns...)
	prefix := mountPath(basePath, cfg.RoutePath)
	pattern := prefix + "/"
	mux.Handle(pattern, http.StripPrefix(prefix, r.Handler(fns...)))
	return pattern, nil
}

// MountPath returns the mount prefix RegisterRoutes would use.
func MountPath(basePath string, fns ...ConfigFn) string {
	cfg := NewConfig(fns...)
	return mountPath(basePath, cfg.RoutePath)
}

// mountPath joins base and route into a rooted mount prefix. ServeMux
// treats patterns without a leading slash as host matches, so one is added
// when missing.
func mountPath(basePath, routePath string) string {
	base := strings.TrimRight(strings.TrimSpace(basePath), "/")
	if base != "" && !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	route := strings.Trim(strings.TrimSpace(routePath), "/")
	if route == "" {
		if base == "" {
			return "/"
		}
		return base
	}
	return base + "/" + route
}
