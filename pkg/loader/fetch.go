package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

func (l *Loader) readFile(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("loader: file path is required")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := l.checkExtension(path); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("loader: %s is a directory", path)
	}
	if info.Size() > l.maxBytes {
		return nil, fmt.Errorf("loader: %s exceeds the %d byte limit", path, l.maxBytes)
	}

	return os.ReadFile(abs)
}

func (l *Loader) readFS(ctx context.Context, name string) ([]byte, error) {
	if l.fs == nil {
		return nil, errors.New("loader: filesystem is not configured")
	}
	if name == "" {
		return nil, errors.New("loader: fs path is required")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := l.checkExtension(name); err != nil {
		return nil, err
	}

	info, err := fs.Stat(l.fs, name)
	if err != nil {
		return nil, err
	}
	if info.Size() > l.maxBytes {
		return nil, fmt.Errorf("loader: %s exceeds the %d byte limit", name, l.maxBytes)
	}

	return fs.ReadFile(l.fs, name)
}

func (l *Loader) fetchURL(ctx context.Context, location string) ([]byte, error) {
	if l.http == nil {
		return nil, errors.New("loader: remote fetch is disabled")
	}

	parsed, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("loader: invalid URL %q: %w", location, err)
	}
	switch parsed.Scheme {
	case "https":
	case "http":
		if !l.insecure {
			return nil, fmt.Errorf("loader: plain http is not allowed for %q", location)
		}
	default:
		return nil, fmt.Errorf("loader: scheme %q is not allowed", parsed.Scheme)
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if l.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("loader: unexpected status " + resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, l.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("loader: %s exceeds the %d byte limit", location, l.maxBytes)
	}
	return data, nil
}

func (l *Loader) checkExtension(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := l.extensions[ext]; !ok {
		return fmt.Errorf("loader: %q does not have an allowed document extension", path)
	}
	return nil
}
