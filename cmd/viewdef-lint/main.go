// Command viewdef-lint checks view definition documents in bulk and reports
// every problem found. It exits non-zero when any document fails, which makes
// it suitable for CI pipelines guarding a directory of screen definitions.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	viewdef "github.com/goliatone/go-viewdef"
	"github.com/goliatone/go-viewdef/pkg/diag"
)

// report groups the problems found in one document.
type report struct {
	file     string
	problems diag.List
}

func main() {
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage: %s <paths...>\n", filepath.Base(os.Args[0]))
		fmt.Fprintln(out, "\nLint view definition documents. Directories are walked for .yaml, .yml and .json files.")
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	files, err := collectFiles(paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lint: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "lint: no documents found")
		os.Exit(1)
	}

	reports, err := lintFiles(files)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lint: %v\n", err)
		os.Exit(1)
	}

	if len(reports) > 0 {
		for _, r := range reports {
			for _, problem := range r.problems {
				fmt.Fprintf(os.Stderr, "%s: %s\n", r.file, problem)
			}
		}
		fmt.Fprintf(os.Stderr, "%d of %d documents have problems\n", len(reports), len(files))
		os.Exit(1)
	}
	fmt.Printf("OK: %d documents\n", len(files))
}

// collectFiles expands the given paths into the sorted list of documents to
// lint. Explicit files are taken as-is; directories are walked for known
// extensions.
func collectFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		err = filepath.WalkDir(path, func(entry string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !lintable(entry) {
				return nil
			}
			add(entry)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func lintable(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// lintFiles parses every file and keeps the diagnostics of those that fail.
// Problems stay in discovery order within a file.
func lintFiles(files []string) ([]report, error) {
	var reports []report
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		if result := viewdef.ParseBytes(data); result.Diagnostics.HasErrors() {
			reports = append(reports, report{file: file, problems: result.Diagnostics})
		}
	}
	return reports, nil
}
