package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	viewdef "github.com/goliatone/go-viewdef"
	"github.com/goliatone/go-viewdef/pkg/export"
	"github.com/goliatone/go-viewdef/pkg/loader"
)

func main() {
	source := flag.String("source", "view.yaml", "document path or URL")
	mode := flag.String("mode", "validate", "one of validate, json, outline, screen")
	screenKey := flag.String("screen", "", "screen key for -mode screen (prompts when empty)")
	output := flag.String("output", "", "output file (stdout if empty)")
	insecure := flag.Bool("insecure-http", false, "allow plain http document sources")
	flag.Parse()

	ctx := context.Background()

	result, err := loadDocument(ctx, *source, *insecure)
	if err != nil {
		log.Fatalf("Failed to load document: %v", err)
	}

	if *mode == "validate" {
		if result.Diagnostics.HasErrors() {
			fmt.Fprintln(os.Stderr, result.Diagnostics.Format())
			os.Exit(1)
		}
		fmt.Printf("OK: %d screens\n", len(result.Document.Screens))
		return
	}

	if !result.Success() {
		log.Fatalf("Document has problems:\n%s", result.Diagnostics.Format())
	}

	switch *mode {
	case "json":
		data, err := json.MarshalIndent(result.Document, "", "  ")
		if err != nil {
			log.Fatalf("Failed to serialize document: %v", err)
		}
		emit(*output, append(data, '\n'))
	case "outline":
		exporter, err := export.New()
		if err != nil {
			log.Fatalf("Failed to set up exporter: %v", err)
		}
		outline, err := exporter.Outline(result.Document)
		if err != nil {
			log.Fatalf("Failed to render outline: %v", err)
		}
		emit(*output, []byte(outline))
	case "screen":
		key, err := resolveScreenKey(ctx, result.Document, *screenKey, surveyPicker{})
		if err != nil {
			log.Fatalf("Failed to pick a screen: %v", err)
		}
		screen, ok := result.Document.Screen(key)
		if !ok {
			log.Fatalf("Screen %q not found", key)
		}
		data, err := json.MarshalIndent(screen, "", "  ")
		if err != nil {
			log.Fatalf("Failed to serialize screen: %v", err)
		}
		emit(*output, append(data, '\n'))
	default:
		log.Fatalf("Unknown mode %q", *mode)
	}
}

func loadDocument(ctx context.Context, source string, insecure bool) (viewdef.Result, error) {
	path := strings.TrimSpace(source)
	if path == "" {
		return viewdef.Result{}, fmt.Errorf("source is required")
	}

	var options []loader.Option
	var src loader.Source
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		src = loader.FromURL(path)
		options = append(options, loader.WithRemoteFetch(30*time.Second))
		if insecure {
			options = append(options, loader.WithInsecureHTTP())
		}
	} else {
		src = loader.FromFile(path)
	}
	return viewdef.Load(ctx, src, options...)
}

// resolveScreenKey picks the screen to dump: the requested key when given,
// the only screen when there is just one, otherwise an interactive prompt.
func resolveScreenKey(ctx context.Context, doc *viewdef.Document, requested string, picker screenPicker) (string, error) {
	if requested != "" {
		return requested, nil
	}

	keys := make([]string, 0, len(doc.Screens))
	for key := range doc.Screens {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	switch len(keys) {
	case 0:
		return "", fmt.Errorf("document has no screens")
	case 1:
		return keys[0], nil
	}
	return picker.Pick(ctx, keys)
}

func emit(path string, data []byte) {
	if path != "" {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Written to %s\n", path)
		return
	}
	fmt.Print(string(data))
}
