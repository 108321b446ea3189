package main

import (
	"context"
	"testing"

	viewdef "github.com/goliatone/go-viewdef"
)

type fakePicker struct {
	picked string
	keys   []string
}

func (p *fakePicker) Pick(_ context.Context, keys []string) (string, error) {
	p.keys = keys
	return p.picked, nil
}

func parseDocument(t *testing.T, text string) *viewdef.Document {
	t.Helper()
	result := viewdef.Parse(text)
	if !result.Success() {
		t.Fatalf("fixture did not parse:\n%s", result.Diagnostics.Format())
	}
	return result.Document
}

func TestResolveScreenKey(t *testing.T) {
	doc := parseDocument(t, `
view:
  alpha:
    title: Alpha
  beta:
    title: Beta
`)

	t.Run("requested key wins", func(t *testing.T) {
		picker := &fakePicker{}
		key, err := resolveScreenKey(context.Background(), doc, "beta", picker)
		if err != nil {
			t.Fatalf("resolveScreenKey() error: %v", err)
		}
		if key != "beta" {
			t.Errorf("key = %q, want beta", key)
		}
		if picker.keys != nil {
			t.Errorf("picker was invoked for an explicit key")
		}
	})

	t.Run("prompts with sorted keys", func(t *testing.T) {
		picker := &fakePicker{picked: "alpha"}
		key, err := resolveScreenKey(context.Background(), doc, "", picker)
		if err != nil {
			t.Fatalf("resolveScreenKey() error: %v", err)
		}
		if key != "alpha" {
			t.Errorf("key = %q, want alpha", key)
		}
		if len(picker.keys) != 2 || picker.keys[0] != "alpha" || picker.keys[1] != "beta" {
			t.Errorf("picker keys = %v, want [alpha beta]", picker.keys)
		}
	})

	t.Run("single screen skips the prompt", func(t *testing.T) {
		single := parseDocument(t, "view:\n  only:\n    title: Only\n")
		picker := &fakePicker{}
		key, err := resolveScreenKey(context.Background(), single, "", picker)
		if err != nil {
			t.Fatalf("resolveScreenKey() error: %v", err)
		}
		if key != "only" {
			t.Errorf("key = %q, want only", key)
		}
		if picker.keys != nil {
			t.Errorf("picker was invoked for a single-screen document")
		}
	})

	t.Run("empty document fails", func(t *testing.T) {
		if _, err := resolveScreenKey(context.Background(), &viewdef.Document{}, "", &fakePicker{}); err == nil {
			t.Fatalf("resolveScreenKey() accepted a document with no screens")
		}
	})
}
