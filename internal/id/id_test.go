package id

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	got, err := Generate("evt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasPrefix(got, "evt-") {
		t.Errorf("expected evt- prefix, got %q", got)
	}
	// 21-char nanoid plus prefix and separator.
	if len(got) != len("evt-")+21 {
		t.Errorf("unexpected length %d for %q", len(got), got)
	}
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id, err := Generate("tag")
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}
