package pdf

import (
	"errors"
	"testing"
)

func TestPageCountRejectsEmpty(t *testing.T) {
	if _, err := NewInspector().PageCount(nil); !errors.Is(err, ErrNoPages) {
		t.Fatalf("expected ErrNoPages, got %v", err)
	}
}

func TestPageCountRejectsGarbage(t *testing.T) {
	if _, err := NewInspector().PageCount([]byte("definitely not a pdf")); err == nil {
		t.Fatal("expected an error for non-PDF bytes")
	}
}
