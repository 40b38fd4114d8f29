package core

import (
	"os"
	"path/filepath"
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}
}

func TestNewRunID(t *testing.T) {
	if NewRunID().String() == "" {
		t.Error("Expected non-empty run ID")
	}
}

// TestHashFileMatchesNewHash tests that file and in-memory hashing agree
func TestHashFileMatchesNewHash(t *testing.T) {
	data := []byte("Survived,Pclass\n1,1\n")
	path := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}
	if got != NewHash(data) {
		t.Errorf("Expected %s, got %s", NewHash(data), got)
	}
	if len(got.String()) != 64 {
		t.Errorf("Expected 64 hex characters, got %d", len(got.String()))
	}
}

func TestHashFileMissing(t *testing.T) {
	if _, err := HashFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for missing file")
	}
}
