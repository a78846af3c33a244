package testutil

import (
	"encoding/json"
	"os"
	"testing"
)

// WriteJSON writes v as a JSON fixture file, failing the test on error.
func WriteJSON(t *testing.T, path string, v interface{}) {
	t.Helper()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("encoding fixture %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
}

// ReadJSON decodes a JSON file into out, failing the test on error.
func ReadJSON(t *testing.T, path string, out interface{}) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("decoding %s: %v", path, err)
	}
}
