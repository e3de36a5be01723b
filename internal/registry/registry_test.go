package registry

import (
	"os"
	"path/filepath"
	"testing"
)

func writeUsersFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "registered-users.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write users file: %v", err)
	}
	return path
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeUsersFile(t, `{"users": ["alice", "bob"]}`)

	reg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !reg.IsAuthorized("alice") {
		t.Error("Expected alice to be authorized")
	}
	if !reg.IsAuthorized("bob") {
		t.Error("Expected bob to be authorized")
	}
	if reg.IsAuthorized("eve") {
		t.Error("Expected eve to be unauthorized")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeUsersFile(t, `{"users": [`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected error for malformed JSON")
	}
}

func TestIsAuthorized(t *testing.T) {
	path := writeUsersFile(t, `{"users": ["Alice"]}`)

	reg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		name     string
		username string
		expected bool
	}{
		{"exact match", "Alice", true},
		{"case-sensitive mismatch", "alice", false},
		{"empty username", "", false},
		{"unknown username", "mallory", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := reg.IsAuthorized(tc.username); got != tc.expected {
				t.Errorf("IsAuthorized(%q) = %v, expected %v", tc.username, got, tc.expected)
			}
		})
	}
}
