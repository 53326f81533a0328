package main

import (
	"os"
	"path/filepath"
	"testing"
)

// getBinaryPath returns the built roadmap_agent binary, skipping the test
// when it has not been built.
func getBinaryPath(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping binary tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", "roadmap_agent")
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("binary not found at %s; build it with 'go build -o bin/roadmap_agent ./cmd/roadmap_agent'", binaryPath)
	}
	return binaryPath
}
