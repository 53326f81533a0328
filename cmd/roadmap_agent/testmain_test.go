package main

import (
	"os"
	"strings"
	"testing"
)

// credentialKeys are read by config.Load outside the ROADMAP_ prefix.
var credentialKeys = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "GOOGLE_SEARCH_API_KEY", "GOOGLE_SEARCH_CX"}

// TestMain clears settings and credentials inherited from the developer's
// shell so no test reaches Gemini or a live search provider.
func TestMain(m *testing.M) {
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "ROADMAP_") {
			_ = os.Unsetenv(key)
		}
	}
	for _, key := range credentialKeys {
		_ = os.Unsetenv(key)
	}

	os.Exit(m.Run())
}
