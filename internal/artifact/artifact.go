// Package artifact reads and writes the roadmap JSON file produced by a run.
package artifact

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/interview-roadmap/internal/types"
)

// Filename returns the artifact name for a company and role:
// {company}_{role}_roadmap.json, lowercased, with spaces and slashes replaced by underscores.
func Filename(company, role string) string {
	return slug(company) + "_" + slug(role) + "_roadmap.json"
}

var slugReplacer = strings.NewReplacer(" ", "_", "/", "_", "\\", "_")

func slug(s string) string {
	return slugReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// Marshal encodes a roadmap as UTF-8 JSON with two-space indentation and
// without HTML escaping, followed by a newline.
func Marshal(r types.Roadmap) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write stores the roadmap in dir under Filename and returns the full path.
// The file is written to a temporary name and renamed into place, so a
// reader never observes a partial artifact.
func Write(dir string, r types.Roadmap) (string, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, Filename(r.Company, r.Role))

	data, err := Marshal(r)
	if err != nil {
		return "", &WriteError{Path: path, Message: "failed to encode roadmap", Cause: err}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &WriteError{Path: path, Message: "failed to create output directory", Cause: err}
	}

	tmp := filepath.Join(dir, "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		_ = os.Remove(tmp)
		return "", &WriteError{Path: path, Message: "failed to write temporary file", Cause: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &WriteError{Path: path, Message: "failed to move file into place", Cause: err}
	}

	return path, nil
}

// Read returns the raw bytes of an artifact.
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Path: path, Message: "file not found", Cause: err}
		}
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}
	return data, nil
}

// Load reads and decodes an artifact. It does not validate the record.
func Load(path string) (types.Roadmap, error) {
	data, err := Read(path)
	if err != nil {
		return types.Roadmap{}, err
	}
	var r types.Roadmap
	if err := json.Unmarshal(data, &r); err != nil {
		return types.Roadmap{}, &LoadError{Path: path, Message: "invalid JSON", Cause: err}
	}
	return r, nil
}
