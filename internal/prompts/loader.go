// Package prompts holds the model prompts for roadmap generation. Prompts
// live in embedded JSON files mapping a key to a {{.Name}} template.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"maps"
	"regexp"
	"slices"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

var placeholderPattern = regexp.MustCompile(`\{\{\.([A-Za-z][A-Za-z0-9]*)\}\}`)

// library is every embedded prompt file, parsed on first use.
var library = sync.OnceValues(func() (map[string]map[string]string, error) {
	names, err := fs.Glob(promptFiles, "*.json")
	if err != nil {
		return nil, err
	}

	files := make(map[string]map[string]string, len(names))
	for _, name := range names {
		data, err := promptFiles.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt file %s: %w", name, err)
		}
		var prompts map[string]string
		if err := json.Unmarshal(data, &prompts); err != nil {
			return nil, fmt.Errorf("failed to parse prompt file %s: %w", name, err)
		}
		files[name] = prompts
	}
	return files, nil
})

func file(filename string) (map[string]string, error) {
	files, err := library()
	if err != nil {
		return nil, err
	}
	prompts, ok := files[filename]
	if !ok {
		return nil, fmt.Errorf("prompt file %s not found", filename)
	}
	return prompts, nil
}

// Get returns the template stored under key in filename (e.g. "roadmap.json").
func Get(filename, key string) (string, error) {
	prompts, err := file(filename)
	if err != nil {
		return "", err
	}
	prompt, ok := prompts[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// List returns the prompt keys in filename, sorted.
func List(filename string) ([]string, error) {
	prompts, err := file(filename)
	if err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(prompts)), nil
}

// Placeholders returns the distinct placeholder names in template, in order of appearance.
func Placeholders(template string) []string {
	var names []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		if !slices.Contains(names, m[1]) {
			names = append(names, m[1])
		}
	}
	return names
}

// Render fills every {{.Name}} placeholder from data and fails if one has no value.
// Values are substituted in a single pass, so a job description that happens to
// contain "{{.Company}}" is never expanded.
func Render(template string, data map[string]string) (string, error) {
	var missing []string
	result := placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		value, ok := data[key]
		if !ok {
			if !slices.Contains(missing, key) {
				missing = append(missing, key)
			}
			return match
		}
		return value
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("prompt placeholders without values: %s", strings.Join(missing, ", "))
	}
	return result, nil
}
