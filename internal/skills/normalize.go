// Package skills derives the key-skill evidence attached to a roadmap from job-description text.
package skills

import "strings"

// Dedupe trims each entry, collapses inner whitespace, drops empties, and
// removes case-insensitive duplicates keeping the first spelling. Names are
// never rewritten to another skill. The result is never nil.
func Dedupe(skills []string) []string {
	result := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		name := strings.Join(strings.Fields(skill), " ")
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, name)
	}
	return result
}
