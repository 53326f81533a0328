// Package extraction pulls a single JSON object out of free-form LLM text.
// Models wrap their JSON in prose and markdown fences even when told not to,
// so the extractor locates the first balanced object and parses only that span.
package extraction

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

const fence = "```"

// Extract locates the first top-level JSON object in raw and parses it.
// An object in the prose ahead of the first code fence wins; otherwise the
// fenced block is searched, and if the fence holds no object the whole text
// is. A span that fails strict parsing is repaired once with jsonrepair
// before giving up.
func Extract(raw string) (map[string]any, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, &MalformedError{Raw: raw, Reason: "empty response"}
	}

	// a brace pair in the preamble that is not JSON does not shadow the fence
	if idx := strings.Index(text, fence); idx > 0 {
		if span := firstObjectSpan(text[:idx]); span != "" {
			if obj, err := decode(raw, span); err == nil {
				return obj, nil
			}
		}
	}

	span := ""
	if block, ok := fencedBlock(text); ok {
		span = firstObjectSpan(block)
	}
	if span == "" {
		span = firstObjectSpan(text)
	}
	if span == "" {
		return nil, &MalformedError{Raw: raw, Reason: "no balanced JSON object found"}
	}
	return decode(raw, span)
}

// decode parses span strictly, then once more after jsonrepair.
func decode(raw, span string) (map[string]any, error) {
	obj, err := parseObject(span)
	if err == nil {
		return obj, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(span)
	if repairErr != nil {
		return nil, &MalformedError{Raw: raw, Reason: "JSON object could not be parsed or repaired", Cause: err}
	}
	obj, err = parseObject(repaired)
	if err != nil {
		return nil, &MalformedError{Raw: raw, Reason: "repaired JSON object could not be parsed", Cause: err}
	}
	return obj, nil
}

// parseObject decodes s and requires the top-level value to be an object.
func parseObject(s string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, &MalformedError{Raw: s, Reason: "top-level JSON value is null"}
	}
	return obj, nil
}

// fencedBlock returns the body of the first markdown code fence in text.
// A language identifier on the opening line (```json, ```javascript) is skipped.
// An unterminated fence yields everything after the opening marker.
func fencedBlock(text string) (string, bool) {
	start := strings.Index(text, fence)
	if start < 0 {
		return "", false
	}
	body := text[start+len(fence):]

	if idx := strings.Index(body, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(body[:idx])
		if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
			body = body[idx+1:]
		}
	}

	if end := strings.Index(body, fence); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body), true
}

// firstObjectSpan returns the first balanced {...} span in text, or "" if none.
// Braces inside double-quoted strings are ignored once inside an object;
// quotes in the surrounding prose are not tracked.
func firstObjectSpan(text string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		c := text[i]

		if depth > 0 && inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}

	return ""
}
