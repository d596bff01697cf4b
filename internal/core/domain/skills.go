package domain

import (
	"encoding/json"
	"strings"
)

// NormalizeSkills coerces whatever the client sent for "skills" into an
// ordered list of strings. The admin UI sometimes submits the list as a
// JSON-encoded string (multipart forms), so:
//
//   - a JSON array of strings passes through unchanged
//   - a string that looks like a serialized list ("[...]") is parsed,
//     yielding an empty list when the contents are malformed
//   - any other string becomes a single-element list
//   - every other shape (number, object, null, absent) becomes empty
//
// This is input coercion, not validation: it never fails.
func NormalizeSkills(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		if list == nil {
			return []string{}
		}
		return list
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return []string{}
	}

	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		if err := json.Unmarshal([]byte(trimmed), &list); err != nil || list == nil {
			return []string{}
		}
		return list
	}
	if strings.HasPrefix(trimmed, "[") {
		// looks like a list but is truncated; treat as unparseable
		return []string{}
	}
	return []string{s}
}
