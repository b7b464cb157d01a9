package resumes

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

var fencedJSONRe = regexp.MustCompile("(?s)```json(.*?)```")

// Repair recovers a Resume from a provider response that is not guaranteed
// to be valid JSON. A json-tagged fenced block, if present, is preferred
// over the full text. Valid JSON is parsed strictly first so well-formed
// input round-trips with no information loss; only invalid text goes through
// the tolerant reparse (single quotes, None/True/False literals, trailing
// noise). Anything that does not decode to a JSON object fails with
// MalformedExtractionError carrying the raw text.
func Repair(raw string) (Resume, error) {
	candidate := strings.TrimSpace(raw)
	if match := fencedJSONRe.FindStringSubmatch(candidate); match != nil {
		candidate = strings.TrimSpace(match[1])
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(candidate), &fields); err != nil {
		repaired, repErr := jsonrepair.JSONRepair(candidate)
		if repErr != nil {
			return Resume{}, &MalformedExtractionError{Raw: raw, Err: repErr}
		}
		if err := json.Unmarshal([]byte(repaired), &fields); err != nil {
			return Resume{}, &MalformedExtractionError{Raw: raw, Err: err}
		}
	}
	if fields == nil {
		return Resume{}, &MalformedExtractionError{Raw: raw, Err: errors.New("top-level JSON object required")}
	}

	return normalize(fields), nil
}

// normalize guarantees every recognized key is present: absent scalars become
// empty strings or null contact fields, absent collections become empty.
func normalize(fields map[string]any) Resume {
	return Resume{
		Name:           coerceString(fields["name"]),
		Contact:        normalizeContact(fields["contact"]),
		Skills:         coerceList(fields["skills"]),
		Education:      coerceList(fields["education"]),
		Experience:     coerceList(fields["experience"]),
		Projects:       coerceList(fields["projects"]),
		Certifications: coerceList(fields["certifications"]),
		Preferences:    coerceStringMap(fields["preferences"]),
	}
}

func normalizeContact(v any) Contact {
	m, _ := v.(map[string]any)
	return Contact{
		Email:    coerceOptString(m["email"]),
		Phone:    coerceOptString(m["phone"]),
		LinkedIn: coerceOptString(m["linkedin"]),
	}
}

func coerceOptString(v any) *string {
	if v == nil {
		return nil
	}
	s := coerceString(v)
	return &s
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case nil:
		return ""
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}

func coerceList(v any) []any {
	list, ok := v.([]any)
	if !ok || list == nil {
		return []any{}
	}
	return list
}

func coerceStringMap(v any) map[string]string {
	out := map[string]string{}
	m, ok := v.(map[string]any)
	if !ok {
		return out
	}
	for k, val := range m {
		if val == nil {
			continue
		}
		out[k] = coerceString(val)
	}
	return out
}
