package resumes

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Markdown renders a structured record into a human-readable summary. The
// function is pure and total: for any normalized Resume it produces the same
// bytes on every call. Section order is fixed.
func Markdown(r Resume) string {
	var b strings.Builder

	name := r.Name
	if name == "" {
		name = "Candidate"
	}
	fmt.Fprintf(&b, "## %s\n", name)

	fmt.Fprintf(&b, "**Email:** %s  \n", contactText(r.Contact.Email))
	fmt.Fprintf(&b, "**Phone:** %s  \n", contactText(r.Contact.Phone))
	fmt.Fprintf(&b, "**LinkedIn:** %s  \n\n", contactText(r.Contact.LinkedIn))

	b.WriteString("### Skills\n")
	skills := make([]string, 0, len(r.Skills))
	for _, s := range r.Skills {
		skills = append(skills, entryText(s))
	}
	b.WriteString(strings.Join(skills, ", ") + "\n\n")

	b.WriteString("### Education\n")
	writeBullets(&b, r.Education)

	b.WriteString("\n### Work Experience\n")
	writeBullets(&b, r.Experience)

	b.WriteString("\n### Projects\n")
	writeBullets(&b, r.Projects)

	b.WriteString("\n### Certifications\n")
	writeBullets(&b, r.Certifications)

	b.WriteString("\n### Preferences\n")
	keys := make([]string, 0, len(r.Preferences))
	for k := range r.Preferences {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "- **%s:** %s\n", capitalize(k), r.Preferences[k])
	}

	return strings.TrimSpace(b.String())
}

func writeBullets(b *strings.Builder, entries []any) {
	for _, e := range entries {
		fmt.Fprintf(b, "- %s\n", entryText(e))
	}
}

// entryText formats a free-form entry: strings pass through, structured
// sub-objects render as compact JSON.
func entryText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return ""
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(encoded)
}

func contactText(v *string) string {
	if v == nil || *v == "" {
		return "N/A"
	}
	return *v
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
