package llm

import (
	"strings"
	"testing"
)

func TestBuildExtractPromptContainsResumeText(t *testing.T) {
	prompt := BuildExtractPrompt("Jane Doe\nSoftware Engineer")
	if !strings.Contains(prompt, "Jane Doe\nSoftware Engineer") {
		t.Fatal("expected prompt to embed the resume text")
	}
	if strings.Contains(prompt, "{{RESUME_TEXT}}") {
		t.Fatal("placeholder was not substituted")
	}
}

func TestBuildExtractPromptEnumeratesEnvelope(t *testing.T) {
	prompt := BuildExtractPrompt("text")
	for _, key := range []string{
		`"name"`, `"contact"`, `"email"`, `"phone"`, `"linkedin"`,
		`"skills"`, `"education"`, `"experience"`, `"projects"`,
		`"certifications"`, `"preferences"`,
	} {
		if !strings.Contains(prompt, key) {
			t.Fatalf("prompt missing recognized key %s", key)
		}
	}
}
