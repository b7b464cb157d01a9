package llm

import (
	_ "embed"
	"strings"
)

//go:embed prompts/extract_v1.txt
var extractPromptV1 string

// BuildExtractPrompt renders the fixed extraction instruction for one resume.
// The instruction enumerates the fourteen target fields and the exact
// top-level envelope the model must respond with.
func BuildExtractPrompt(resumeText string) string {
	return strings.ReplaceAll(extractPromptV1, "{{RESUME_TEXT}}", resumeText)
}
