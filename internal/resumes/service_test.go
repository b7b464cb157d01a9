package resumes

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/chistym17/jobgenie/internal/dispatch"
	"github.com/chistym17/jobgenie/internal/extract"
	"github.com/chistym17/jobgenie/internal/llm"
)

type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) GenerateContent(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type fakeDispatcher struct {
	token  string
	err    error
	owners []string
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, owner string) (string, error) {
	f.owners = append(f.owners, owner)
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

func passthroughText(data []byte) (string, error) {
	return string(data), nil
}

const cleanExtraction = `{
	"name": "Jane Doe",
	"contact": {"email": "jane@example.com", "phone": null, "linkedin": null},
	"skills": ["Go", "SQL"],
	"education": [],
	"experience": [],
	"projects": [],
	"certifications": [],
	"preferences": {}
}`

func TestSubmitCompletesPipeline(t *testing.T) {
	repo := NewMemoryRepo()
	disp := &fakeDispatcher{token: "task-123"}
	svc := &Service{
		LLM:         &fakeLLM{response: cleanExtraction},
		Repo:        repo,
		Dispatcher:  disp,
		ExtractText: passthroughText,
	}

	result, err := svc.Submit(context.Background(), []byte("resume text"), "jane@example.com")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.ID == "" {
		t.Error("result missing identity")
	}
	if result.TrackingToken != "task-123" {
		t.Errorf("tracking token = %q, want task-123", result.TrackingToken)
	}
	if result.DispatchErr != nil {
		t.Errorf("unexpected dispatch error: %v", result.DispatchErr)
	}
	if result.Record.Resume.Name != "Jane Doe" {
		t.Errorf("name = %q", result.Record.Resume.Name)
	}
	if result.Record.Resume.Contact.Phone != nil {
		t.Error("null phone must stay nil through the pipeline")
	}
	if !strings.HasPrefix(result.Record.Markdown, "## Jane Doe") {
		t.Errorf("markdown = %q", result.Record.Markdown)
	}
	if repo.Len() != 1 {
		t.Errorf("store holds %d records, want 1", repo.Len())
	}
	if len(disp.owners) != 1 || disp.owners[0] != "jane@example.com" {
		t.Errorf("dispatch owners = %v", disp.owners)
	}
}

func TestSubmitMalformedExtractionNothingPersisted(t *testing.T) {
	repo := NewMemoryRepo()
	disp := &fakeDispatcher{token: "task-123"}
	svc := &Service{
		LLM:         &fakeLLM{response: "I could not find a resume in this document."},
		Repo:        repo,
		Dispatcher:  disp,
		ExtractText: passthroughText,
	}

	_, err := svc.Submit(context.Background(), []byte("resume text"), "jane@example.com")
	if err == nil {
		t.Fatal("expected failure for unparseable provider output")
	}
	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageRepaired {
		t.Errorf("error = %v, want StageError at %s", err, StageRepaired)
	}
	var malErr *MalformedExtractionError
	if !errors.As(err, &malErr) {
		t.Fatalf("error chain missing MalformedExtractionError: %v", err)
	}
	if malErr.Raw == "" {
		t.Error("raw provider text must be preserved for diagnosis")
	}
	if repo.Len() != 0 {
		t.Errorf("store holds %d records, want 0", repo.Len())
	}
	if len(disp.owners) != 0 {
		t.Error("dispatch must not run after a pipeline failure")
	}
}

func TestSubmitDispatchFailureDoesNotFailSubmission(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{
		LLM:         &fakeLLM{response: cleanExtraction},
		Repo:        repo,
		Dispatcher:  &fakeDispatcher{err: &dispatch.DispatchError{Endpoint: "http://worker", Status: 503}},
		ExtractText: passthroughText,
	}

	result, err := svc.Submit(context.Background(), []byte("resume text"), "jane@example.com")
	if err != nil {
		t.Fatalf("Submit must succeed despite dispatch failure, got %v", err)
	}
	if result.ID == "" {
		t.Error("result missing identity")
	}
	if result.DispatchErr == nil {
		t.Fatal("dispatch failure must be surfaced on the result")
	}
	var dispErr *dispatch.DispatchError
	if !errors.As(result.DispatchErr, &dispErr) {
		t.Errorf("DispatchErr type = %T", result.DispatchErr)
	}
	if result.TrackingToken != "" {
		t.Error("no tracking token on dispatch failure")
	}
	if repo.Len() != 1 {
		t.Errorf("store holds %d records, want 1", repo.Len())
	}
}

func TestSubmitProviderFailure(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{
		LLM:         &fakeLLM{err: &llm.ProviderError{Provider: "gemini", Err: errors.New("quota exceeded")}},
		Repo:        repo,
		Dispatcher:  &fakeDispatcher{},
		ExtractText: passthroughText,
	}

	_, err := svc.Submit(context.Background(), []byte("resume text"), "jane@example.com")
	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageStructureExtracted {
		t.Errorf("error = %v, want StageError at %s", err, StageStructureExtracted)
	}
	var provErr *llm.ProviderError
	if !errors.As(err, &provErr) {
		t.Errorf("error chain missing ProviderError: %v", err)
	}
	if repo.Len() != 0 {
		t.Error("nothing may persist after a provider failure")
	}
}

func TestSubmitExtractionFailure(t *testing.T) {
	svc := &Service{
		LLM:        &fakeLLM{response: cleanExtraction},
		Repo:       NewMemoryRepo(),
		Dispatcher: &fakeDispatcher{},
		ExtractText: func(data []byte) (string, error) {
			return "", &extract.ExtractionError{Err: errors.New("not a pdf")}
		},
	}

	_, err := svc.Submit(context.Background(), []byte("garbage"), "jane@example.com")
	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageTextExtracted {
		t.Errorf("error = %v, want StageError at %s", err, StageTextExtracted)
	}
	var exErr *extract.ExtractionError
	if !errors.As(err, &exErr) {
		t.Errorf("error chain missing ExtractionError: %v", err)
	}
}

func TestSubmitValidation(t *testing.T) {
	svc := &Service{LLM: &fakeLLM{}, Repo: NewMemoryRepo(), ExtractText: passthroughText}

	_, err := svc.Submit(context.Background(), []byte("x"), "")
	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageReceived {
		t.Errorf("missing owner: error = %v, want StageError at %s", err, StageReceived)
	}

	_, err = svc.Submit(context.Background(), nil, "jane@example.com")
	if !errors.As(err, &stageErr) || stageErr.Stage != StageReceived {
		t.Errorf("empty file: error = %v, want StageError at %s", err, StageReceived)
	}
}

func TestSubmitPromptCarriesResumeText(t *testing.T) {
	fake := &fakeLLM{response: cleanExtraction}
	svc := &Service{
		LLM:         fake,
		Repo:        NewMemoryRepo(),
		Dispatcher:  &fakeDispatcher{token: "t"},
		ExtractText: passthroughText,
	}

	if _, err := svc.Submit(context.Background(), []byte("ten years of Go"), "jane@example.com"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(fake.prompts) != 1 {
		t.Fatalf("provider called %d times, want exactly 1", len(fake.prompts))
	}
	if !strings.Contains(fake.prompts[0], "ten years of Go") {
		t.Error("prompt does not embed the extracted text")
	}
}

func TestSubmitNilDispatcherReportsDispatchError(t *testing.T) {
	svc := &Service{
		LLM:         &fakeLLM{response: cleanExtraction},
		Repo:        NewMemoryRepo(),
		ExtractText: passthroughText,
	}

	result, err := svc.Submit(context.Background(), []byte("resume"), "jane@example.com")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.DispatchErr == nil {
		t.Error("missing dispatcher must surface as a dispatch error")
	}
}
