package resumes

import (
	"context"
	"errors"
	"time"

	"github.com/chistym17/jobgenie/internal/dispatch"
	"github.com/chistym17/jobgenie/internal/extract"
	"github.com/chistym17/jobgenie/internal/llm"
	"github.com/chistym17/jobgenie/internal/shared/metrics"
	"github.com/chistym17/jobgenie/internal/shared/telemetry"
)

// Pipeline stages, in order. A failure in any stage terminates the
// submission with a StageError naming the stage it originated in.
const (
	StageReceived           = "Received"
	StageTextExtracted      = "TextExtracted"
	StageStructureExtracted = "StructureExtracted"
	StageRepaired           = "Repaired"
	StagePersisted          = "Persisted"
	StageDispatched         = "Dispatched"
	StageComplete           = "Complete"
)

// Service coordinates one submission through the full pipeline:
// extract text, extract structure, repair, persist, dispatch enrichment.
// Stages run strictly sequentially with no retries; retry policy belongs to
// the orchestration layer. Submissions share no mutable state and run fully
// in parallel.
type Service struct {
	LLM        llm.Client
	Repo       Repo
	Dispatcher dispatch.Dispatcher

	// ExtractText overrides PDF text extraction; defaults to
	// extract.TextFromBytes. Exposed for tests.
	ExtractText func(data []byte) (string, error)

	// Per-call timeouts for the two network stages, enforced at the call
	// site so a hung provider cannot hang the process.
	LLMTimeout      time.Duration
	DispatchTimeout time.Duration
}

// SubmitResult is returned when the pipeline reaches Persisted or beyond.
// DispatchErr is set when the record was persisted but the enrichment
// notification failed; the record remains valid in that case.
type SubmitResult struct {
	ID            string
	TrackingToken string
	Record        Record
	DispatchErr   error
}

// Submit runs one resume submission end to end. On success the result
// carries the persisted record identity and the enrichment tracking token.
// Once the record is persisted there is no rollback: a dispatch failure is
// reported through SubmitResult.DispatchErr, not as an overall failure.
func (s *Service) Submit(ctx context.Context, file []byte, owner string) (SubmitResult, error) {
	if owner == "" {
		return SubmitResult{}, &StageError{Stage: StageReceived, Err: errors.New("owner is required")}
	}
	if len(file) == 0 {
		return SubmitResult{}, &StageError{Stage: StageReceived, Err: errors.New("empty document")}
	}

	start := time.Now()
	metrics.IncSubmissionStarted()

	extractText := s.ExtractText
	if extractText == nil {
		extractText = extract.TextFromBytes
	}
	text, err := extractText(file)
	if err != nil {
		return SubmitResult{}, s.fail(owner, StageTextExtracted, err, start)
	}

	raw, err := s.extractStructured(ctx, text)
	if err != nil {
		return SubmitResult{}, s.fail(owner, StageStructureExtracted, err, start)
	}

	res, err := Repair(raw)
	if err != nil {
		return SubmitResult{}, s.fail(owner, StageRepaired, err, start)
	}

	rec, err := s.Repo.Insert(ctx, owner, res, Markdown(res))
	if err != nil {
		return SubmitResult{}, s.fail(owner, StagePersisted, &PersistenceError{Err: err}, start)
	}
	telemetry.Info("submission.persisted", map[string]any{
		"owner":     owner,
		"resume_id": rec.ID,
		"stage":     StagePersisted,
	})

	result := SubmitResult{ID: rec.ID, Record: rec}

	token, err := s.dispatchEnrichment(ctx, owner)
	if err != nil {
		// The persisted record is independently useful; surface the
		// dispatch failure without failing the submission.
		metrics.IncDispatchFailed()
		telemetry.Warn("submission.dispatch_failed", map[string]any{
			"owner":     owner,
			"resume_id": rec.ID,
			"error":     err.Error(),
		})
		result.DispatchErr = err
	} else {
		result.TrackingToken = token
	}

	metrics.IncSubmissionCompleted()
	metrics.ObserveSubmissionDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	telemetry.Info("submission.complete", map[string]any{
		"owner":          owner,
		"resume_id":      rec.ID,
		"tracking_token": result.TrackingToken,
		"stage":          StageComplete,
		"duration_ms":    float64(time.Since(start).Microseconds()) / 1000.0,
	})
	return result, nil
}

// Get returns a persisted record by identity.
func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	if id == "" {
		return Record{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) extractStructured(ctx context.Context, text string) (string, error) {
	if s.LLMTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.LLMTimeout)
		defer cancel()
	}
	return s.LLM.GenerateContent(ctx, llm.BuildExtractPrompt(text))
}

func (s *Service) dispatchEnrichment(ctx context.Context, owner string) (string, error) {
	if s.Dispatcher == nil {
		return "", &dispatch.DispatchError{Err: errors.New("dispatcher not configured")}
	}
	if s.DispatchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.DispatchTimeout)
		defer cancel()
	}
	return s.Dispatcher.Dispatch(ctx, owner)
}

func (s *Service) fail(owner, stage string, err error, start time.Time) error {
	metrics.IncSubmissionFailed()
	telemetry.Error("submission.failed", map[string]any{
		"owner":       owner,
		"stage":       stage,
		"error":       err.Error(),
		"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
	})
	return &StageError{Stage: stage, Err: err}
}
