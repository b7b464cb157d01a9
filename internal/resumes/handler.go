package resumes

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chistym17/jobgenie/internal/extract"
	"github.com/chistym17/jobgenie/internal/llm"
	"github.com/chistym17/jobgenie/internal/shared/server/respond"
)

const maxUploadBytes = 5 << 20

// Handler exposes the pipeline over HTTP. The HTTP layer itself is a thin
// adapter; all submission semantics live in Service.
type Handler struct {
	svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers resume routes on the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume/upload", h.upload)
	rg.GET("/resume/:id", h.get)
}

type recordResponse struct {
	ID             string            `json:"id"`
	Owner          string            `json:"owner"`
	Name           string            `json:"name"`
	Contact        Contact           `json:"contact"`
	Skills         []any             `json:"skills"`
	Education      []any             `json:"education"`
	Experience     []any             `json:"experience"`
	Projects       []any             `json:"projects"`
	Certifications []any             `json:"certifications"`
	Preferences    map[string]string `json:"preferences"`
	Markdown       string            `json:"markdown"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type uploadResponse struct {
	ID             string         `json:"id"`
	TrackingToken  string         `json:"tracking_token,omitempty"`
	DispatchFailed bool           `json:"dispatch_failed,omitempty"`
	Record         recordResponse `json:"record"`
}

func (h *Handler) upload(c *gin.Context) {
	owner := strings.TrimSpace(c.PostForm("user_email"))
	if owner == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "user_email is required", nil)
		return
	}
	c.Set("owner", owner)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "file is required", nil)
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "Only PDF files are supported", nil)
		return
	}
	if fileHeader.Size > maxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "invalid_request", "File too large", nil)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "Could not read upload", nil)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "Could not read upload", nil)
		return
	}

	result, err := h.svc.Submit(c.Request.Context(), data, owner)
	if err != nil {
		h.respondStageError(c, err)
		return
	}

	c.Set("resumeId", result.ID)
	c.Set("pipelineStage", StageComplete)
	respond.OK(c, uploadResponse{
		ID:             result.ID,
		TrackingToken:  result.TrackingToken,
		DispatchFailed: result.DispatchErr != nil,
		Record:         toRecordResponse(result.Record),
	})
}

func (h *Handler) get(c *gin.Context) {
	rec, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Resume not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "Failed to load resume", nil)
		return
	}
	respond.OK(c, toRecordResponse(rec))
}

func (h *Handler) respondStageError(c *gin.Context, err error) {
	var stageErr *StageError
	stage := ""
	if errors.As(err, &stageErr) {
		stage = stageErr.Stage
		c.Set("pipelineStage", stage)
	}
	details := gin.H{"stage": stage}

	var exErr *extract.ExtractionError
	var provErr *llm.ProviderError
	var malErr *MalformedExtractionError
	var perErr *PersistenceError
	switch {
	case errors.As(err, &exErr):
		respond.Error(c, http.StatusBadRequest, ErrorCodeExtraction, "Document could not be read", details)
	case errors.As(err, &provErr):
		respond.Error(c, http.StatusBadGateway, ErrorCodeProvider, "Resume analysis provider failed", details)
	case errors.As(err, &malErr):
		respond.Error(c, http.StatusBadGateway, ErrorCodeMalformed, "Provider returned unparseable output", details)
	case errors.As(err, &perErr):
		respond.Error(c, http.StatusInternalServerError, ErrorCodePersistence, "Failed to persist resume", details)
	default:
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "Resume processing failed", details)
	}
}

func toRecordResponse(rec Record) recordResponse {
	return recordResponse{
		ID:             rec.ID,
		Owner:          rec.Owner,
		Name:           rec.Resume.Name,
		Contact:        rec.Resume.Contact,
		Skills:         rec.Resume.Skills,
		Education:      rec.Resume.Education,
		Experience:     rec.Resume.Experience,
		Projects:       rec.Resume.Projects,
		Certifications: rec.Resume.Certifications,
		Preferences:    rec.Resume.Preferences,
		Markdown:       rec.Markdown,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
}
