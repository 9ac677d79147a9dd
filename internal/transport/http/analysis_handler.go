package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "autoreport/internal/errors"
	"autoreport/internal/pipeline"
	"autoreport/internal/schema"
	"autoreport/internal/services"
	"autoreport/internal/validation"
)

// multipartMemory is the part of a multipart upload kept in memory; the rest
// spills to temporary files
const multipartMemory = 32 << 20

// AnalysisHandler handles analysis, summary and canonical data requests
type AnalysisHandler struct {
	service      ReportServiceInterface
	validator    *validation.RequestValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service ReportServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AnalysisHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisHandler{
		service:      service,
		validator:    validation.NewRequestValidator(),
		logger:       logger.With(slog.String("component", "analysis_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the analysis routes. upload wraps only the upload endpoint,
// e.g. with a body size limit.
func (h *AnalysisHandler) Routes(upload ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.With(upload...).Post("/analysis", h.Analyze)
	r.Get("/summary/market", h.GetMarketSummary)
	r.Get("/summary/voc", h.GetVOCSummary)
	r.With(h.DatasetCtx).Get("/data/{dataset}", h.GetData)
	r.Post("/cache/invalidate", h.InvalidateCache)

	return r
}

// AnalysisResponse is the body of a completed analysis
type AnalysisResponse struct {
	RunID       string                 `json:"run_id"`
	Fingerprint string                 `json:"fingerprint"`
	Cached      bool                   `json:"cached"`
	StartedAt   time.Time              `json:"started_at"`
	CompletedAt time.Time              `json:"completed_at"`
	Datasets    []schema.Family        `json:"datasets"`
	Stages      []pipeline.StageResult `json:"stages"`
	Errors      []string               `json:"errors,omitempty"`
}

func newAnalysisResponse(result *pipeline.Result) AnalysisResponse {
	resp := AnalysisResponse{
		RunID:       result.RunID,
		Fingerprint: result.Fingerprint,
		Cached:      result.Cached,
		StartedAt:   result.StartedAt,
		CompletedAt: result.CompletedAt,
		Datasets:    result.Datasets(),
		Stages:      result.Stages,
	}
	if resp.Datasets == nil {
		resp.Datasets = []schema.Family{}
	}
	for _, err := range result.Errors {
		resp.Errors = append(resp.Errors, err.Error())
	}
	return resp
}

// Analyze handles POST /api/analysis. Each multipart file field is named
// after its dataset, e.g. amazon_sales or tiktok_comments.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	uploads, err := h.readUploads(r.MultipartForm)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Analysis requested",
		slog.Int("files", len(uploads)))

	result, err := h.service.Analyze(r.Context(), uploads)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, newAnalysisResponse(result))
}

// readUploads collects one upload per dataset field. Unknown fields and
// repeated files for a dataset are rejected.
func (h *AnalysisHandler) readUploads(form *multipart.Form) ([]services.Upload, error) {
	for field := range form.File {
		if _, err := pipeline.ParseDataset(field); err != nil {
			return nil, apierrors.ErrValidation(field, "unknown dataset field")
		}
	}

	var uploads []services.Upload
	for _, f := range schema.Families() {
		headers := form.File[string(f)]
		if len(headers) == 0 {
			continue
		}
		if len(headers) > 1 {
			return nil, apierrors.ErrValidation(string(f), "only one file per dataset is allowed")
		}

		data, err := readPart(headers[0])
		if err != nil {
			return nil, apierrors.InvalidRequestWithError(err)
		}
		uploads = append(uploads, services.Upload{
			Dataset: string(f),
			Name:    headers[0].Filename,
			Data:    data,
		})
	}

	if len(uploads) == 0 {
		return nil, apierrors.ErrValidation("files", "at least one dataset file is required")
	}
	return uploads, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
	}
	return data, nil
}

// GetMarketSummary handles GET /api/summary/market
func (h *AnalysisHandler) GetMarketSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.MarketSummary(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// GetVOCSummary handles GET /api/summary/voc
func (h *AnalysisHandler) GetVOCSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.VOCSummary(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// DatasetCtx rejects unknown dataset path parameters
func (h *AnalysisHandler) DatasetCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := pipeline.ParseDataset(chi.URLParam(r, "dataset")); err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetData handles GET /api/data/{dataset}?page=&per_page=
func (h *AnalysisHandler) GetData(w http.ResponseWriter, r *http.Request) {
	page, err := h.validator.ParsePageRequest(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	rows, err := h.service.Rows(r.Context(), chi.URLParam(r, "dataset"), page)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, rows)
}

// InvalidateCache handles POST /api/cache/invalidate. The optional
// fingerprint query parameter limits invalidation to one run.
func (h *AnalysisHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	fingerprint := strings.TrimSpace(r.URL.Query().Get("fingerprint"))
	render.JSON(w, r, h.service.InvalidateCache(r.Context(), fingerprint))
}
