package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/developerzohaib786/redsent-ai/internal/domain"
	"github.com/developerzohaib786/redsent-ai/internal/middleware"
	"github.com/developerzohaib786/redsent-ai/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SummaryRequest represents the likes/dislikes generation request
type SummaryRequest struct {
	Reviews      []domain.RedditReview `json:"reviews"`
	ProductTitle string                `json:"productTitle"`
}

// SummaryResponse represents a successful generation
type SummaryResponse struct {
	Success bool                   `json:"success"`
	Data    *service.LikesDislikes `json:"data"`
	Message string                 `json:"message"`
}

// SummaryErrorResponse is the failure body of the generation endpoint
type SummaryErrorResponse struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Details interface{}     `json:"details,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// SummaryHandler handles likes/dislikes generation
type SummaryHandler struct {
	summaryService service.SummaryService
	logger         *zap.Logger
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(summaryService service.SummaryService, logger *zap.Logger) *SummaryHandler {
	return &SummaryHandler{
		summaryService: summaryService,
		logger:         logger,
	}
}

// RegisterRoutes registers the generation route
func (h *SummaryHandler) RegisterRoutes(r chi.Router, mw RouteMiddleware) {
	r.With(mw.rateLimit()).Post("/api/generate-likes-dislikes", h.Generate)
}

func (h *SummaryHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if err := middleware.DecodeJSON(r, &req); err != nil {
		h.respondError(w, service.ErrReviewsRequired)
		return
	}

	result, err := h.summaryService.Summarize(r.Context(), req.Reviews, req.ProductTitle)
	if err != nil {
		h.respondError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, SummaryResponse{
		Success: true,
		Data:    result,
		Message: "Likes and dislikes generated successfully",
	})
}

// respondError writes err with success=false. Raw model output goes under data.
func (h *SummaryHandler) respondError(w http.ResponseWriter, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		h.logger.Error("Error generating likes and dislikes", zap.Error(err))
		middleware.RespondWithJSON(w, http.StatusInternalServerError, SummaryErrorResponse{
			Error: "An error occurred while generating likes and dislikes",
		})
		return
	}

	status := middleware.StatusFor(de.Kind)
	if status >= http.StatusInternalServerError {
		h.logger.Error(de.Message, zap.String("kind", de.Kind.String()), zap.Error(de.Err))
	}

	body := SummaryErrorResponse{Error: de.Message}
	if raw, ok := de.Details.(json.RawMessage); ok {
		body.Data = raw
	} else {
		body.Details = de.Details
	}
	middleware.RespondWithJSON(w, status, body)
}
