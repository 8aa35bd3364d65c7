package transport

import (
	"net/http"

	"github.com/developerzohaib786/redsent-ai/internal/middleware"
	"github.com/developerzohaib786/redsent-ai/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CommentHandler handles HTTP requests for product comments
type CommentHandler struct {
	commentService service.CommentService
	logger         *zap.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService service.CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		logger:         logger,
	}
}

// RegisterRoutes registers all comment routes
func (h *CommentHandler) RegisterRoutes(r chi.Router, mw RouteMiddleware) {
	r.Route("/api/auth/comment", func(r chi.Router) {
		r.Get("/", h.List)
		r.With(mw.Auth).Post("/", h.Create)
	})
}

// List returns the comments for the product given by the videoId query parameter
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.commentService.ListByVideo(r.Context(), r.URL.Query().Get("videoId"))
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err, "Failed to fetch comments")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, comments)
}

// Create posts a comment. A body without userId is attributed to the session user.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CommentInput
	if err := middleware.DecodeJSON(r, &input); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if input.UserID == "" {
		input.UserID, _ = middleware.GetUserID(r.Context())
	}

	comment, err := h.commentService.Create(r.Context(), input)
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err, "Failed to create comment")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, comment)
}
