package transport

import (
	"net/http"

	"github.com/developerzohaib786/redsent-ai/internal/domain"
	"github.com/developerzohaib786/redsent-ai/internal/identity"
	"github.com/developerzohaib786/redsent-ai/internal/middleware"
	"github.com/developerzohaib786/redsent-ai/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UpdateProductRequest carries the product id alongside the full replacement content
type UpdateProductRequest struct {
	ID string `json:"id"`
	service.ProductInput
}

// DeleteProductResponse represents the delete response
type DeleteProductResponse struct {
	Message        string          `json:"message"`
	DeletedProduct *domain.Product `json:"deletedProduct"`
}

// ToggleLikeResponse represents the like toggle response
type ToggleLikeResponse struct {
	Success         bool   `json:"success"`
	Liked           bool   `json:"liked"`
	LikeCount       int    `json:"likeCount"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	Message         string `json:"message"`
}

// LikeStatusResponse represents the like status response
type LikeStatusResponse struct {
	LikeCount          int  `json:"likeCount"`
	UserHasLiked       bool `json:"userHasLiked"`
	IsAuthenticated    bool `json:"isAuthenticated"`
	AuthenticatedLikes int  `json:"authenticatedLikes"`
	AnonymousLikes     int  `json:"anonymousLikes"`
}

// ProductHandler handles HTTP requests for products and their likes
type ProductHandler struct {
	productService service.ProductService
	likeService    service.LikeService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, likeService service.LikeService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		likeService:    likeService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, mw RouteMiddleware) {
	r.Route("/api/auth/post", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(mw.writes()...)
			r.Post("/", h.Create)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
		})

		r.Route("/{id}/like", func(r chi.Router) {
			r.Use(mw.OptionalAuth)
			r.Get("/", h.LikeStatus)
			r.With(mw.rateLimit()).Post("/", h.ToggleLike)
		})
	})
}

// List returns every product, newest first
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err, "Failed to fetch products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.productService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err, "Failed to fetch product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Create handles product creation
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.ProductInput
	if err := middleware.DecodeJSON(r, &input); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.productService.Create(r.Context(), input)
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err, "Failed to create product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Update replaces a product; the id travels in the body
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateProductRequest
	if err := middleware.DecodeJSON(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.productService.Update(r.Context(), req.ID, req.ProductInput)
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err, "Failed to update product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete removes the product named by the id query parameter
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.productService.Delete(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err, "Failed to delete product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, DeleteProductResponse{
		Message:        "Product deleted successfully",
		DeletedProduct: deleted,
	})
}

// ToggleLike likes or unlikes a product for the session user or the anonymous visitor
func (h *ProductHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	result, err := h.likeService.Toggle(r.Context(), chi.URLParam(r, "id"), identity.Resolve(r))
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err, "Failed to toggle like")
		return
	}

	message := "Product unliked"
	if result.Liked {
		message = "Product liked"
	}

	middleware.RespondWithJSON(w, http.StatusOK, ToggleLikeResponse{
		Success:         true,
		Liked:           result.Liked,
		LikeCount:       result.LikeCount,
		IsAuthenticated: result.IsAuthenticated,
		Message:         message,
	})
}

func (h *ProductHandler) LikeStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.likeService.Status(r.Context(), chi.URLParam(r, "id"), identity.Resolve(r))
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err, "Failed to check like status")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, LikeStatusResponse{
		LikeCount:          status.LikeCount,
		UserHasLiked:       status.UserHasLiked,
		IsAuthenticated:    status.IsAuthenticated,
		AuthenticatedLikes: status.AuthenticatedLikes,
		AnonymousLikes:     status.AnonymousLikes,
	})
}
