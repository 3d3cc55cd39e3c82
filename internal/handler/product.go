package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TanishqDodiya/elyf-EVspare/internal/catalog"
)

// ProductHandler serves the read-only catalog endpoints.
type ProductHandler struct {
	repo catalog.Repository
}

func NewProductHandler(repo catalog.Repository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

func (h *ProductHandler) RegisterRoutes(router chi.Router) {
	router.Get("/products", h.ListProducts)
	router.Get("/products/{id}", h.GetProductByID)
	router.Get("/categories", h.ListCategories)
}

// ListProducts handles GET /products with filtering and pagination.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := catalog.ListFilter{
		CategorySlug: query.Get("category"),
		Search:       query.Get("search"),
		Page:         queryInt(r, "page", 1),
		Limit:        queryInt(r, "limit", 20),
	}
	if raw := query.Get("inStock"); raw != "" {
		inStock := raw == "true"
		filter.InStock = &inStock
	}
	if raw := query.Get("featured"); raw != "" {
		featured := raw == "true"
		filter.Featured = &featured
	}

	filter.Normalize()

	products, total, err := h.repo.List(r.Context(), filter)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), clientMessage(err))
		return
	}

	respondWithJSON(w, http.StatusOK, response{
		Success:    true,
		Data:       products,
		Pagination: newPagination(filter.Page, filter.Limit, total),
	})
}

// GetProductByID handles GET /products/{id}.
func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "id is required")
		return
	}

	product, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), clientMessage(err))
		return
	}

	respondWithJSON(w, http.StatusOK, response{Success: true, Data: product})
}

// ListCategories handles GET /categories.
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.ListCategories(r.Context())
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), clientMessage(err))
		return
	}

	respondWithJSON(w, http.StatusOK, response{Success: true, Data: categories})
}
