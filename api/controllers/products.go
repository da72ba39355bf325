package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vaporvista/storefront-backend/api/responses"
	"github.com/vaporvista/storefront-backend/internal/catalog"
	"github.com/vaporvista/storefront-backend/pkg/logger"
)

const (
	defaultPageSize = 24
	maxPageSize     = 100
)

type ProductsController struct {
	catalog catalog.Service
	logg    *logger.Logger
}

func NewProductsController(svc catalog.Service, logg *logger.Logger) *ProductsController {
	return &ProductsController{catalog: svc, logg: logg}
}

// List returns active products, featured first.
func (c *ProductsController) List(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultPageSize)
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	products, err := c.catalog.List(r.Context(), limit, offset)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteJSON(w, http.StatusOK, products)
}

// GetBySlug returns a single product by its storefront slug.
func (c *ProductsController) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	product, err := c.catalog.GetBySlug(r.Context(), slug)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteJSON(w, http.StatusOK, product)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
