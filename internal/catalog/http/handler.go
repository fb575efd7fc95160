// Package http exposes the storefront catalog browsing endpoints.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/shoplane/storefront/internal/catalog/app"
	"github.com/shoplane/storefront/internal/catalog/domain"
	"github.com/shoplane/storefront/pkg/httpx"
)

type Handler struct {
	svc *app.Service
	log *slog.Logger
}

func NewHandler(svc *app.Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products", h.list)
	mux.HandleFunc("GET /api/products/{id}", h.get)
}

type productDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Images      []string        `json:"images"`
}

type listResponse struct {
	Products   []productDTO `json:"products"`
	NextCursor string       `json:"nextCursor,omitempty"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httpx.Error(w, http.StatusBadRequest, "Invalid request", "limit must be an integer")
			return
		}
		limit = n
	}

	products, next, err := h.svc.ListProducts(r.Context(), q.Get("q"), limit, q.Get("cursor"))
	if err != nil {
		h.writeErr(w, r, err)
		return
	}

	out := make([]productDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toDTO(p))
	}

	httpx.JSON(w, http.StatusOK, listResponse{Products: out, NextCursor: next})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toDTO(p))
}

func toDTO(p domain.Product) productDTO {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return productDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Images:      images,
	}
}

func (h *Handler) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		httpx.Error(w, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, app.ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "Not found", "product not found")
	default:
		h.log.Error("catalog request failed", slog.String("path", r.URL.Path), slog.Any("err", err))
		httpx.Error(w, http.StatusInternalServerError, "Internal error", "unexpected error")
	}
}
