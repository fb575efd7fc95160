// Package http exposes the cart verification endpoint.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/shoplane/storefront/internal/cart/app"
	"github.com/shoplane/storefront/internal/cart/domain"
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
	mux.HandleFunc("POST /api/cart/verify", h.verify)
}

type verifyRequest struct {
	Items []domain.LineItem `json:"items"`
}

type verifyResponse struct {
	Success bool `json:"success"`
	domain.Result
	ValidCount int    `json:"validCount"`
	Message    string `json:"message"`
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body", "body must be a JSON object with an items array")
		return
	}

	if len(req.Items) == 0 {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body", "items must be a non-empty array")
		return
	}
	for i, it := range req.Items {
		if it.ID == "" || it.Quantity < 1 {
			httpx.Error(w, http.StatusBadRequest, "Invalid request body",
				fmt.Sprintf("items[%d]: id is required and quantity must be at least 1", i))
			return
		}
	}

	res, err := h.svc.Verify(r.Context(), req.Items)
	if err != nil {
		h.log.Error("cart verification failed", slog.Int("items", len(req.Items)), slog.Any("err", err))
		httpx.Error(w, http.StatusInternalServerError, "Internal error", "Failed to verify cart. Please try again.")
		return
	}

	httpx.JSON(w, http.StatusOK, verifyResponse{
		Success:    true,
		Result:     res,
		ValidCount: len(res.ValidItems),
		Message: fmt.Sprintf(
			"Cart validation complete. Found %d valid items, removed %d, updated %d.",
			len(res.ValidItems), len(res.RemovedItems), len(res.UpdatedItems),
		),
	})
}
