package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/shoplane/storefront/internal/checkout/app"
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
	mux.HandleFunc("POST /api/checkout/quote", h.quote)
}

type quoteRequest struct {
	Items []struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
	} `json:"items"`
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body", "body must be a JSON object with an items array")
		return
	}

	lines := make([]app.CartLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, app.CartLine{ProductID: it.ID, Quantity: it.Quantity})
	}

	q, err := h.svc.Quote(r.Context(), lines)
	if err != nil {
		if errors.Is(err, app.ErrEmptyCart) {
			httpx.Error(w, http.StatusBadRequest, "Invalid request body", "cart is empty")
			return
		}
		h.log.Error("quote failed", slog.Int("items", len(lines)), slog.Any("err", err))
		httpx.Error(w, http.StatusInternalServerError, "Internal error", "Failed to quote cart")
		return
	}

	httpx.JSON(w, http.StatusOK, q)
}
