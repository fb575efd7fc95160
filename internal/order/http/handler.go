// Package http exposes checkout order placement and order confirmation.
// Order placement re-verifies the submitted cart against the catalog first;
// a cart that fails verification is never turned into an order.
package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	accounthttp "github.com/shoplane/storefront/internal/account/http"
	cartapp "github.com/shoplane/storefront/internal/cart/app"
	cartdomain "github.com/shoplane/storefront/internal/cart/domain"
	"github.com/shoplane/storefront/internal/order/app"
	"github.com/shoplane/storefront/internal/order/domain"
	"github.com/shoplane/storefront/pkg/httpx"
)

type Handler struct {
	orders *app.Service
	cart   *cartapp.Service
	log    *slog.Logger
}

func NewHandler(orders *app.Service, cart *cartapp.Service, log *slog.Logger) *Handler {
	return &Handler{orders: orders, cart: cart, log: log}
}

func (h *Handler) Register(mux *http.ServeMux, auth *accounthttp.Auth) {
	mux.HandleFunc("POST /api/orders", auth.RequireUser(h.create))
	mux.HandleFunc("GET /api/orders/{id}", auth.RequireUser(h.get))
}

type createRequest struct {
	Items    []cartdomain.LineItem `json:"items"`
	Shipping decimal.Decimal       `json:"shipping"`
}

type orderItemDTO struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type orderDTO struct {
	ID        string          `json:"id"`
	Status    string          `json:"status"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
	Items     []orderItemDTO  `json:"items"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	user, ok := accounthttp.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Unauthorized", "sign in to place an order")
		return
	}

	var req createRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body", "body must be a JSON object with an items array")
		return
	}
	if len(req.Items) == 0 {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body", "items must be a non-empty array")
		return
	}

	verified, err := h.cart.Verify(r.Context(), req.Items)
	if err != nil {
		h.log.Error("pre-order cart verification failed", slog.Any("err", err))
		httpx.Error(w, http.StatusInternalServerError, "Internal error", "Failed to verify cart")
		return
	}
	if verified.NeedsUpdate {
		// The client-held cart is stale; hand the corrections back instead
		// of silently ordering something else.
		httpx.JSON(w, http.StatusConflict, verified)
		return
	}

	items := make([]domain.OrderItemRequest, 0, len(verified.ValidItems))
	for _, it := range verified.ValidItems {
		items = append(items, domain.OrderItemRequest{
			ProductID: it.ID,
			Name:      it.Name,
			UnitPrice: it.Price,
			Quantity:  it.Quantity,
		})
	}

	order, err := h.orders.CreateOrder(r.Context(), domain.CreateOrderRequest{
		UserID:   user.ID,
		Shipping: req.Shipping,
		Items:    items,
	})
	if err != nil {
		if errors.Is(err, app.ErrInsufficientStock) {
			httpx.Error(w, http.StatusConflict, "Conflict", fmt.Sprintf("stock changed during checkout: %v", err))
			return
		}
		h.log.Error("order creation failed", slog.String("user_id", user.ID), slog.Any("err", err))
		httpx.Error(w, http.StatusInternalServerError, "Internal error", "Failed to create order")
		return
	}

	httpx.JSON(w, http.StatusCreated, toDTO(order))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	user, ok := accounthttp.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Unauthorized", "sign in to view orders")
		return
	}

	order, err := h.orders.GetOrder(r.Context(), r.PathValue("id"), user.ID)
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "Not found", "order not found")
			return
		}
		h.log.Error("order lookup failed", slog.Any("err", err))
		httpx.Error(w, http.StatusInternalServerError, "Internal error", "Failed to load order")
		return
	}

	httpx.JSON(w, http.StatusOK, toDTO(order))
}

func toDTO(o domain.Order) orderDTO {
	items := make([]orderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemDTO{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal,
		})
	}

	return orderDTO{
		ID:        o.ID,
		Status:    o.Status,
		Subtotal:  o.Subtotal,
		Shipping:  o.Shipping,
		Total:     o.Total,
		Items:     items,
		CreatedAt: o.CreatedAt,
	}
}
