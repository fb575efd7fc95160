// Package http exposes the audited admin surface: break-glass login, DB
// diagnostics, and catalog management.
package http

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	adminapp "github.com/shoplane/storefront/internal/admin/app"
	catalogapp "github.com/shoplane/storefront/internal/catalog/app"
	"github.com/shoplane/storefront/pkg/httpx"
	"github.com/shoplane/storefront/pkg/postgres"
)

const adminCookie = "admin_session"

type Handler struct {
	breakGlass *adminapp.BreakGlass
	catalog    *catalogapp.Service
	db         *sql.DB
	secure     bool
	log        *slog.Logger
}

func NewHandler(bg *adminapp.BreakGlass, catalog *catalogapp.Service, db *sql.DB, secure bool, log *slog.Logger) *Handler {
	return &Handler{breakGlass: bg, catalog: catalog, db: db, secure: secure, log: log}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/admin/login", h.login)
	mux.HandleFunc("POST /api/admin/logout", h.requireAdmin(h.logout))
	mux.HandleFunc("GET /api/admin/diagnostics/db", h.requireAdmin(h.dbDiagnostics))
	mux.HandleFunc("POST /api/admin/products", h.requireAdmin(h.createProduct))
	mux.HandleFunc("PATCH /api/admin/products/{id}/stock", h.requireAdmin(h.adjustStock))
}

func (h *Handler) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(adminCookie)
		if err != nil || h.breakGlass.Authorize(c.Value) != nil {
			httpx.Error(w, http.StatusUnauthorized, "Unauthorized", "admin session required")
			return
		}
		next(w, r)
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body", "body must be a JSON object")
		return
	}

	token, err := h.breakGlass.Login(r.RemoteAddr, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, adminapp.ErrDisabled) {
			httpx.Error(w, http.StatusForbidden, "Forbidden", "break-glass access is not configured")
			return
		}
		httpx.Error(w, http.StatusUnauthorized, "Unauthorized", "invalid credentials")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     adminCookie,
		Value:    token,
		Path:     "/api/admin",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(adminCookie); err == nil {
		h.breakGlass.Revoke(c.Value)
	}
	w.WriteHeader(http.StatusNoContent)
}

type dbDiagnostics struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latencyMs"`
	OpenConns int    `json:"openConnections"`
	InUse     int    `json:"inUse"`
	Idle      int    `json:"idle"`
	WaitCount int64  `json:"waitCount"`
}

func (h *Handler) dbDiagnostics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	stats := h.db.Stats()
	out := dbDiagnostics{
		Status:    "ok",
		OpenConns: stats.OpenConnections,
		InUse:     stats.InUse,
		Idle:      stats.Idle,
		WaitCount: stats.WaitCount,
	}

	latency, err := postgres.HealthCheck(ctx, h.db)
	if err != nil {
		h.log.Error("db health check failed", slog.Any("err", err))
		out.Status = "unreachable"
		httpx.JSON(w, http.StatusServiceUnavailable, out)
		return
	}
	out.LatencyMS = latency.Milliseconds()

	httpx.JSON(w, http.StatusOK, out)
}

type createProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Images      []string        `json:"images"`
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body", "body must be a JSON object")
		return
	}

	p, err := h.catalog.CreateProduct(r.Context(), req.Name, req.Description, req.Price, req.Stock, req.Images)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	h.log.Info("product created", slog.String("product_id", p.ID), slog.String("name", p.Name))
	httpx.JSON(w, http.StatusCreated, map[string]string{"id": p.ID})
}

type adjustStockRequest struct {
	Delta int `json:"delta"`
}

func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	var req adjustStockRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body", "body must be a JSON object")
		return
	}

	id := r.PathValue("id")
	p, err := h.catalog.AdjustStock(r.Context(), id, req.Delta)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	h.log.Info("stock adjusted",
		slog.String("product_id", id),
		slog.Int("delta", req.Delta),
		slog.Int("stock", p.Stock),
	)
	httpx.JSON(w, http.StatusOK, map[string]any{"id": p.ID, "stock": p.Stock})
}

func (h *Handler) writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalogapp.ErrInvalidInput):
		httpx.Error(w, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, catalogapp.ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "Not found", "product not found")
	case errors.Is(err, catalogapp.ErrInsufficientStock):
		httpx.Error(w, http.StatusConflict, "Conflict", "stock cannot go negative")
	default:
		h.log.Error("admin catalog request failed", slog.Any("err", err))
		httpx.Error(w, http.StatusInternalServerError, "Internal error", "unexpected error")
	}
}
