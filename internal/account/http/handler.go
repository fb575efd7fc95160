// Package http exposes registration, login and session endpoints. The
// session token travels in an HttpOnly cookie; the client never sees it
// as JSON.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/shoplane/storefront/internal/account/app"
	"github.com/shoplane/storefront/internal/account/domain"
	"github.com/shoplane/storefront/pkg/httpx"
)

const SessionCookie = "session"

type Handler struct {
	svc    *app.Service
	secure bool
	log    *slog.Logger
}

// NewHandler builds the account handler. secure controls the cookie Secure
// flag and should be true everywhere except local dev.
func NewHandler(svc *app.Service, secure bool, log *slog.Logger) *Handler {
	return &Handler{svc: svc, secure: secure, log: log}
}

func (h *Handler) Register(mux *http.ServeMux, auth *Auth) {
	mux.HandleFunc("POST /api/auth/register", h.register)
	mux.HandleFunc("POST /api/auth/login", h.login)
	mux.HandleFunc("POST /api/auth/logout", h.logout)
	mux.HandleFunc("GET /api/auth/me", auth.RequireUser(h.me))
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type userDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body", "body must be a JSON object")
		return
	}

	u, err := h.svc.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			httpx.Error(w, http.StatusBadRequest, "Invalid request", "email, name and a password of at least 8 characters are required")
		case errors.Is(err, app.ErrEmailTaken):
			httpx.Error(w, http.StatusConflict, "Conflict", "email already registered")
		default:
			h.log.Error("registration failed", slog.Any("err", err))
			httpx.Error(w, http.StatusInternalServerError, "Internal error", "Failed to register")
		}
		return
	}

	httpx.JSON(w, http.StatusCreated, toDTO(u))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body", "body must be a JSON object")
		return
	}

	session, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			httpx.Error(w, http.StatusUnauthorized, "Unauthorized", "invalid email or password")
			return
		}
		h.log.Error("login failed", slog.Any("err", err))
		httpx.Error(w, http.StatusInternalServerError, "Internal error", "Failed to log in")
		return
	}

	http.SetCookie(w, h.sessionCookie(session.Token, session.ExpiresAt))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if err := h.svc.Logout(r.Context(), c.Value); err != nil {
			h.log.Warn("logout failed", slog.Any("err", err))
		}
	}

	http.SetCookie(w, h.sessionCookie("", time.Unix(0, 0)))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Unauthorized", "not signed in")
		return
	}
	httpx.JSON(w, http.StatusOK, toDTO(u))
}

func (h *Handler) sessionCookie(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func toDTO(u domain.User) userDTO {
	return userDTO{ID: u.ID, Email: u.Email, Name: u.Name}
}
