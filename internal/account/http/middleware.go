package http

import (
	"context"
	"net/http"

	"github.com/shoplane/storefront/internal/account/app"
	"github.com/shoplane/storefront/internal/account/domain"
	"github.com/shoplane/storefront/pkg/httpx"
)

type ctxKey struct{}

// Auth resolves the session cookie to a user for protected routes.
type Auth struct {
	svc *app.Service
}

func NewAuth(svc *app.Service) *Auth {
	return &Auth{svc: svc}
}

func (a *Auth) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(SessionCookie)
		if err != nil {
			httpx.Error(w, http.StatusUnauthorized, "Unauthorized", "sign in required")
			return
		}

		u, err := a.svc.Authenticate(r.Context(), c.Value)
		if err != nil {
			httpx.Error(w, http.StatusUnauthorized, "Unauthorized", "sign in required")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, u)))
	}
}

func UserFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(domain.User)
	return u, ok
}
