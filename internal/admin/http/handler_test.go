package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	adminapp "github.com/shoplane/storefront/internal/admin/app"
	catalogapp "github.com/shoplane/storefront/internal/catalog/app"
	catalogdomain "github.com/shoplane/storefront/internal/catalog/domain"
	"github.com/shoplane/storefront/pkg/config"
)

type stubRepo struct{}

func (stubRepo) Create(ctx context.Context, p catalogdomain.Product) (catalogdomain.Product, error) {
	p.ID = "p1"
	return p, nil
}

func (stubRepo) Get(ctx context.Context, id string) (catalogdomain.Product, error) {
	return catalogdomain.Product{}, catalogapp.ErrNotFound
}

func (stubRepo) List(ctx context.Context, query string, limit int, cursor string) ([]catalogdomain.Product, string, error) {
	return nil, "", nil
}

func (stubRepo) FindByIDs(ctx context.Context, ids []string) ([]catalogdomain.Product, error) {
	return nil, nil
}

func (stubRepo) AdjustStock(ctx context.Context, id string, delta int) (catalogdomain.Product, error) {
	return catalogdomain.Product{ID: id, Stock: 7}, nil
}

func newTestMux(creds config.BreakGlass) *http.ServeMux {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	bg := adminapp.NewBreakGlass(creds, 15*time.Minute, log)
	catalog := catalogapp.NewService(stubRepo{})

	mux := http.NewServeMux()
	NewHandler(bg, catalog, nil, false, log).Register(mux)
	return mux
}

func postLogin(mux *http.ServeMux, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body)))
	return rec
}

func TestAdminLoginDisabled(t *testing.T) {
	mux := newTestMux(config.BreakGlass{})

	rec := postLogin(mux, `{"username":"ops","password":"s3cret"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 when break-glass is unconfigured, got %d", rec.Code)
	}
}

func TestAdminLoginRejected(t *testing.T) {
	mux := newTestMux(config.BreakGlass{User: "ops", Pass: "s3cret"})

	rec := postLogin(mux, `{"username":"ops","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("no cookie may be issued on a failed login")
	}
}

func TestAdminSessionGuardsMutations(t *testing.T) {
	mux := newTestMux(config.BreakGlass{User: "ops", Pass: "s3cret"})

	t.Run("no session -> 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/api/admin/products/p1/stock", strings.NewReader(`{"delta":5}`))
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	rec := postLogin(mux, `{"username":"ops","password":"s3cret"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || !cookies[0].HttpOnly {
		t.Fatalf("expected one HttpOnly admin cookie, got %+v", cookies)
	}

	t.Run("with session -> allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/api/admin/products/p1/stock", strings.NewReader(`{"delta":5}`))
		req.AddCookie(cookies[0])
		out := httptest.NewRecorder()
		mux.ServeHTTP(out, req)
		if out.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", out.Code, out.Body.String())
		}
	})

	t.Run("create product validation surfaces as 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/products", strings.NewReader(`{"name":"","price":0}`))
		req.AddCookie(cookies[0])
		out := httptest.NewRecorder()
		mux.ServeHTTP(out, req)
		if out.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", out.Code)
		}
	})
}
