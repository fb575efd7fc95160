package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/shoplane/storefront/internal/catalog/app"
	"github.com/shoplane/storefront/internal/catalog/domain"
)

type stubRepo struct {
	products []domain.Product
}

func (s stubRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	return p, nil
}

func (s stubRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, app.ErrNotFound
}

func (s stubRepo) List(ctx context.Context, query string, limit int, cursor string) ([]domain.Product, string, error) {
	return s.products, "", nil
}

func (s stubRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	return nil, nil
}

func (s stubRepo) AdjustStock(ctx context.Context, id string, delta int) (domain.Product, error) {
	return domain.Product{}, nil
}

func newTestMux(repo app.ProductRepo) *http.ServeMux {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	mux := http.NewServeMux()
	NewHandler(app.NewService(repo), log).Register(mux)
	return mux
}

func TestListProducts(t *testing.T) {
	mux := newTestMux(stubRepo{products: []domain.Product{
		{ID: "p1", Name: "Mug", Price: decimal.RequireFromString("12.50"), Stock: 3},
	}})

	t.Run("ok", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var resp struct {
			Products []struct {
				ID    string `json:"id"`
				Price string `json:"price"`
			} `json:"products"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(resp.Products) != 1 || resp.Products[0].Price != "12.50" {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("bad limit -> 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products?limit=lots", nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestGetProduct(t *testing.T) {
	mux := newTestMux(stubRepo{products: []domain.Product{
		{ID: "p1", Name: "Mug", Price: decimal.NewFromInt(12), Stock: 3},
	}})

	t.Run("found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/p1", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("missing -> 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/ghost", nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
