package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/shoplane/storefront/internal/cart/app"
)

type stubCatalog struct {
	products []app.Product
	err      error
}

func (s stubCatalog) FindByIDs(ctx context.Context, ids []string) ([]app.Product, error) {
	return s.products, s.err
}

func newTestHandler(catalog app.CatalogReader) *Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(app.NewService(catalog), log)
}

func doVerify(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	h.Register(mux)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/verify", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestVerifyRejectsBadBodies(t *testing.T) {
	h := newTestHandler(stubCatalog{})

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"items":`},
		{"missing items", `{}`},
		{"items not a list", `{"items": "A"}`},
		{"empty items", `{"items": []}`},
		{"zero quantity", `{"items": [{"id":"A","quantity":0}]}`},
		{"missing id", `{"items": [{"quantity":1}]}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := doVerify(t, h, c.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}

			var body struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if body.Error != "Invalid request body" {
				t.Fatalf("got error label %q", body.Error)
			}
		})
	}
}

func TestVerifyHappyPath(t *testing.T) {
	h := newTestHandler(stubCatalog{products: []app.Product{
		{ID: "A", Name: "Mug", Price: decimal.RequireFromString("12"), Stock: 3, Image: "https://img/a.jpg"},
		{ID: "C", Name: "Lamp", Price: decimal.RequireFromString("5"), Stock: 10},
	}})

	body := `{"items":[
		{"id":"A","name":"Mug","price":10,"quantity":5},
		{"id":"B","name":"Gone","price":9,"quantity":1},
		{"id":"C","name":"Lamp","price":5,"quantity":2}
	]}`

	rec := doVerify(t, h, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success    bool `json:"success"`
		ValidItems []struct {
			ID       string `json:"id"`
			Name     string `json:"name"`
			Price    string `json:"price"`
			Quantity int    `json:"quantity"`
		} `json:"validItems"`
		RemovedItems []struct {
			ID     string `json:"id"`
			Reason string `json:"reason"`
		} `json:"removedItems"`
		UpdatedItems []struct {
			OldQuantity int `json:"oldQuantity"`
			NewQuantity int `json:"newQuantity"`
		} `json:"updatedItems"`
		NeedsUpdate bool   `json:"needsUpdate"`
		ValidCount  int    `json:"validCount"`
		Message     string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !resp.Success || !resp.NeedsUpdate {
		t.Fatalf("unexpected flags: %+v", resp)
	}
	if resp.ValidCount != 2 || len(resp.ValidItems) != 2 {
		t.Fatalf("expected 2 valid items, got %+v", resp)
	}
	if resp.ValidItems[0].Quantity != 3 || resp.ValidItems[0].Price != "12" {
		t.Fatalf("expected clamped quantity with catalog price, got %+v", resp.ValidItems[0])
	}
	if len(resp.RemovedItems) != 1 || resp.RemovedItems[0].ID != "B" {
		t.Fatalf("expected B removed, got %+v", resp.RemovedItems)
	}
	if len(resp.UpdatedItems) != 1 || resp.UpdatedItems[0].OldQuantity != 5 || resp.UpdatedItems[0].NewQuantity != 3 {
		t.Fatalf("unexpected updated items: %+v", resp.UpdatedItems)
	}
	if want := "Cart validation complete. Found 2 valid items, removed 1, updated 1."; resp.Message != want {
		t.Fatalf("got message %q", resp.Message)
	}
}

func TestVerifyCatalogFailure(t *testing.T) {
	h := newTestHandler(stubCatalog{err: errors.New("connection refused")})

	rec := doVerify(t, h, `{"items":[{"id":"A","quantity":1}]}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Error == "" || body.Message == "" {
		t.Fatalf("expected error and message fields, got %+v", body)
	}
	if strings.Contains(rec.Body.String(), "validItems") {
		t.Fatal("no partial result may be returned on catalog failure")
	}
}
