package app

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/shoplane/storefront/internal/catalog/domain"
)

type fakeRepo struct {
	lastLimit   int
	lastIDs     []string
	findByIDsIn int
}

func (f *fakeRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	return p, nil
}

func (f *fakeRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	return domain.Product{}, nil
}

func (f *fakeRepo) List(ctx context.Context, query string, limit int, cursor string) ([]domain.Product, string, error) {
	f.lastLimit = limit
	return nil, "", nil
}

func (f *fakeRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	f.findByIDsIn++
	f.lastIDs = ids
	return nil, nil
}

func (f *fakeRepo) AdjustStock(ctx context.Context, id string, delta int) (domain.Product, error) {
	return domain.Product{}, nil
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewService(&fakeRepo{})

	t.Run("empty name -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), "   ", "x", decimal.NewFromInt(100), 5, nil)
		if err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("non-positive price -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), "Keyboard", "x", decimal.Zero, 5, nil)
		if err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("negative stock -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), "Keyboard", "x", decimal.NewFromInt(100), -1, nil)
		if err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("valid -> trimmed name kept", func(t *testing.T) {
		p, err := svc.CreateProduct(context.Background(), "  Keyboard ", "x", decimal.NewFromInt(100), 5, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Name != "Keyboard" {
			t.Fatalf("expected trimmed name, got %q", p.Name)
		}
	})
}

func TestListProductsLimitClamp(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	cases := []struct {
		in   int
		want int
	}{
		{0, 20},
		{-3, 20},
		{50, 50},
		{500, 100},
	}
	for _, c := range cases {
		if _, _, err := svc.ListProducts(context.Background(), "", c.in, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.lastLimit != c.want {
			t.Fatalf("limit %d: expected clamp to %d, got %d", c.in, c.want, repo.lastLimit)
		}
	}
}

func TestFindProductsByIDs(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	t.Run("deduplicates and trims ids", func(t *testing.T) {
		_, err := svc.FindProductsByIDs(context.Background(), []string{"a", " a ", "", "b"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.lastIDs) != 2 || repo.lastIDs[0] != "a" || repo.lastIDs[1] != "b" {
			t.Fatalf("expected [a b], got %v", repo.lastIDs)
		}
	})

	t.Run("all-empty input skips the repo", func(t *testing.T) {
		before := repo.findByIDsIn
		if _, err := svc.FindProductsByIDs(context.Background(), []string{"", "  "}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.findByIDsIn != before {
			t.Fatal("repo should not be queried for an empty id set")
		}
	})
}

func TestAdjustStockValidation(t *testing.T) {
	svc := NewService(&fakeRepo{})

	if _, err := svc.AdjustStock(context.Background(), "", 1); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.AdjustStock(context.Background(), "p1", 0); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
