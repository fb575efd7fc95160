package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/shoplane/storefront/internal/checkout/domain"
)

type CartLine struct {
	ProductID string
	Quantity  int
}

type Product struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

type Service struct {
	catalog CatalogReader

	maxConcurrent int
}

func NewService(catalog CatalogReader, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	return &Service{
		catalog:       catalog,
		maxConcurrent: maxConcurrent,
	}
}

var ErrEmptyCart = errors.New("cart is empty")

// Quote prices a verified cart. Lines are expected to have passed cart
// verification already; prices are still re-read from the catalog so a quote
// never relies on client-asserted amounts.
func (s *Service) Quote(ctx context.Context, items []CartLine) (domain.Quote, error) {
	if len(items) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}

	lines := make([]domain.QuoteLine, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range items {
		g.Go(func() error {
			it := items[idx]
			if it.Quantity <= 0 {
				return fmt.Errorf("quantity must be greater than zero: %d", it.Quantity)
			}

			product, err := s.catalog.GetProduct(ctx, it.ProductID)
			if err != nil {
				return fmt.Errorf("failed to get product %s: %w", it.ProductID, err)
			}

			qty := decimal.NewFromInt(int64(it.Quantity))
			lines[idx] = domain.QuoteLine{
				ProductID: product.ID,
				Name:      product.Name,
				Quantity:  it.Quantity,
				UnitPrice: product.Price,
				LineTotal: product.Price.Mul(qty),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Quote{}, err
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal)
	}

	return domain.Quote{Lines: lines, Total: total}, nil
}
