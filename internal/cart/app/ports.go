package app

import (
	"context"

	"github.com/shopspring/decimal"
)

// Product is the catalog snapshot the verifier works from.
type Product struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Stock int
	Image string
}

// CatalogReader is the batch point-lookup consumed by cart verification.
// Records for unknown ids are simply absent from the result.
type CatalogReader interface {
	FindByIDs(ctx context.Context, ids []string) ([]Product, error)
}
