package app

import (
	"context"
	"fmt"

	"github.com/shoplane/storefront/internal/cart/domain"
)

// Service verifies client-held carts against live catalog state. It is
// read-only: stock is never mutated here, only at order placement.
type Service struct {
	catalog CatalogReader
}

func NewService(catalog CatalogReader) *Service {
	return &Service{catalog: catalog}
}

// Verify performs one fresh batched catalog read, then reconciles. A catalog
// lookup failure propagates as-is with no partial result; the caller keeps
// its cart untouched in that case.
func (s *Service) Verify(ctx context.Context, items []domain.LineItem) (domain.Result, error) {
	if len(items) == 0 {
		return Reconcile(nil, nil), nil
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}

	products, err := s.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return domain.Result{}, fmt.Errorf("catalog lookup: %w", err)
	}

	byID := make(map[string]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	return Reconcile(items, byID), nil
}
