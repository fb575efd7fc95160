package adapter

import (
	"context"

	cartapp "github.com/shoplane/storefront/internal/cart/app"
	catalogapp "github.com/shoplane/storefront/internal/catalog/app"
)

// CatalogServiceReader bridges the catalog application service into the cart
// verifier's reader port.
type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) FindByIDs(ctx context.Context, ids []string) ([]cartapp.Product, error) {
	products, err := r.svc.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]cartapp.Product, 0, len(products))
	for _, p := range products {
		out = append(out, cartapp.Product{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.Price,
			Stock: p.Stock,
			Image: p.FirstImage(),
		})
	}
	return out, nil
}
