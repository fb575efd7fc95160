package app

import "github.com/shoplane/storefront/internal/cart/domain"

const (
	ReasonNoLongerExists   = "product no longer exists"
	ReasonOutOfStock       = "out of stock"
	ReasonQuantityAdjusted = "quantity adjusted to match available stock"
)

// Reconcile corrects a client-asserted cart against a catalog snapshot in a
// single pass, preserving input order. Each line lands in exactly one bucket:
// kept (possibly quantity-clamped) or removed. Kept lines always take the
// catalog's current price, name and primary image; the client-asserted values
// are never trusted.
//
// Duplicate ids are not deduplicated: each line is checked against the same
// stock figure independently, with no running deduction across lines.
//
// An empty cart yields the degenerate no-op result, not an error.
func Reconcile(items []domain.LineItem, catalog map[string]Product) domain.Result {
	res := domain.Result{
		ValidItems:   make([]domain.LineItem, 0, len(items)),
		RemovedItems: []domain.RemovedItem{},
		UpdatedItems: []domain.UpdatedItem{},
	}

	for _, it := range items {
		p, ok := catalog[it.ID]
		if !ok {
			res.RemovedItems = append(res.RemovedItems, domain.RemovedItem{
				ID:     it.ID,
				Name:   it.Name,
				Reason: ReasonNoLongerExists,
			})
			continue
		}

		if p.Stock < 1 {
			res.RemovedItems = append(res.RemovedItems, domain.RemovedItem{
				ID:     it.ID,
				Name:   p.Name,
				Reason: ReasonOutOfStock,
			})
			continue
		}

		qty := it.Quantity
		if qty > p.Stock {
			res.UpdatedItems = append(res.UpdatedItems, domain.UpdatedItem{
				ID:          it.ID,
				Name:        p.Name,
				OldQuantity: qty,
				NewQuantity: p.Stock,
				Reason:      ReasonQuantityAdjusted,
			})
			qty = p.Stock
		}

		res.ValidItems = append(res.ValidItems, domain.LineItem{
			ID:            it.ID,
			Name:          p.Name,
			Price:         p.Price,
			OriginalPrice: it.OriginalPrice,
			Quantity:      qty,
			Image:         p.Image,
		})
	}

	res.NeedsUpdate = len(res.RemovedItems) > 0 || len(res.UpdatedItems) > 0
	return res
}
