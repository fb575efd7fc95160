package app

import (
	"context"

	"github.com/shoplane/storefront/internal/catalog/domain"
)

type ProductRepo interface {
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	List(ctx context.Context, query string, limit int, cursor string) ([]domain.Product, string, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	AdjustStock(ctx context.Context, id string, delta int) (domain.Product, error)
}
