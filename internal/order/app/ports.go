package app

import (
	"context"

	"github.com/shoplane/storefront/internal/order/domain"
)

type OrderRepo interface {
	// CreateOrderTx persists the order, its items and the matching stock
	// decrements in one transaction.
	CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error)
	Get(ctx context.Context, id, userID string) (domain.Order, error)
}
