package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shoplane/storefront/internal/order/domain"
)

const OrderStatusPending = "PENDING"

var (
	ErrNotFound          = errors.New("order not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type Service struct {
	repo OrderRepo
}

func NewService(repo OrderRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return domain.Order{}, errors.New("user id is required")
	}
	if req.Shipping.Sign() < 0 {
		return domain.Order{}, fmt.Errorf("shipping amount cannot be negative, got %s", req.Shipping)
	}
	if len(req.Items) == 0 {
		return domain.Order{}, errors.New("order must contain at least one item")
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	subtotal := decimal.Zero

	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return domain.Order{}, fmt.Errorf("item %d: quantity must be positive, got %d", i, item.Quantity)
		}
		if item.UnitPrice.Sign() < 0 {
			return domain.Order{}, fmt.Errorf("item %d: unit price cannot be negative, got %s", i, item.UnitPrice)
		}

		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		items = append(items, domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			LineTotal: lineTotal,
		})

		subtotal = subtotal.Add(lineTotal)
	}

	order := domain.Order{
		UserID:   req.UserID,
		Status:   OrderStatusPending,
		Subtotal: subtotal,
		Shipping: req.Shipping,
		Total:    subtotal.Add(req.Shipping),
		Items:    items,
	}

	return s.repo.CreateOrderTx(ctx, order)
}

// GetOrder is owner-scoped: asking for someone else's order reads as not found.
func (s *Service) GetOrder(ctx context.Context, id, userID string) (domain.Order, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(userID) == "" {
		return domain.Order{}, ErrNotFound
	}
	return s.repo.Get(ctx, id, userID)
}
