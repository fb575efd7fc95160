package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID        string
	UserID    string
	Status    string
	Subtotal  decimal.Decimal
	Shipping  decimal.Decimal
	Total     decimal.Decimal
	Items     []OrderItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	LineTotal decimal.Decimal
}

type CreateOrderRequest struct {
	UserID   string
	Shipping decimal.Decimal
	Items    []OrderItemRequest
}

type OrderItemRequest struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}
