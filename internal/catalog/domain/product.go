package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Images      []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FirstImage returns the primary image URL, or "" for an image-less product.
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

func (p Product) InStock() bool {
	return p.Stock >= 1
}
