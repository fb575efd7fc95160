package domain

import "github.com/shopspring/decimal"

// LineItem is a client-asserted cart line. Everything except Quantity and
// OriginalPrice is treated as a display hint only; the catalog is the
// authority for price, name and image.
type LineItem struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Quantity      int              `json:"quantity"`
	Image         string           `json:"image,omitempty"`
}

type RemovedItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type UpdatedItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	OldQuantity int    `json:"oldQuantity"`
	NewQuantity int    `json:"newQuantity"`
	Reason      string `json:"reason"`
}

// Result is the authoritative view of a submitted cart. RemovedItems and
// UpdatedItems partition the discrepancies found; every input line lands in
// exactly one of ValidItems or RemovedItems.
type Result struct {
	ValidItems   []LineItem    `json:"validItems"`
	RemovedItems []RemovedItem `json:"removedItems"`
	UpdatedItems []UpdatedItem `json:"updatedItems"`
	NeedsUpdate  bool          `json:"needsUpdate"`
}
