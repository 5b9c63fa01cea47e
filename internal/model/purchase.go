package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase is an immutable record of one purchased cart line: the product,
// the quantity and the total price frozen at checkout time. Rows are created
// only by checkout and are never updated or deleted afterwards.
type Purchase struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	UserID      int64           `json:"-" db:"user_id"`
	Product     ProductRef      `json:"product"`
	Quantity    int             `json:"quantity" db:"quantity"`
	TotalPrice  decimal.Decimal `json:"totalPrice" db:"total_price"`
	PurchasedAt time.Time       `json:"purchasedAt" db:"purchased_at"`
}

// CheckoutResult is the response payload for POST /api/checkout: the records
// created by this checkout and the aggregate total charged.
type CheckoutResult struct {
	Purchases []Purchase      `json:"purchases"`
	Total     decimal.Decimal `json:"total"`
}
