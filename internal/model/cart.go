package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one row in a user's cart. At most one row exists per
// (user, product) pair; adding an already-carted product increments the
// quantity of the existing row.
type CartItem struct {
	ID       uuid.UUID  `json:"-" db:"id"`
	UserID   int64      `json:"-" db:"user_id"`
	Product  ProductRef `json:"product"`
	Quantity int        `json:"quantity" db:"quantity"`
	AddedAt  time.Time  `json:"addedAt" db:"added_at"`
}

// CartLine is a cart item annotated with the resolved product name and the
// current unit price. When the referenced product no longer exists the line
// carries the placeholder name and a zero price instead of failing the read.
type CartLine struct {
	Item        CartItem        `json:"item"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
	Resolved    bool            `json:"resolved"`
}

// MissingProductName is the display name for cart lines whose product was
// deleted from the catalogue after being carted.
const MissingProductName = "Unknown Product"

// Cart is the full listing of a user's cart with its computed total.
type Cart struct {
	Lines []CartLine      `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// AddToCartRequest is the payload for POST /api/cart/add.
type AddToCartRequest struct {
	ProductKind ProductKind `json:"productKind"`
	ProductID   int64       `json:"productId"`
	Quantity    int         `json:"quantity"`
}

// UpdateCartItemRequest is the payload for POST /api/cart/update. Quantity
// overwrites the existing line's quantity.
type UpdateCartItemRequest struct {
	ProductKind ProductKind `json:"productKind"`
	ProductID   int64       `json:"productId"`
	Quantity    int         `json:"quantity"`
}

// RemoveCartItemRequest is the payload for POST /api/cart/remove.
type RemoveCartItemRequest struct {
	ProductKind ProductKind `json:"productKind"`
	ProductID   int64       `json:"productId"`
}
