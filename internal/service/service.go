package service

import (
	"context"

	"pixel-kart/internal/model"
)

// CatalogService defines operations for browsing and administering the
// product catalogue.
type CatalogService interface {
	// Listing retrieves the full catalogue of games and hardware.
	Listing(ctx context.Context) (*model.CatalogListing, error)

	// GetGame retrieves a single game by ID.
	GetGame(ctx context.Context, id int64) (*model.Game, error)

	// GetHardware retrieves a single hardware item by ID.
	GetHardware(ctx context.Context, id int64) (*model.Hardware, error)

	// UpdateGame overwrites the editable fields of a game (admin only).
	UpdateGame(ctx context.Context, id int64, req model.UpdateGameRequest) (*model.Game, error)

	// UpdateHardware overwrites the editable fields of a hardware item (admin only).
	UpdateHardware(ctx context.Context, id int64, req model.UpdateHardwareRequest) (*model.Hardware, error)
}

// CartService defines the mutations and the priced listing of a user's cart.
type CartService interface {
	// Add puts quantity units of a product into the cart, merging with an
	// existing line for the same product.
	Add(ctx context.Context, userID int64, req model.AddToCartRequest) (*model.Cart, error)

	// SetQuantity overwrites the quantity of an existing cart line.
	SetQuantity(ctx context.Context, userID int64, req model.UpdateCartItemRequest) (*model.Cart, error)

	// Remove deletes a cart line.
	Remove(ctx context.Context, userID int64, req model.RemoveCartItemRequest) (*model.Cart, error)

	// Get retrieves the user's priced cart listing.
	Get(ctx context.Context, userID int64) (*model.Cart, error)
}

// CheckoutService converts cart contents into the purchase ledger.
type CheckoutService interface {
	// Checkout snapshots the cart into purchase records and clears it, as
	// one atomic unit. An empty cart checks out successfully with no records.
	Checkout(ctx context.Context, userID int64) (*model.CheckoutResult, error)

	// History retrieves the user's past purchases, most recent first.
	History(ctx context.Context, userID int64) ([]model.Purchase, error)
}

// AuthService defines account registration and login.
type AuthService interface {
	// Register creates a new account.
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, error)

	// Login verifies credentials and issues a bearer token.
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
}

// UserService defines the admin operations on accounts.
type UserService interface {
	// List retrieves all users.
	List(ctx context.Context) ([]model.User, error)

	// Update overwrites the editable fields of a user.
	Update(ctx context.Context, id int64, req model.UpdateUserRequest) (*model.User, error)
}
