package repository

import (
	"context"

	"pixel-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CatalogRepository defines the read-mostly access to the product catalogue
// and its lookup tables. The cart and checkout only ever read from it.
type CatalogRepository interface {
	// ListGames retrieves all games ordered by name.
	ListGames(ctx context.Context) ([]model.Game, error)

	// ListHardware retrieves all hardware items ordered by name.
	ListHardware(ctx context.Context) ([]model.Hardware, error)

	// GetGame retrieves a single game by ID. Returns nil when absent.
	GetGame(ctx context.Context, id int64) (*model.Game, error)

	// GetHardware retrieves a single hardware item by ID. Returns nil when absent.
	GetHardware(ctx context.Context, id int64) (*model.Hardware, error)

	// Resolve maps a product reference to its current name and unit price.
	// Returns (nil, nil) when the reference does not resolve.
	Resolve(ctx context.Context, ref model.ProductRef) (*model.ProductInfo, error)

	// UpdateGame overwrites the editable fields of a game.
	// Returns model.ErrProductNotFound when no such game exists.
	UpdateGame(ctx context.Context, id int64, req model.UpdateGameRequest) error

	// UpdateHardware overwrites the editable fields of a hardware item.
	// Returns model.ErrProductNotFound when no such item exists.
	UpdateHardware(ctx context.Context, id int64, req model.UpdateHardwareRequest) error

	// UpsertGame inserts a game or updates it by name. Used by the seed import.
	UpsertGame(ctx context.Context, game model.Game) error

	// UpsertHardware inserts a hardware item or updates it by name. Used by
	// the seed import.
	UpsertHardware(ctx context.Context, hw model.Hardware) error

	// EnsureGenre returns the ID of the named genre, creating it if needed.
	EnsureGenre(ctx context.Context, name string) (int64, error)

	// EnsurePublisher returns the ID of the named publisher, creating it if needed.
	EnsurePublisher(ctx context.Context, name string) (int64, error)

	// EnsureRating returns the ID of the named ESRB rating, creating it if needed.
	EnsureRating(ctx context.Context, name string) (int64, error)

	// EnsurePlayerCount returns the ID of the named player count, creating it
	// if needed.
	EnsurePlayerCount(ctx context.Context, name string) (int64, error)
}

// CartRepository defines the data access for a user's cart line items.
// Mutations are keyed by (user, product reference); at most one row exists
// per pair.
type CartRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// AddItem increments the quantity of the matching line item, creating it
	// with the given quantity when absent.
	AddItem(ctx context.Context, userID int64, ref model.ProductRef, quantity int) error

	// SetQuantity overwrites the quantity of an existing line item.
	// Returns model.ErrItemNotFound when no matching row exists.
	SetQuantity(ctx context.Context, userID int64, ref model.ProductRef, quantity int) error

	// DeleteItem removes the matching line item.
	// Returns model.ErrItemNotFound when no matching row exists.
	DeleteItem(ctx context.Context, userID int64, ref model.ProductRef) error

	// ListByUser retrieves the user's cart lines in insertion order, each
	// annotated with the resolved product name and current unit price.
	// Dangling references resolve to the missing-product placeholder.
	ListByUser(ctx context.Context, userID int64) ([]model.CartLine, error)

	// ListByUserForUpdate is ListByUser inside the given transaction with the
	// user's cart rows locked, so checkout serialises against concurrent
	// mutations of the same cart.
	ListByUserForUpdate(ctx context.Context, tx pgx.Tx, userID int64) ([]model.CartLine, error)

	// DeleteLines removes the given cart rows of the user within the provided
	// transaction. Checkout deletes exactly the lines it read under lock, so
	// a row inserted by a concurrent add survives the clear.
	DeleteLines(ctx context.Context, tx pgx.Tx, userID int64, ids []uuid.UUID) error
}

// PurchaseRepository defines the append-only purchase ledger.
type PurchaseRepository interface {
	// CreateBatch inserts purchase records within the provided transaction.
	CreateBatch(ctx context.Context, tx pgx.Tx, purchases []model.Purchase) error

	// ListByUser retrieves a user's purchases, most recent first.
	ListByUser(ctx context.Context, userID int64) ([]model.Purchase, error)
}

// UserRepository defines the data access for user accounts.
type UserRepository interface {
	// Create inserts a new user, filling in ID and CreatedAt.
	// Returns model.ErrUserExists on a duplicate username or email.
	Create(ctx context.Context, user *model.User) error

	// GetByEmail retrieves a user by email. Returns nil when absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByID retrieves a user by ID. Returns nil when absent.
	GetByID(ctx context.Context, id int64) (*model.User, error)

	// List retrieves all users ordered by ID.
	List(ctx context.Context) ([]model.User, error)

	// Update overwrites the editable fields of a user.
	// Returns model.ErrUserNotFound when no such user exists.
	Update(ctx context.Context, id int64, req model.UpdateUserRequest) error
}
