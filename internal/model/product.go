package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ProductKind discriminates the two product variants in the catalogue.
type ProductKind string

const (
	KindGame     ProductKind = "game"
	KindHardware ProductKind = "hardware"
)

// Valid reports whether the kind is one of the known product variants.
func (k ProductKind) Valid() bool {
	return k == KindGame || k == KindHardware
}

// ProductRef identifies exactly one catalogue product: either a game or a
// hardware item, never both and never neither. The tagged union replaces the
// pair of nullable foreign keys the storage layer uses.
type ProductRef struct {
	Kind ProductKind `json:"productKind"`
	ID   int64       `json:"productId"`
}

// GameRef builds a reference to a game.
func GameRef(id int64) ProductRef {
	return ProductRef{Kind: KindGame, ID: id}
}

// HardwareRef builds a reference to a hardware item.
func HardwareRef(id int64) ProductRef {
	return ProductRef{Kind: KindHardware, ID: id}
}

// String renders the reference as kind/id for log fields.
func (r ProductRef) String() string {
	return fmt.Sprintf("%s/%d", r.Kind, r.ID)
}

// Game represents a video game in the catalogue.
type Game struct {
	ID            int64           `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	Description   string          `json:"description" db:"description"`
	Price         decimal.Decimal `json:"price" db:"price"`
	ReleaseDate   time.Time       `json:"releaseDate" db:"release_date"`
	GenreID       int64           `json:"genreId" db:"genre_id"`
	PublisherID   int64           `json:"publisherId" db:"publisher_id"`
	ESRBID        int64           `json:"esrbId" db:"esrb_id"`
	PlayersID     int64           `json:"playersId" db:"players_id"`
	StockQuantity int             `json:"stockQuantity" db:"stock_quantity"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
}

// Hardware represents a gaming hardware item in the catalogue.
type Hardware struct {
	ID            int64           `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	Price         decimal.Decimal `json:"price" db:"price"`
	Description   string          `json:"description" db:"description"`
	Manufacturer  string          `json:"manufacturer" db:"manufacturer"`
	SKU           string          `json:"sku" db:"sku"`
	UPC           string          `json:"upc" db:"upc"`
	StockQuantity int             `json:"stockQuantity" db:"stock_quantity"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
}

// ProductInfo is the resolved view of a product reference: the identity,
// display name and current unit price that the cart and checkout care about.
type ProductInfo struct {
	Ref       ProductRef      `json:"ref"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Lookup is a row in one of the categorical lookup tables (genres,
// publishers, ESRB ratings, player counts).
type Lookup struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// CatalogListing is the combined catalogue returned to browsers.
type CatalogListing struct {
	Games    []Game     `json:"games"`
	Hardware []Hardware `json:"hardware"`
}

// UpdateGameRequest is the admin payload for editing a game.
type UpdateGameRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	ReleaseDate   time.Time       `json:"releaseDate"`
	GenreID       int64           `json:"genreId"`
	PublisherID   int64           `json:"publisherId"`
	ESRBID        int64           `json:"esrbId"`
	PlayersID     int64           `json:"playersId"`
	StockQuantity int             `json:"stockQuantity"`
}

// UpdateHardwareRequest is the admin payload for editing a hardware item.
type UpdateHardwareRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Manufacturer  string          `json:"manufacturer"`
	SKU           string          `json:"sku"`
	UPC           string          `json:"upc"`
	StockQuantity int             `json:"stockQuantity"`
}
