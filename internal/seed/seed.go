// Package seed imports catalogue data from gzipped JSON-lines files, either
// from the local file system or from S3, and upserts it through the catalog
// repository on startup.
package seed

import (
	"context"
	"fmt"

	"pixel-kart/internal/model"

	"github.com/shopspring/decimal"
)

// CatalogFile is the default seed file name inside the seed directory.
const CatalogFile = "catalog.jsonl.gz"

// Record is one line of a seed file. Kind selects which fields apply: games
// carry the genre/publisher/rating/players lookups, hardware carries the
// manufacturer identifiers.
type Record struct {
	Kind          model.ProductKind `json:"kind"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Price         decimal.Decimal   `json:"price"`
	StockQuantity int               `json:"stockQuantity"`

	// Game fields
	ReleaseDate string `json:"releaseDate,omitempty"`
	Genre       string `json:"genre,omitempty"`
	Publisher   string `json:"publisher,omitempty"`
	Rating      string `json:"rating,omitempty"`
	Players     string `json:"players,omitempty"`

	// Hardware fields
	Manufacturer string `json:"manufacturer,omitempty"`
	SKU          string `json:"sku,omitempty"`
	UPC          string `json:"upc,omitempty"`
}

// Validate checks a record for the fields its kind requires.
func (r Record) Validate() error {
	if !r.Kind.Valid() {
		return fmt.Errorf("unknown kind %q", r.Kind)
	}
	if r.Name == "" {
		return fmt.Errorf("record has no name")
	}
	if r.Price.IsNegative() {
		return fmt.Errorf("record %q has a negative price", r.Name)
	}
	if r.Kind == model.KindGame {
		if r.Genre == "" || r.Publisher == "" || r.Rating == "" || r.Players == "" {
			return fmt.Errorf("game %q is missing a lookup field", r.Name)
		}
	}
	return nil
}

// Loader defines the interface for loading seed files.
type Loader interface {
	// Load reads a gzipped JSON-lines seed file and returns its records.
	Load(ctx context.Context, filePath string) ([]Record, error)
}
