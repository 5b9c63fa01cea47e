package seed

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"pixel-kart/internal/model"
	"pixel-kart/internal/repository"

	"github.com/rs/zerolog"
)

// releaseDateLayout is the date format used in seed files.
const releaseDateLayout = "2006-01-02"

// Importer loads a seed file and upserts its records into the catalogue.
// Products are keyed by name, so re-running the import refreshes prices and
// stock without duplicating rows.
type Importer struct {
	catalogRepo repository.CatalogRepository
	loader      Loader
	logger      zerolog.Logger
}

// NewImporter creates a new catalogue importer.
func NewImporter(catalogRepo repository.CatalogRepository, loader Loader, logger zerolog.Logger) *Importer {
	return &Importer{
		catalogRepo: catalogRepo,
		loader:      loader,
		logger:      logger.With().Str("component", "seed-importer").Logger(),
	}
}

// Run imports the catalogue seed file from the given directory.
func (i *Importer) Run(ctx context.Context, dir string) error {
	records, err := i.loader.Load(ctx, filepath.Join(dir, CatalogFile))
	if err != nil {
		return fmt.Errorf("failed to load seed file: %w", err)
	}

	games := 0
	hardware := 0
	for _, record := range records {
		switch record.Kind {
		case model.KindGame:
			if err := i.importGame(ctx, record); err != nil {
				return fmt.Errorf("failed to import game %q: %w", record.Name, err)
			}
			games++
		case model.KindHardware:
			if err := i.importHardware(ctx, record); err != nil {
				return fmt.Errorf("failed to import hardware %q: %w", record.Name, err)
			}
			hardware++
		}
	}

	i.logger.Info().
		Int("games", games).
		Int("hardware", hardware).
		Msg("catalogue seed import completed")

	return nil
}

// importGame resolves the game's lookup names to IDs and upserts the row.
func (i *Importer) importGame(ctx context.Context, record Record) error {
	genreID, err := i.catalogRepo.EnsureGenre(ctx, record.Genre)
	if err != nil {
		return err
	}
	publisherID, err := i.catalogRepo.EnsurePublisher(ctx, record.Publisher)
	if err != nil {
		return err
	}
	ratingID, err := i.catalogRepo.EnsureRating(ctx, record.Rating)
	if err != nil {
		return err
	}
	playersID, err := i.catalogRepo.EnsurePlayerCount(ctx, record.Players)
	if err != nil {
		return err
	}

	var releaseDate time.Time
	if record.ReleaseDate != "" {
		releaseDate, err = time.Parse(releaseDateLayout, record.ReleaseDate)
		if err != nil {
			return fmt.Errorf("invalid release date %q: %w", record.ReleaseDate, err)
		}
	}

	return i.catalogRepo.UpsertGame(ctx, model.Game{
		Name:          record.Name,
		Description:   record.Description,
		Price:         record.Price,
		ReleaseDate:   releaseDate,
		GenreID:       genreID,
		PublisherID:   publisherID,
		ESRBID:        ratingID,
		PlayersID:     playersID,
		StockQuantity: record.StockQuantity,
	})
}

func (i *Importer) importHardware(ctx context.Context, record Record) error {
	return i.catalogRepo.UpsertHardware(ctx, model.Hardware{
		Name:          record.Name,
		Description:   record.Description,
		Price:         record.Price,
		Manufacturer:  record.Manufacturer,
		SKU:           record.SKU,
		UPC:           record.UPC,
		StockQuantity: record.StockQuantity,
	})
}
