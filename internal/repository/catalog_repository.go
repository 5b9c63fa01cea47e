package repository

import (
	"context"
	"fmt"

	"pixel-kart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// catalogRepository implements the CatalogRepository interface using PostgreSQL.
type catalogRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCatalogRepository creates a new PostgreSQL-backed catalogue repository.
func NewCatalogRepository(pool *pgxpool.Pool, logger zerolog.Logger) CatalogRepository {
	return &catalogRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "catalog").Logger(),
	}
}

const gameColumns = `id, name, description, price, release_date, genre_id, publisher_id, esrb_id, players_id, stock_quantity, created_at`

const hardwareColumns = `id, name, price, description, manufacturer, sku, upc, stock_quantity, created_at`

func scanGame(row pgx.Row, g *model.Game) error {
	return row.Scan(&g.ID, &g.Name, &g.Description, &g.Price, &g.ReleaseDate,
		&g.GenreID, &g.PublisherID, &g.ESRBID, &g.PlayersID, &g.StockQuantity, &g.CreatedAt)
}

func scanHardware(row pgx.Row, h *model.Hardware) error {
	return row.Scan(&h.ID, &h.Name, &h.Price, &h.Description,
		&h.Manufacturer, &h.SKU, &h.UPC, &h.StockQuantity, &h.CreatedAt)
}

// ListGames retrieves all games ordered by name.
func (r *catalogRepository) ListGames(ctx context.Context) ([]model.Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM games ORDER BY name`, gameColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query games")
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []model.Game
	for rows.Next() {
		var g model.Game
		if err := scanGame(rows, &g); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan game row")
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating game rows")
		return nil, fmt.Errorf("error iterating games: %w", err)
	}

	return games, nil
}

// ListHardware retrieves all hardware items ordered by name.
func (r *catalogRepository) ListHardware(ctx context.Context) ([]model.Hardware, error) {
	query := fmt.Sprintf(`SELECT %s FROM hardware ORDER BY name`, hardwareColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query hardware")
		return nil, fmt.Errorf("failed to query hardware: %w", err)
	}
	defer rows.Close()

	var items []model.Hardware
	for rows.Next() {
		var h model.Hardware
		if err := scanHardware(rows, &h); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan hardware row")
			return nil, fmt.Errorf("failed to scan hardware: %w", err)
		}
		items = append(items, h)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating hardware rows")
		return nil, fmt.Errorf("error iterating hardware: %w", err)
	}

	return items, nil
}

// GetGame retrieves a single game by ID.
func (r *catalogRepository) GetGame(ctx context.Context, id int64) (*model.Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM games WHERE id = $1`, gameColumns)

	var g model.Game
	err := scanGame(r.pool.QueryRow(ctx, query, id), &g)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("game_id", id).Msg("game not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("game_id", id).Msg("failed to query game")
		return nil, fmt.Errorf("failed to query game: %w", err)
	}

	return &g, nil
}

// GetHardware retrieves a single hardware item by ID.
func (r *catalogRepository) GetHardware(ctx context.Context, id int64) (*model.Hardware, error) {
	query := fmt.Sprintf(`SELECT %s FROM hardware WHERE id = $1`, hardwareColumns)

	var h model.Hardware
	err := scanHardware(r.pool.QueryRow(ctx, query, id), &h)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("hardware_id", id).Msg("hardware not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("hardware_id", id).Msg("failed to query hardware")
		return nil, fmt.Errorf("failed to query hardware: %w", err)
	}

	return &h, nil
}

// Resolve maps a product reference to its current name and unit price.
func (r *catalogRepository) Resolve(ctx context.Context, ref model.ProductRef) (*model.ProductInfo, error) {
	var query string
	switch ref.Kind {
	case model.KindGame:
		query = `SELECT name, price FROM games WHERE id = $1`
	case model.KindHardware:
		query = `SELECT name, price FROM hardware WHERE id = $1`
	default:
		return nil, fmt.Errorf("unknown product kind %q", ref.Kind)
	}

	info := model.ProductInfo{Ref: ref}
	err := r.pool.QueryRow(ctx, query, ref.ID).Scan(&info.Name, &info.UnitPrice)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Stringer("product", ref).Msg("product reference did not resolve")
			return nil, nil
		}
		r.logger.Error().Err(err).Stringer("product", ref).Msg("failed to resolve product")
		return nil, fmt.Errorf("failed to resolve product %s: %w", ref, err)
	}

	return &info, nil
}

// UpdateGame overwrites the editable fields of a game.
func (r *catalogRepository) UpdateGame(ctx context.Context, id int64, req model.UpdateGameRequest) error {
	query := `
		UPDATE games
		SET name = $2, description = $3, price = $4, release_date = $5,
		    genre_id = $6, publisher_id = $7, esrb_id = $8, players_id = $9,
		    stock_quantity = $10
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, req.Name, req.Description, req.Price,
		req.ReleaseDate, req.GenreID, req.PublisherID, req.ESRBID, req.PlayersID,
		req.StockQuantity)
	if err != nil {
		r.logger.Error().Err(err).Int64("game_id", id).Msg("failed to update game")
		return fmt.Errorf("failed to update game: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	r.logger.Debug().Int64("game_id", id).Msg("game updated")
	return nil
}

// UpdateHardware overwrites the editable fields of a hardware item.
func (r *catalogRepository) UpdateHardware(ctx context.Context, id int64, req model.UpdateHardwareRequest) error {
	query := `
		UPDATE hardware
		SET name = $2, description = $3, price = $4, manufacturer = $5,
		    sku = $6, upc = $7, stock_quantity = $8
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, req.Name, req.Description, req.Price,
		req.Manufacturer, req.SKU, req.UPC, req.StockQuantity)
	if err != nil {
		r.logger.Error().Err(err).Int64("hardware_id", id).Msg("failed to update hardware")
		return fmt.Errorf("failed to update hardware: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	r.logger.Debug().Int64("hardware_id", id).Msg("hardware updated")
	return nil
}

// UpsertGame inserts a game or updates it by name.
func (r *catalogRepository) UpsertGame(ctx context.Context, game model.Game) error {
	query := `
		INSERT INTO games (name, description, price, release_date, genre_id, publisher_id, esrb_id, players_id, stock_quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (name) DO UPDATE
		SET description = EXCLUDED.description,
		    price = EXCLUDED.price,
		    release_date = EXCLUDED.release_date,
		    genre_id = EXCLUDED.genre_id,
		    publisher_id = EXCLUDED.publisher_id,
		    esrb_id = EXCLUDED.esrb_id,
		    players_id = EXCLUDED.players_id,
		    stock_quantity = EXCLUDED.stock_quantity
	`

	_, err := r.pool.Exec(ctx, query, game.Name, game.Description, game.Price,
		game.ReleaseDate, game.GenreID, game.PublisherID, game.ESRBID,
		game.PlayersID, game.StockQuantity)
	if err != nil {
		r.logger.Error().Err(err).Str("name", game.Name).Msg("failed to upsert game")
		return fmt.Errorf("failed to upsert game %q: %w", game.Name, err)
	}

	return nil
}

// UpsertHardware inserts a hardware item or updates it by name.
func (r *catalogRepository) UpsertHardware(ctx context.Context, hw model.Hardware) error {
	query := `
		INSERT INTO hardware (name, price, description, manufacturer, sku, upc, stock_quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (name) DO UPDATE
		SET price = EXCLUDED.price,
		    description = EXCLUDED.description,
		    manufacturer = EXCLUDED.manufacturer,
		    sku = EXCLUDED.sku,
		    upc = EXCLUDED.upc,
		    stock_quantity = EXCLUDED.stock_quantity
	`

	_, err := r.pool.Exec(ctx, query, hw.Name, hw.Price, hw.Description,
		hw.Manufacturer, hw.SKU, hw.UPC, hw.StockQuantity)
	if err != nil {
		r.logger.Error().Err(err).Str("name", hw.Name).Msg("failed to upsert hardware")
		return fmt.Errorf("failed to upsert hardware %q: %w", hw.Name, err)
	}

	return nil
}

// lookupTables whitelists the categorical tables ensureLookup may touch.
var lookupTables = map[string]bool{
	"genres":        true,
	"publishers":    true,
	"esrb_ratings":  true,
	"player_counts": true,
}

func (r *catalogRepository) ensureLookup(ctx context.Context, table, name string) (int64, error) {
	if !lookupTables[table] {
		return 0, fmt.Errorf("unknown lookup table %q", table)
	}

	// Upsert-then-select keeps the ID stable under concurrent imports.
	query := fmt.Sprintf(`
		INSERT INTO %s (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, table)

	var id int64
	if err := r.pool.QueryRow(ctx, query, name).Scan(&id); err != nil {
		r.logger.Error().Err(err).Str("table", table).Str("name", name).Msg("failed to ensure lookup row")
		return 0, fmt.Errorf("failed to ensure %s row %q: %w", table, name, err)
	}

	return id, nil
}

// EnsureGenre returns the ID of the named genre, creating it if needed.
func (r *catalogRepository) EnsureGenre(ctx context.Context, name string) (int64, error) {
	return r.ensureLookup(ctx, "genres", name)
}

// EnsurePublisher returns the ID of the named publisher, creating it if needed.
func (r *catalogRepository) EnsurePublisher(ctx context.Context, name string) (int64, error) {
	return r.ensureLookup(ctx, "publishers", name)
}

// EnsureRating returns the ID of the named ESRB rating, creating it if needed.
func (r *catalogRepository) EnsureRating(ctx context.Context, name string) (int64, error) {
	return r.ensureLookup(ctx, "esrb_ratings", name)
}

// EnsurePlayerCount returns the ID of the named player count, creating it if needed.
func (r *catalogRepository) EnsurePlayerCount(ctx context.Context, name string) (int64, error) {
	return r.ensureLookup(ctx, "player_counts", name)
}
