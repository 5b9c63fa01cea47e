package repository

import (
	"context"
	"fmt"

	"pixel-kart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// purchaseRepository implements the PurchaseRepository interface using
// PostgreSQL. Rows are written once by checkout and never touched again.
type purchaseRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPurchaseRepository creates a new PostgreSQL-backed purchase repository.
func NewPurchaseRepository(pool *pgxpool.Pool, logger zerolog.Logger) PurchaseRepository {
	return &purchaseRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "purchase").Logger(),
	}
}

// CreateBatch inserts purchase records within the provided transaction.
func (r *purchaseRepository) CreateBatch(ctx context.Context, tx pgx.Tx, purchases []model.Purchase) error {
	if len(purchases) == 0 {
		return nil
	}

	query := `
		INSERT INTO purchases (id, user_id, game_id, hardware_id, quantity, total_price, purchased_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	batch := &pgx.Batch{}
	for _, p := range purchases {
		var gameID, hardwareID *int64
		switch p.Product.Kind {
		case model.KindGame:
			gameID = &p.Product.ID
		case model.KindHardware:
			hardwareID = &p.Product.ID
		default:
			return fmt.Errorf("purchase %s has unknown product kind %q", p.ID, p.Product.Kind)
		}

		batch.Queue(query, p.ID, p.UserID, gameID, hardwareID, p.Quantity, p.TotalPrice, p.PurchasedAt)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(purchases); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Int64("user_id", purchases[i].UserID).
				Stringer("product", purchases[i].Product).
				Msg("failed to create purchase record")
			return fmt.Errorf("failed to create purchase record: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(purchases)).
		Msg("purchase records created")

	return nil
}

// ListByUser retrieves a user's purchases, most recent first.
func (r *purchaseRepository) ListByUser(ctx context.Context, userID int64) ([]model.Purchase, error) {
	query := `
		SELECT id, user_id, game_id, hardware_id, quantity, total_price, purchased_at
		FROM purchases
		WHERE user_id = $1
		ORDER BY purchased_at DESC, id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to query purchases")
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer rows.Close()

	var purchases []model.Purchase
	for rows.Next() {
		var (
			p          model.Purchase
			gameID     *int64
			hardwareID *int64
		)

		err := rows.Scan(&p.ID, &p.UserID, &gameID, &hardwareID,
			&p.Quantity, &p.TotalPrice, &p.PurchasedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan purchase row")
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}

		switch {
		case gameID != nil:
			p.Product = model.GameRef(*gameID)
		case hardwareID != nil:
			p.Product = model.HardwareRef(*hardwareID)
		default:
			return nil, fmt.Errorf("purchase %s references no product", p.ID)
		}

		purchases = append(purchases, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating purchase rows")
		return nil, fmt.Errorf("error iterating purchases: %w", err)
	}

	return purchases, nil
}
