package repository

import (
	"context"
	"fmt"

	"pixel-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *cartRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// refColumn maps a product kind to the cart column holding its foreign key.
// The column name is interpolated into SQL, so the mapping is a closed set.
func refColumn(kind model.ProductKind) (string, error) {
	switch kind {
	case model.KindGame:
		return "game_id", nil
	case model.KindHardware:
		return "hardware_id", nil
	default:
		return "", fmt.Errorf("unknown product kind %q", kind)
	}
}

// AddItem increments the quantity of the matching line item, creating it
// with the given quantity when absent. The partial unique indexes on
// (user_id, game_id) and (user_id, hardware_id) make the upsert atomic, so
// two concurrent adds of the same product both land on one row.
func (r *cartRepository) AddItem(ctx context.Context, userID int64, ref model.ProductRef, quantity int) error {
	column, err := refColumn(ref.Kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO cart_items (id, user_id, %[1]s, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, %[1]s) WHERE %[1]s IS NOT NULL
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`, column)

	_, err = r.pool.Exec(ctx, query, uuid.New(), userID, ref.ID, quantity)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("user_id", userID).
			Stringer("product", ref).
			Msg("failed to add cart item")
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	r.logger.Debug().
		Int64("user_id", userID).
		Stringer("product", ref).
		Int("quantity", quantity).
		Msg("cart item added")

	return nil
}

// SetQuantity overwrites the quantity of an existing line item.
func (r *cartRepository) SetQuantity(ctx context.Context, userID int64, ref model.ProductRef, quantity int) error {
	column, err := refColumn(ref.Kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE cart_items SET quantity = $3 WHERE user_id = $1 AND %s = $2`, column)

	tag, err := r.pool.Exec(ctx, query, userID, ref.ID, quantity)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("user_id", userID).
			Stringer("product", ref).
			Msg("failed to update cart item quantity")
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().
			Int64("user_id", userID).
			Stringer("product", ref).
			Msg("cart item not found for update")
		return model.ErrItemNotFound
	}

	return nil
}

// DeleteItem removes the matching line item.
func (r *cartRepository) DeleteItem(ctx context.Context, userID int64, ref model.ProductRef) error {
	column, err := refColumn(ref.Kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM cart_items WHERE user_id = $1 AND %s = $2`, column)

	tag, err := r.pool.Exec(ctx, query, userID, ref.ID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("user_id", userID).
			Stringer("product", ref).
			Msg("failed to delete cart item")
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().
			Int64("user_id", userID).
			Stringer("product", ref).
			Msg("cart item not found for delete")
		return model.ErrItemNotFound
	}

	return nil
}

// listQuery joins cart rows against both product tables. Dangling references
// come back with NULL name and price and are mapped to the placeholder.
// The lock clause locks only cart_items rows; the outer-joined product
// tables cannot take FOR UPDATE locks.
const listQuery = `
	SELECT c.id, c.user_id, c.game_id, c.hardware_id, c.quantity, c.added_at,
	       COALESCE(g.name, h.name) AS product_name,
	       COALESCE(g.price, h.price) AS unit_price
	FROM cart_items c
	LEFT JOIN games g ON c.game_id = g.id
	LEFT JOIN hardware h ON c.hardware_id = h.id
	WHERE c.user_id = $1
	ORDER BY c.added_at, c.id
`

// ListByUser retrieves the user's cart lines in insertion order.
func (r *cartRepository) ListByUser(ctx context.Context, userID int64) ([]model.CartLine, error) {
	rows, err := r.pool.Query(ctx, listQuery, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	return r.collectLines(rows)
}

// ListByUserForUpdate is ListByUser inside a transaction with the user's
// cart rows locked.
func (r *cartRepository) ListByUserForUpdate(ctx context.Context, tx pgx.Tx, userID int64) ([]model.CartLine, error) {
	rows, err := tx.Query(ctx, listQuery+` FOR UPDATE OF c`, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to query cart items for update")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	return r.collectLines(rows)
}

func (r *cartRepository) collectLines(rows pgx.Rows) ([]model.CartLine, error) {
	var lines []model.CartLine
	for rows.Next() {
		var (
			item       model.CartItem
			gameID     *int64
			hardwareID *int64
			name       *string
			unitPrice  *decimal.Decimal
		)

		err := rows.Scan(&item.ID, &item.UserID, &gameID, &hardwareID,
			&item.Quantity, &item.AddedAt, &name, &unitPrice)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		switch {
		case gameID != nil:
			item.Product = model.GameRef(*gameID)
		case hardwareID != nil:
			item.Product = model.HardwareRef(*hardwareID)
		default:
			// The schema CHECK forbids this; guard anyway.
			return nil, fmt.Errorf("cart item %s references no product", item.ID)
		}

		line := model.CartLine{Item: item}
		if name != nil && unitPrice != nil {
			line.ProductName = *name
			line.UnitPrice = *unitPrice
			line.Resolved = true
		} else {
			line.ProductName = model.MissingProductName
			line.UnitPrice = decimal.Zero
		}

		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return lines, nil
}

// DeleteLines removes the given cart rows of the user within the provided
// transaction. Rows added concurrently after the checkout read are not
// touched.
func (r *cartRepository) DeleteLines(ctx context.Context, tx pgx.Tx, userID int64, ids []uuid.UUID) error {
	tag, err := tx.Exec(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND id = ANY($2)`, userID, ids)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	r.logger.Debug().
		Int64("user_id", userID).
		Int64("rows", tag.RowsAffected()).
		Msg("cart cleared")

	return nil
}
