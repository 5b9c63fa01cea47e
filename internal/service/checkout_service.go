package service

import (
	"context"
	"fmt"
	"time"

	"pixel-kart/internal/model"
	"pixel-kart/internal/pricing"
	"pixel-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	cartRepo     repository.CartRepository
	purchaseRepo repository.PurchaseRepository
	logger       zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	cartRepo repository.CartRepository,
	purchaseRepo repository.PurchaseRepository,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		cartRepo:     cartRepo,
		purchaseRepo: purchaseRepo,
		logger:       logger.With().Str("service", "checkout").Logger(),
	}
}

// Checkout snapshots the cart into purchase records and clears it, as one
// atomic unit. The cart rows are locked for the duration of the transaction,
// so a concurrent update on a carted product waits until the checkout either
// commits or rolls back; a concurrent add of a product not yet in the cart
// lands as a fresh row that the clear leaves untouched. On any failure the
// transaction is rolled back and the cart is left exactly as it was.
func (s *checkoutService) Checkout(ctx context.Context, userID int64) (*model.CheckoutResult, error) {
	tx, err := s.cartRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to begin checkout transaction")
		return nil, fmt.Errorf("failed to checkout: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback checkout transaction")
			}
		}
	}()

	lines, err := s.cartRepo.ListByUserForUpdate(ctx, tx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to read cart for checkout")
		return nil, fmt.Errorf("failed to checkout: %w", err)
	}

	// Empty cart: nothing to record, nothing to clear
	if len(lines) == 0 {
		if err = tx.Commit(ctx); err != nil {
			s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to commit empty checkout")
			return nil, fmt.Errorf("failed to checkout: %w", err)
		}
		s.logger.Info().Int64("user_id", userID).Msg("checkout of empty cart")
		return &model.CheckoutResult{Purchases: []model.Purchase{}, Total: decimal.Zero}, nil
	}

	// One record per resolvable line; prices are the ones read inside the
	// transaction, frozen into the record
	now := time.Now()
	total := decimal.Zero
	purchases := make([]model.Purchase, 0, len(lines))
	lineIDs := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		lineIDs = append(lineIDs, line.Item.ID)
		if !line.Resolved {
			s.logger.Warn().
				Int64("user_id", userID).
				Stringer("product", line.Item.Product).
				Msg("skipping unresolvable cart line at checkout")
			continue
		}

		lineTotal := pricing.LineTotal(line.Item.Quantity, line.UnitPrice)
		total = total.Add(lineTotal)

		purchases = append(purchases, model.Purchase{
			ID:          uuid.New(),
			UserID:      userID,
			Product:     line.Item.Product,
			Quantity:    line.Item.Quantity,
			TotalPrice:  lineTotal,
			PurchasedAt: now,
		})
	}

	if err = s.purchaseRepo.CreateBatch(ctx, tx, purchases); err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to write purchase records")
		return nil, fmt.Errorf("failed to checkout: %w", err)
	}

	// Clear only the lines read under lock. A row a concurrent add slipped in
	// after the read stays in the cart for the next checkout.
	if err = s.cartRepo.DeleteLines(ctx, tx, userID, lineIDs); err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to clear cart")
		return nil, fmt.Errorf("failed to checkout: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to commit checkout transaction")
		return nil, fmt.Errorf("failed to checkout: %w", err)
	}

	s.logger.Info().
		Int64("user_id", userID).
		Int("purchase_count", len(purchases)).
		Str("total", total.String()).
		Msg("checkout completed")

	return &model.CheckoutResult{Purchases: purchases, Total: total}, nil
}

// History retrieves the user's past purchases, most recent first.
func (s *checkoutService) History(ctx context.Context, userID int64) ([]model.Purchase, error) {
	purchases, err := s.purchaseRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to list purchases")
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	return purchases, nil
}
