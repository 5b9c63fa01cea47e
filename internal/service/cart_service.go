package service

import (
	"context"
	"fmt"

	"pixel-kart/internal/model"
	"pixel-kart/internal/pricing"
	"pixel-kart/internal/repository"

	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	catalogRepo repository.CatalogRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	catalogRepo repository.CatalogRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		catalogRepo: catalogRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// Add puts quantity units of a product into the cart, merging with an
// existing line for the same product. Stock quantity is informational and
// deliberately not checked here.
func (s *cartService) Add(ctx context.Context, userID int64, req model.AddToCartRequest) (*model.Cart, error) {
	if !req.ProductKind.Valid() {
		s.logger.Warn().
			Int64("user_id", userID).
			Str("product_kind", string(req.ProductKind)).
			Msg("invalid product kind")
		return nil, model.ErrInvalidProduct
	}

	if req.Quantity < 1 {
		s.logger.Warn().
			Int64("user_id", userID).
			Int("quantity", req.Quantity).
			Msg("invalid quantity")
		return nil, model.ErrInvalidQuantity
	}

	ref := model.ProductRef{Kind: req.ProductKind, ID: req.ProductID}

	// The product must resolve at the moment of adding
	info, err := s.catalogRepo.Resolve(ctx, ref)
	if err != nil {
		s.logger.Error().Err(err).Stringer("product", ref).Msg("failed to resolve product")
		return nil, fmt.Errorf("failed to resolve product: %w", err)
	}
	if info == nil {
		s.logger.Warn().
			Int64("user_id", userID).
			Stringer("product", ref).
			Msg("product does not exist")
		return nil, model.ErrInvalidProduct
	}

	if err := s.cartRepo.AddItem(ctx, userID, ref, req.Quantity); err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Stringer("product", ref).Msg("failed to add cart item")
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	s.logger.Info().
		Int64("user_id", userID).
		Stringer("product", ref).
		Int("quantity", req.Quantity).
		Msg("item added to cart")

	return s.Get(ctx, userID)
}

// SetQuantity overwrites the quantity of an existing cart line.
func (s *cartService) SetQuantity(ctx context.Context, userID int64, req model.UpdateCartItemRequest) (*model.Cart, error) {
	if !req.ProductKind.Valid() {
		return nil, model.ErrInvalidProduct
	}

	if req.Quantity < 1 {
		s.logger.Warn().
			Int64("user_id", userID).
			Int("quantity", req.Quantity).
			Msg("invalid quantity")
		return nil, model.ErrInvalidQuantity
	}

	ref := model.ProductRef{Kind: req.ProductKind, ID: req.ProductID}

	if err := s.cartRepo.SetQuantity(ctx, userID, ref, req.Quantity); err != nil {
		if err == model.ErrItemNotFound {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("user_id", userID).Stringer("product", ref).Msg("failed to update cart item")
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	s.logger.Info().
		Int64("user_id", userID).
		Stringer("product", ref).
		Int("quantity", req.Quantity).
		Msg("cart item updated")

	return s.Get(ctx, userID)
}

// Remove deletes a cart line.
func (s *cartService) Remove(ctx context.Context, userID int64, req model.RemoveCartItemRequest) (*model.Cart, error) {
	if !req.ProductKind.Valid() {
		return nil, model.ErrInvalidProduct
	}

	ref := model.ProductRef{Kind: req.ProductKind, ID: req.ProductID}

	if err := s.cartRepo.DeleteItem(ctx, userID, ref); err != nil {
		if err == model.ErrItemNotFound {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("user_id", userID).Stringer("product", ref).Msg("failed to remove cart item")
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}

	s.logger.Info().
		Int64("user_id", userID).
		Stringer("product", ref).
		Msg("item removed from cart")

	return s.Get(ctx, userID)
}

// Get retrieves the user's priced cart listing.
func (s *cartService) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	lines, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to list cart")
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}

	for i := range lines {
		lines[i].LineTotal = pricing.LineTotal(lines[i].Item.Quantity, lines[i].UnitPrice)
	}

	return &model.Cart{
		Lines: lines,
		Total: pricing.CartTotal(lines),
	}, nil
}
