package service

import (
	"context"
	"fmt"

	"pixel-kart/internal/model"
	"pixel-kart/internal/repository"

	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	catalogRepo repository.CatalogRepository
	logger      zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(catalogRepo repository.CatalogRepository, logger zerolog.Logger) CatalogService {
	return &catalogService{
		catalogRepo: catalogRepo,
		logger:      logger.With().Str("service", "catalog").Logger(),
	}
}

// Listing retrieves the full catalogue of games and hardware.
func (s *catalogService) Listing(ctx context.Context) (*model.CatalogListing, error) {
	games, err := s.catalogRepo.ListGames(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list games")
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	hardware, err := s.catalogRepo.ListHardware(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list hardware")
		return nil, fmt.Errorf("failed to list hardware: %w", err)
	}

	return &model.CatalogListing{
		Games:    games,
		Hardware: hardware,
	}, nil
}

// GetGame retrieves a single game by ID.
func (s *catalogService) GetGame(ctx context.Context, id int64) (*model.Game, error) {
	game, err := s.catalogRepo.GetGame(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("game_id", id).Msg("failed to get game")
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return nil, model.ErrProductNotFound
	}

	return game, nil
}

// GetHardware retrieves a single hardware item by ID.
func (s *catalogService) GetHardware(ctx context.Context, id int64) (*model.Hardware, error) {
	hw, err := s.catalogRepo.GetHardware(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("hardware_id", id).Msg("failed to get hardware")
		return nil, fmt.Errorf("failed to get hardware: %w", err)
	}
	if hw == nil {
		return nil, model.ErrProductNotFound
	}

	return hw, nil
}

// UpdateGame overwrites the editable fields of a game.
func (s *catalogService) UpdateGame(ctx context.Context, id int64, req model.UpdateGameRequest) (*model.Game, error) {
	if req.Name == "" {
		return nil, model.NewDomainError(model.ErrCodeInvalidJSON, "Name is required")
	}
	if req.Price.IsNegative() {
		return nil, model.NewDomainError(model.ErrCodeInvalidJSON, "Price must not be negative")
	}

	if err := s.catalogRepo.UpdateGame(ctx, id, req); err != nil {
		if err == model.ErrProductNotFound {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("game_id", id).Msg("failed to update game")
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	s.logger.Info().Int64("game_id", id).Str("name", req.Name).Msg("game updated")

	return s.catalogRepo.GetGame(ctx, id)
}

// UpdateHardware overwrites the editable fields of a hardware item.
func (s *catalogService) UpdateHardware(ctx context.Context, id int64, req model.UpdateHardwareRequest) (*model.Hardware, error) {
	if req.Name == "" {
		return nil, model.NewDomainError(model.ErrCodeInvalidJSON, "Name is required")
	}
	if req.Price.IsNegative() {
		return nil, model.NewDomainError(model.ErrCodeInvalidJSON, "Price must not be negative")
	}

	if err := s.catalogRepo.UpdateHardware(ctx, id, req); err != nil {
		if err == model.ErrProductNotFound {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("hardware_id", id).Msg("failed to update hardware")
		return nil, fmt.Errorf("failed to update hardware: %w", err)
	}

	s.logger.Info().Int64("hardware_id", id).Str("name", req.Name).Msg("hardware updated")

	return s.catalogRepo.GetHardware(ctx, id)
}
