package handler

import (
	"net/http"
	"strconv"
	"strings"

	"pixel-kart/internal/model"
	"pixel-kart/internal/service"

	"github.com/rs/zerolog"
)

// CatalogHandler handles catalogue browsing HTTP requests.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// GetAll handles GET /api/products requests.
func (h *CatalogHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	listing, err := h.service.Listing(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, listing)
}

// GetByID handles GET /api/products/{kind}/{id} requests.
func (h *CatalogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	// Expecting path: /api/products/{kind}/{id}
	rest := strings.TrimPrefix(r.URL.Path, "/api/products/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[1] == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidProduct, "expected /api/products/{kind}/{id}", h.logger)
		return
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidProduct, "invalid product ID format", h.logger)
		return
	}

	switch parts[0] {
	case "games":
		game, err := h.service.GetGame(r.Context(), id)
		if err != nil {
			writeServiceError(w, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, game)
	case "hardware":
		hw, err := h.service.GetHardware(r.Context(), id)
		if err != nil {
			writeServiceError(w, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, hw)
	default:
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidProduct, "unknown product kind", h.logger)
	}
}
