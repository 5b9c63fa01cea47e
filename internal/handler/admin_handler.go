package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"pixel-kart/internal/model"
	"pixel-kart/internal/service"

	"github.com/rs/zerolog"
)

// AdminHandler handles the admin HTTP requests for user and product
// management. The router only reaches it through the admin guard.
type AdminHandler struct {
	users   service.UserService
	catalog service.CatalogService
	logger  zerolog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(users service.UserService, catalog service.CatalogService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		users:   users,
		catalog: catalog,
		logger:  logger.With().Str("handler", "admin").Logger(),
	}
}

// Users handles GET /api/admin/users and PUT /api/admin/users/{id} requests.
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/admin/users")
	rest = strings.TrimPrefix(rest, "/")

	if rest == "" {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
			return
		}
		h.listUsers(w, r)
		return
	}

	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid user ID format", h.logger)
		return
	}

	h.updateUser(w, r, id)
}

func (h *AdminHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) updateUser(w http.ResponseWriter, r *http.Request, id int64) {
	var req model.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	user, err := h.users.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Products handles PUT /api/admin/products/{kind}/{id} requests.
func (h *AdminHandler) Products(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/admin/products/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[1] == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidProduct, "expected /api/admin/products/{kind}/{id}", h.logger)
		return
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidProduct, "invalid product ID format", h.logger)
		return
	}

	switch parts[0] {
	case "games":
		var req model.UpdateGameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
			return
		}

		game, err := h.catalog.UpdateGame(r.Context(), id, req)
		if err != nil {
			writeServiceError(w, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, game)
	case "hardware":
		var req model.UpdateHardwareRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
			return
		}

		hw, err := h.catalog.UpdateHardware(r.Context(), id, req)
		if err != nil {
			writeServiceError(w, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, hw)
	default:
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidProduct, "unknown product kind", h.logger)
	}
}
