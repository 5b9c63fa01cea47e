package router

import (
	"net/http"
	"strings"

	"pixel-kart/internal/auth"
	"pixel-kart/internal/handler"
	"pixel-kart/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	authHandler *handler.AuthHandler,
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
	checkoutHandler *handler.CheckoutHandler,
	adminHandler *handler.AdminHandler,
	tokens *auth.TokenManager,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.HandleFunc("/api/auth/register", authHandler.Register)
	mux.HandleFunc("/api/auth/login", authHandler.Login)

	// Catalogue handler function
	catalogRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// Check if this is a request for a specific product
		if r.URL.Path != "/api/products" && r.URL.Path != "/api/products/" {
			catalogHandler.GetByID(w, r)
			return
		}
		catalogHandler.GetAll(w, r)
	}

	// Register catalogue routes (both with and without trailing slash)
	mux.HandleFunc("/api/products", catalogRouteHandler)
	mux.HandleFunc("/api/products/", catalogRouteHandler)

	// Cart handler function
	cartRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		switch strings.TrimSuffix(r.URL.Path, "/") {
		case "/api/cart":
			cartHandler.Get(w, r)
		case "/api/cart/add":
			cartHandler.Add(w, r)
		case "/api/cart/update":
			cartHandler.Update(w, r)
		case "/api/cart/remove":
			cartHandler.Remove(w, r)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}

	mux.HandleFunc("/api/cart", cartRouteHandler)
	mux.HandleFunc("/api/cart/", cartRouteHandler)

	mux.HandleFunc("/api/checkout", checkoutHandler.Checkout)
	mux.HandleFunc("/api/purchases", checkoutHandler.History)

	mux.HandleFunc("/api/admin/users", adminHandler.Users)
	mux.HandleFunc("/api/admin/users/", adminHandler.Users)
	mux.HandleFunc("/api/admin/products/", adminHandler.Products)

	// Apply middleware in order: Recovery -> Logging -> CORS -> JWTAuth -> RequireAdmin
	var h http.Handler = mux
	h = middleware.RequireAdmin(logger)(h)
	h = middleware.JWTAuth(tokens, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
