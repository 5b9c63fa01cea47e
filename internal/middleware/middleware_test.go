package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pixel-kart/internal/auth"
	"pixel-kart/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokens() *auth.TokenManager {
	return auth.NewTokenManager("test-secret-not-for-production", time.Hour)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestJWTAuth_PublicPaths(t *testing.T) {
	logger := zerolog.Nop()
	handler := JWTAuth(testTokens(), logger)(okHandler())

	for _, path := range []string{
		"/health",
		"/api/auth/register",
		"/api/auth/login",
		"/api/products",
		"/api/products/games/1",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "path %s should be public", path)
	}
}

func TestJWTAuth_MissingToken(t *testing.T) {
	logger := zerolog.Nop()
	handler := JWTAuth(testTokens(), logger)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	logger := zerolog.Nop()
	handler := JWTAuth(testTokens(), logger)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	logger := zerolog.Nop()
	handler := JWTAuth(testTokens(), logger)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_ValidTokenCarriesClaims(t *testing.T) {
	logger := zerolog.Nop()
	tokens := testTokens()

	token, err := tokens.Issue(model.User{ID: 42, IsAdmin: true})
	require.NoError(t, err)

	var gotClaims *auth.Claims
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		gotClaims = claims
		w.WriteHeader(http.StatusOK)
	})

	handler := JWTAuth(tokens, logger)(inner)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotClaims)
	assert.Equal(t, int64(42), gotClaims.UserID)
	assert.True(t, gotClaims.IsAdmin)
}

func TestRequireAdmin(t *testing.T) {
	logger := zerolog.Nop()
	handler := RequireAdmin(logger)(okHandler())

	tests := []struct {
		name           string
		path           string
		claims         *auth.Claims
		expectedStatus int
	}{
		{
			name:           "Non-admin path passes without claims",
			path:           "/api/cart",
			claims:         nil,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Admin path without claims",
			path:           "/api/admin/users",
			claims:         nil,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Admin path with non-admin claims",
			path:           "/api/admin/users",
			claims:         &auth.Claims{UserID: 7},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Admin path with admin claims",
			path:           "/api/admin/users",
			claims:         &auth.Claims{UserID: 2, IsAdmin: true},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.claims != nil {
				req = req.WithContext(ContextWithClaims(req.Context(), tt.claims))
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestCORS(t *testing.T) {
	handler := CORS(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestRecovery(t *testing.T) {
	logger := zerolog.Nop()

	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	handler := Recovery(logger)(panicking)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLogging(t *testing.T) {
	logger := zerolog.Nop()

	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTeapot, w.Code)
}
