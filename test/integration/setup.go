package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"pixel-kart/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// The repository pool constructor registers the decimal codec the
	// repositories rely on
	pool, err := repository.NewPool(ctx, connStr, nil)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			full_name TEXT NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS genres (id BIGSERIAL PRIMARY KEY, name TEXT UNIQUE NOT NULL);
		CREATE TABLE IF NOT EXISTS publishers (id BIGSERIAL PRIMARY KEY, name TEXT UNIQUE NOT NULL);
		CREATE TABLE IF NOT EXISTS esrb_ratings (id BIGSERIAL PRIMARY KEY, name TEXT UNIQUE NOT NULL);
		CREATE TABLE IF NOT EXISTS player_counts (id BIGSERIAL PRIMARY KEY, name TEXT UNIQUE NOT NULL);

		CREATE TABLE IF NOT EXISTS games (
			id BIGSERIAL PRIMARY KEY,
			name TEXT UNIQUE NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price DECIMAL(10,2) NOT NULL CHECK (price >= 0),
			release_date DATE NOT NULL DEFAULT CURRENT_DATE,
			genre_id BIGINT NOT NULL REFERENCES genres(id),
			publisher_id BIGINT NOT NULL REFERENCES publishers(id),
			esrb_id BIGINT NOT NULL REFERENCES esrb_ratings(id),
			players_id BIGINT NOT NULL REFERENCES player_counts(id),
			stock_quantity INTEGER NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS hardware (
			id BIGSERIAL PRIMARY KEY,
			name TEXT UNIQUE NOT NULL,
			price DECIMAL(10,2) NOT NULL CHECK (price >= 0),
			description TEXT NOT NULL DEFAULT '',
			manufacturer TEXT NOT NULL DEFAULT '',
			sku TEXT NOT NULL DEFAULT '',
			upc TEXT NOT NULL DEFAULT '',
			stock_quantity INTEGER NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS cart_items (
			id UUID PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			game_id BIGINT,
			hardware_id BIGINT,
			quantity INTEGER NOT NULL CHECK (quantity >= 1),
			added_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK ((game_id IS NOT NULL)::int + (hardware_id IS NOT NULL)::int = 1)
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_user_game ON cart_items(user_id, game_id) WHERE game_id IS NOT NULL;
		CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_user_hardware ON cart_items(user_id, hardware_id) WHERE hardware_id IS NOT NULL;

		CREATE TABLE IF NOT EXISTS purchases (
			id UUID PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			game_id BIGINT,
			hardware_id BIGINT,
			quantity INTEGER NOT NULL CHECK (quantity >= 1),
			total_price DECIMAL(10,2) NOT NULL,
			purchased_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK ((game_id IS NOT NULL)::int + (hardware_id IS NOT NULL)::int = 1)
		);
		CREATE INDEX IF NOT EXISTS idx_purchases_user ON purchases(user_id, purchased_at DESC);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedCatalog inserts test catalogue data and returns the game and hardware IDs.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool) (gameID, hardwareID int64) {
	t.Helper()

	ctx := context.Background()

	var genreID, publisherID, esrbID, playersID int64
	lookups := []struct {
		table string
		name  string
		dest  *int64
	}{
		{"genres", "Racing", &genreID},
		{"publishers", "Nova Interactive", &publisherID},
		{"esrb_ratings", "E", &esrbID},
		{"player_counts", "1-4", &playersID},
	}
	for _, l := range lookups {
		err := pool.QueryRow(ctx,
			fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1) ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id`, l.table),
			l.name).Scan(l.dest)
		if err != nil {
			t.Fatalf("failed to seed %s: %v", l.table, err)
		}
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO games (name, description, price, genre_id, publisher_id, esrb_id, players_id, stock_quantity)
		 VALUES ('Galaxy Racer', 'Anti-gravity racing.', 19.99, $1, $2, $3, $4, 40) RETURNING id`,
		genreID, publisherID, esrbID, playersID).Scan(&gameID)
	if err != nil {
		t.Fatalf("failed to seed game: %v", err)
	}

	err = pool.QueryRow(ctx,
		`INSERT INTO hardware (name, description, price, manufacturer, sku, upc, stock_quantity)
		 VALUES ('Arcade Stick Pro', 'Eight-button arcade stick.', 89.00, 'Hayashi', 'HP-AS-200', '810004321007', 12) RETURNING id`).Scan(&hardwareID)
	if err != nil {
		t.Fatalf("failed to seed hardware: %v", err)
	}

	return gameID, hardwareID
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"purchases", "cart_items", "games", "hardware", "genres", "publishers", "esrb_ratings", "player_counts", "users"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
