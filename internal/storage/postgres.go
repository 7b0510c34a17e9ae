package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/example/storefront/internal/domain/cart"
	_ "github.com/lib/pq"
)

// PostgresStorage stores carts in a single PostgreSQL table, one row per
// cart id with the serialized item list as JSONB.
type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

// EnsureSchema creates the carts table if it does not exist.
func (p *PostgresStorage) EnsureSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS carts (
			cart_id    TEXT PRIMARY KEY,
			items      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create carts table: %w", err)
	}
	return nil
}

func (p *PostgresStorage) Load(ctx context.Context, cartID string) ([]cart.Item, error) {
	var data []byte
	err := p.db.QueryRowContext(ctx,
		"SELECT items FROM carts WHERE cart_id = $1", cartID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var items []cart.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse stored cart: %w", err)
	}
	return items, nil
}

func (p *PostgresStorage) Save(ctx context.Context, cartID string, items []cart.Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	_, err = p.db.ExecContext(ctx,
		`INSERT INTO carts (cart_id, items, updated_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (cart_id) DO UPDATE SET items = EXCLUDED.items, updated_at = EXCLUDED.updated_at`,
		cartID, data, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (p *PostgresStorage) Delete(ctx context.Context, cartID string) error {
	if _, err := p.db.ExecContext(ctx, "DELETE FROM carts WHERE cart_id = $1", cartID); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// ConnectPostgres establishes a connection to PostgreSQL.
func ConnectPostgres(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}
