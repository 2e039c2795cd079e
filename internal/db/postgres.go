package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tacocloud/internal/ingredient"
	"tacocloud/internal/logger"
)

// Connect opens a pool, checks it and makes sure the schema exists.
func Connect(ctx context.Context, dsn string, log *logger.Logger) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	log.Info("connected to postgres")

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	log.Info("schema initialized")
	return db, nil
}

// initSchema creates or updates the database schema
func initSchema(ctx context.Context, db *pgxpool.Pool) error {
	// -------------------------------
	// INGREDIENTS
	// -------------------------------
	ingredientSQL := `
		CREATE TABLE IF NOT EXISTS ingredient (
			id VARCHAR(4) PRIMARY KEY,
			name VARCHAR(25) NOT NULL,
			type VARCHAR(10) NOT NULL
		)
	`
	if _, err := db.Exec(ctx, ingredientSQL); err != nil {
		return err
	}

	// -------------------------------
	// ORDERS
	// -------------------------------
	orderSQL := `
		CREATE TABLE IF NOT EXISTS taco_order (
			id UUID PRIMARY KEY,
			placed_at TIMESTAMPTZ NOT NULL,
			delivery_name VARCHAR(50) NOT NULL,
			delivery_street VARCHAR(50) NOT NULL,
			delivery_city VARCHAR(50) NOT NULL,
			delivery_state VARCHAR(20) NOT NULL,
			delivery_zip VARCHAR(10) NOT NULL,
			cc_last4 VARCHAR(4) NOT NULL,
			cc_digest VARCHAR(72) NOT NULL,
			cc_expiry_year INT NOT NULL,
			cc_expiry_month INT NOT NULL
		)
	`
	if _, err := db.Exec(ctx, orderSQL); err != nil {
		return err
	}

	// -------------------------------
	// TACOS
	// -------------------------------
	tacoSQL := `
		CREATE TABLE IF NOT EXISTS taco (
			id BIGSERIAL PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES taco_order(id) ON DELETE CASCADE,
			name VARCHAR(50) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (order_id, name)
		);

		CREATE TABLE IF NOT EXISTS taco_ingredient (
			taco_id BIGINT NOT NULL REFERENCES taco(id) ON DELETE CASCADE,
			ingredient_id VARCHAR(4) NOT NULL REFERENCES ingredient(id),
			PRIMARY KEY (taco_id, ingredient_id)
		);
	`
	if _, err := db.Exec(ctx, tacoSQL); err != nil {
		return err
	}

	return nil
}

// SeedIngredients inserts items that are not stored yet and returns how
// many were added. Existing rows are left alone.
func SeedIngredients(ctx context.Context, db *pgxpool.Pool, items []ingredient.Ingredient) (int, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	added := 0
	for _, item := range items {
		tag, err := tx.Exec(ctx, `
			INSERT INTO ingredient (id, name, type)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO NOTHING
		`, string(item.ID), item.Name, item.Category.String())
		if err != nil {
			return 0, fmt.Errorf("seed %s: %w", item.ID, err)
		}
		added += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return added, nil
}
