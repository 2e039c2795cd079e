package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tacocloud/internal/ingredient"
	"tacocloud/internal/taco"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// SAVE ORDER + TACOS (ATOMIC)
// --------------------------------------------------
func (r *PostgresRepository) Save(ctx context.Context, o *Submitted) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO taco_order (
			id,
			placed_at,
			delivery_name,
			delivery_street,
			delivery_city,
			delivery_state,
			delivery_zip,
			cc_last4,
			cc_digest,
			cc_expiry_year,
			cc_expiry_month
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		o.ID,
		o.PlacedAt,
		o.Delivery.Name,
		o.Delivery.Street,
		o.Delivery.City,
		o.Delivery.State,
		o.Delivery.Zip,
		o.CardLast4,
		o.CardDigest,
		o.CardExpiry.Year,
		int(o.CardExpiry.Month),
	)
	if err != nil {
		return err
	}

	for _, t := range o.Tacos {
		var tacoID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO taco (order_id, name, created_at)
			VALUES ($1, $2, $3)
			RETURNING id
		`, o.ID, t.Name, o.PlacedAt).Scan(&tacoID)
		if err != nil {
			return err
		}

		batch := &pgx.Batch{}
		for _, item := range t.Ingredients {
			batch.Queue(`
				INSERT INTO taco_ingredient (taco_id, ingredient_id)
				VALUES ($1, $2)
			`, tacoID, string(item.ID))
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// --------------------------------------------------
// FIND BY ID
// --------------------------------------------------
func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*Submitted, error) {
	o := &Submitted{ID: id}
	var (
		placedAt time.Time
		month    int
	)

	err := r.db.QueryRow(ctx, `
		SELECT
			placed_at,
			delivery_name,
			delivery_street,
			delivery_city,
			delivery_state,
			delivery_zip,
			cc_last4,
			cc_digest,
			cc_expiry_year,
			cc_expiry_month
		FROM taco_order
		WHERE id = $1
	`, id).Scan(
		&placedAt,
		&o.Delivery.Name,
		&o.Delivery.Street,
		&o.Delivery.City,
		&o.Delivery.State,
		&o.Delivery.Zip,
		&o.CardLast4,
		&o.CardDigest,
		&o.CardExpiry.Year,
		&month,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	o.PlacedAt = placedAt
	o.CardExpiry.Month = time.Month(month)

	rows, err := r.db.Query(ctx, `
		SELECT
			t.id,
			t.name,
			i.id,
			i.name,
			i.type
		FROM taco t
		JOIN taco_ingredient ti
		  ON ti.taco_id = t.id
		JOIN ingredient i
		  ON i.id = ti.ingredient_id
		WHERE t.order_id = $1
		ORDER BY t.name, i.name
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byTaco := map[int64]int{}
	for rows.Next() {
		var (
			tacoID                   int64
			tacoName                 string
			rawID, itemName, rawType string
		)
		if err := rows.Scan(&tacoID, &tacoName, &rawID, &itemName, &rawType); err != nil {
			return nil, err
		}

		category, err := ingredient.ParseCategory(rawType)
		if err != nil {
			return nil, err
		}
		item, err := ingredient.New(rawID, itemName, category)
		if err != nil {
			return nil, err
		}

		idx, seen := byTaco[tacoID]
		if !seen {
			idx = len(o.Tacos)
			byTaco[tacoID] = idx
			o.Tacos = append(o.Tacos, taco.Taco{Name: tacoName})
		}
		o.Tacos[idx].Ingredients = append(o.Tacos[idx].Ingredients, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return o, nil
}
