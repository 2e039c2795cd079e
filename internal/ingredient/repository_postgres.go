package ingredient

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// FIND ALL
// --------------------------------------------------
func (r *PostgresRepository) FindAll(ctx context.Context) ([]Ingredient, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, type
		FROM ingredient
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Ingredient

	for rows.Next() {
		item, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// --------------------------------------------------
// FIND BY ID
// --------------------------------------------------
func (r *PostgresRepository) FindByID(ctx context.Context, id ID) (Ingredient, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, type
		FROM ingredient
		WHERE id = $1
	`, string(id))

	item, err := scanIngredient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Ingredient{}, ErrNotFound
		}
		return Ingredient{}, err
	}

	return item, nil
}

// --------------------------------------------------
// SAVE
// --------------------------------------------------
func (r *PostgresRepository) Save(ctx context.Context, item Ingredient) error {
	id, err := ParseID(string(item.ID))
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO ingredient (id, name, type)
		VALUES ($1, $2, $3)
	`, string(id), item.Name, item.Category.String())

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}

	return err
}

// scanIngredient maps one row. Casing of id and type in the table is
// irrelevant.
func scanIngredient(row pgx.Row) (Ingredient, error) {
	var rawID, name, rawType string

	if err := row.Scan(&rawID, &name, &rawType); err != nil {
		return Ingredient{}, err
	}

	id, err := ParseID(rawID)
	if err != nil {
		return Ingredient{}, fmt.Errorf("ingredient row %q: %w", rawID, err)
	}

	category, err := ParseCategory(rawType)
	if err != nil {
		return Ingredient{}, fmt.Errorf("ingredient row %q: %w", rawID, err)
	}

	return Ingredient{ID: id, Name: name, Category: category}, nil
}
