package ingredient

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("ingredient not found")

// Repository is the backing store the catalog is loaded from.
type Repository interface {
	// FindAll returns every stored ingredient. A row that cannot be read
	// fails the whole call; there is no partial result.
	FindAll(ctx context.Context) ([]Ingredient, error)

	FindByID(ctx context.Context, id ID) (Ingredient, error)

	// Save inserts a new ingredient. ErrDuplicateID if the ID is taken.
	Save(ctx context.Context, item Ingredient) error
}
