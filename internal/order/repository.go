package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists submitted orders.
type Repository interface {
	Save(ctx context.Context, o *Submitted) error
	FindByID(ctx context.Context, id uuid.UUID) (*Submitted, error)
}
