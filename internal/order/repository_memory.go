package order

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*Submitted
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		orders: make(map[uuid.UUID]*Submitted),
	}
}

func (r *InMemoryRepository) Save(ctx context.Context, o *Submitted) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*Submitted, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}
