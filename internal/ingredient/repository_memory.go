package ingredient

import (
	"context"
	"sync"
)

type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[ID]Ingredient
	order []ID
}

// NewInMemoryRepository stores a copy of seed. Duplicate IDs in seed keep
// the first entry.
func NewInMemoryRepository(seed []Ingredient) *InMemoryRepository {
	r := &InMemoryRepository{
		items: make(map[ID]Ingredient, len(seed)),
	}
	for _, item := range seed {
		_ = r.Save(context.Background(), item)
	}
	return r
}

func (r *InMemoryRepository) FindAll(ctx context.Context) ([]Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Ingredient, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id ID) (Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return Ingredient{}, ErrNotFound
	}
	return item, nil
}

func (r *InMemoryRepository) Save(ctx context.Context, item Ingredient) error {
	id, err := ParseID(string(item.ID))
	if err != nil {
		return err
	}
	item.ID = id

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; exists {
		return ErrDuplicateID
	}
	r.items[id] = item
	r.order = append(r.order, id)
	return nil
}
