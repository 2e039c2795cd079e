// Package ingredient holds the ingredient catalog: identifiers, categories
// and their composition rules, the read-only lookup table built at startup
// and the stores it is loaded from.
package ingredient

import (
	"errors"
	"fmt"
	"slices"
)

var ErrDuplicateID = errors.New("duplicate ingredient id")

// Catalog is an immutable lookup table of ingredients. It is safe for
// concurrent readers once constructed. Reloading means building a new
// Catalog and swapping it in a Provider.
type Catalog struct {
	byID       map[ID]Ingredient
	byCategory map[Category][]Ingredient
	categories []Category
}

// NewCatalog fails if two entries share the same normalized ID.
func NewCatalog(items []Ingredient) (*Catalog, error) {
	c := &Catalog{
		byID:       make(map[ID]Ingredient, len(items)),
		byCategory: make(map[Category][]Ingredient),
	}

	for _, item := range items {
		id, err := ParseID(string(item.ID))
		if err != nil {
			return nil, fmt.Errorf("ingredient %q: %w", item.Name, err)
		}
		item.ID = id

		if _, clash := c.byID[id]; clash {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		c.byID[id] = item
		c.byCategory[item.Category] = append(c.byCategory[item.Category], item)
	}

	for cat, list := range c.byCategory {
		slices.SortFunc(list, ByName)
		c.categories = append(c.categories, cat)
	}
	slices.Sort(c.categories)

	return c, nil
}

// Get returns the ingredient with the given ID, or false.
func (c *Catalog) Get(id ID) (Ingredient, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// Lookup normalizes raw before looking it up. A blank raw ID is simply
// absent.
func (c *Catalog) Lookup(raw string) (Ingredient, bool) {
	id, err := ParseID(raw)
	if err != nil {
		return Ingredient{}, false
	}
	return c.Get(id)
}

// ByCategory returns the ingredients of cat sorted by name. The returned
// slice is a copy.
func (c *Catalog) ByCategory(cat Category) []Ingredient {
	return slices.Clone(c.byCategory[cat])
}

// Categories lists the categories present in the loaded data in
// declaration order.
func (c *Catalog) Categories() []Category {
	return slices.Clone(c.categories)
}

// All returns every ingredient grouped by category, then by name.
func (c *Catalog) All() []Ingredient {
	out := make([]Ingredient, 0, len(c.byID))
	for _, cat := range c.categories {
		out = append(out, c.byCategory[cat]...)
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.byID)
}
