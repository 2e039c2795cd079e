package ingredient

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyID         = errors.New("empty ingredient id")
	ErrUnknownCategory = errors.New("unknown ingredient category")
)

// ID is an ingredient identifier. Always trimmed, upper-case and non-empty
// when obtained through ParseID.
type ID string

func ParseID(raw string) (ID, error) {
	id := strings.ToUpper(strings.TrimSpace(raw))
	if id == "" {
		return "", ErrEmptyID
	}
	return ID(id), nil
}

func (id ID) String() string {
	return string(id)
}

// Category is the kind of an ingredient. The declaration order is the
// display order.
type Category int

const (
	Wrap Category = iota
	Protein
	Veggies
	Cheese
	Sauce
)

var categoryNames = [...]string{
	Wrap:    "WRAP",
	Protein: "PROTEIN",
	Veggies: "VEGGIES",
	Cheese:  "CHEESE",
	Sauce:   "SAUCE",
}

// AllCategories lists every category in declaration order.
func AllCategories() []Category {
	return []Category{Wrap, Protein, Veggies, Cheese, Sauce}
}

// ParseCategory is case-insensitive.
func ParseCategory(raw string) (Category, error) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Label is the lower-case name used in user-facing messages and JSON keys.
func (c Category) Label() string {
	return strings.ToLower(c.String())
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.Label()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Ingredient is identified by ID alone; two values with the same ID are
// the same ingredient.
type Ingredient struct {
	ID       ID       `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

func New(rawID, name string, category Category) (Ingredient, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return Ingredient{}, err
	}
	return Ingredient{ID: id, Name: name, Category: category}, nil
}

func (i Ingredient) Same(other Ingredient) bool {
	return i.ID == other.ID
}

// ByName orders ingredients by name, then ID for a stable result.
func ByName(a, b Ingredient) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return strings.Compare(string(a.ID), string(b.ID))
}
