// Package taco covers composing a taco from catalog ingredients: the raw
// draft bound from a form, the validated Taco value, the composition rules
// and the taco proposer.
package taco

import (
	"slices"
	"strings"

	"tacocloud/internal/ingredient"
)

// Draft is the raw form input for a taco. It is never validated in place;
// Build turns it into a Taco or a list of field errors.
type Draft struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
}

// Taco is a named, validated selection of ingredients. Ingredients are
// unique by ID and kept sorted by name.
type Taco struct {
	Name        string                  `json:"name"`
	Ingredients []ingredient.Ingredient `json:"ingredients"`
}

// IngredientIDs returns the IDs of t's ingredients in name order.
func (t Taco) IngredientIDs() []string {
	ids := make([]string, 0, len(t.Ingredients))
	for _, item := range t.Ingredients {
		ids = append(ids, string(item.ID))
	}
	return ids
}

// Draft converts t back to form input, e.g. to pre-fill the design form.
func (t Taco) Draft() Draft {
	return Draft{Name: t.Name, Ingredients: t.IngredientIDs()}
}

func (t Taco) String() string {
	var b strings.Builder
	b.WriteString("Taco '" + t.Name + "'")
	for _, item := range t.Ingredients {
		b.WriteString("\n  " + item.Name + " (" + item.Category.Label() + ")")
	}
	return b.String()
}

// dedupe drops repeated IDs and sorts by name.
func dedupe(items []ingredient.Ingredient) []ingredient.Ingredient {
	seen := make(map[ingredient.ID]bool, len(items))
	out := make([]ingredient.Ingredient, 0, len(items))
	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		out = append(out, item)
	}
	slices.SortFunc(out, ingredient.ByName)
	return out
}
