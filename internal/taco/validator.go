package taco

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"tacocloud/internal/ingredient"
	"tacocloud/internal/validation"
)

const MinNameLength = 5

var (
	ErrNameTooShort      = fmt.Errorf("Name must be at least %d characters long", MinNameLength)
	ErrNoIngredients     = errors.New("You must choose at least 1 ingredient")
	ErrUnknownIngredient = errors.New("Unknown ingredient")
)

// CompositionError lists every category rule a selection breaks.
type CompositionError struct {
	Problems []string
}

func (e *CompositionError) Error() string {
	return strings.Join(e.Problems, " & ")
}

// ValidateName fails for blank names and names shorter than MinNameLength
// after trimming.
func ValidateName(name string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < MinNameLength {
		return ErrNameTooShort
	}
	return nil
}

// ValidateIngredients checks items against the rules of each category in
// categories. All violations are collected; the result is nil or a
// *CompositionError.
func ValidateIngredients(categories []ingredient.Category, items []ingredient.Ingredient) error {
	var problems []string

	for _, cat := range categories {
		n := 0
		for _, item := range items {
			if item.Category == cat {
				n++
			}
		}

		if cat.Mandatory() && n == 0 {
			problems = append(problems, "Select at least one "+cat.Label())
		}
		if cat.Exclusive() && n > 1 {
			problems = append(problems, "Select at most one "+cat.Label())
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return &CompositionError{Problems: problems}
}

// Build resolves a draft against the catalog and validates it. Either the
// returned Taco is valid and errs is empty, or errs lists what is wrong
// and the Taco is the zero value.
func Build(catalog *ingredient.Catalog, d Draft) (Taco, validation.Errors) {
	var errs validation.Errors

	name := strings.TrimSpace(d.Name)
	errs.Check("name", ValidateName(name))

	var items []ingredient.Ingredient
	for _, raw := range d.Ingredients {
		item, ok := catalog.Lookup(raw)
		if !ok {
			errs.Add("ingredients", fmt.Sprintf("%s %q", ErrUnknownIngredient, raw))
			continue
		}
		items = append(items, item)
	}
	items = dedupe(items)

	if len(d.Ingredients) == 0 {
		errs.Check("ingredients", ErrNoIngredients)
	} else {
		errs.Check("ingredients", ValidateIngredients(catalog.Categories(), items))
	}

	if !errs.Empty() {
		return Taco{}, errs
	}
	return Taco{Name: name, Ingredients: items}, nil
}
