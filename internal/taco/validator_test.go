package taco

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"tacocloud/internal/ingredient"
)

func mustCatalog(t *testing.T, items []ingredient.Ingredient) *ingredient.Catalog {
	t.Helper()
	c, err := ingredient.NewCatalog(items)
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	return c
}

func smallCatalog(t *testing.T) *ingredient.Catalog {
	return mustCatalog(t, []ingredient.Ingredient{
		{ID: "FLTO", Name: "Flour Tortilla", Category: ingredient.Wrap},
		{ID: "GRBF", Name: "Ground Beef", Category: ingredient.Protein},
		{ID: "CHED", Name: "Cheddar", Category: ingredient.Cheese},
	})
}

func TestValidateName(t *testing.T) {
	cases := map[string]bool{
		"":             false,
		"     ":        false,
		"Taco":         false,
		"  Taco  ":     false,
		"Tacos":        true,
		"  Carne1  ":   true,
		"Leon the Pro": true,
	}
	for name, ok := range cases {
		err := ValidateName(name)
		if ok && err != nil {
			t.Errorf("ValidateName(%q): unexpected error %v", name, err)
		}
		if !ok && !errors.Is(err, ErrNameTooShort) {
			t.Errorf("ValidateName(%q): expected ErrNameTooShort, got %v", name, err)
		}
	}
}

func TestValidateIngredientsMissingMandatory(t *testing.T) {
	c := smallCatalog(t)
	beef, _ := c.Get("GRBF")
	ched, _ := c.Get("CHED")

	err := ValidateIngredients(c.Categories(), []ingredient.Ingredient{beef, ched})
	if err == nil {
		t.Fatalf("expected composition error")
	}
	if err.Error() != "Select at least one wrap" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestValidateIngredientsCollectsAllProblems(t *testing.T) {
	c := mustCatalog(t, ingredient.DefaultIngredients())
	slsa, _ := c.Get("SLSA")
	srcr, _ := c.Get("SRCR")

	err := ValidateIngredients(c.Categories(), []ingredient.Ingredient{slsa, srcr})

	var ce *CompositionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CompositionError, got %T", err)
	}
	if len(ce.Problems) != 2 {
		t.Fatalf("expected 2 problems, got %v", ce.Problems)
	}
	if err.Error() != "Select at least one wrap & Select at most one sauce" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestValidateIngredientsOnlyChecksPresentCategories(t *testing.T) {
	// no wrap in the catalog, so nothing is mandatory
	c := mustCatalog(t, []ingredient.Ingredient{
		{ID: "CHED", Name: "Cheddar", Category: ingredient.Cheese},
	})
	ched, _ := c.Get("CHED")

	if err := ValidateIngredients(c.Categories(), []ingredient.Ingredient{ched}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// Every subset of the reference catalog is flagged exactly when a rule is
// broken.
func TestValidateIngredientsExhaustive(t *testing.T) {
	c := mustCatalog(t, ingredient.DefaultIngredients())
	all := c.All()

	for mask := 0; mask < 1<<len(all); mask++ {
		var picked []ingredient.Ingredient
		counts := map[ingredient.Category]int{}
		for i, item := range all {
			if mask&(1<<i) != 0 {
				picked = append(picked, item)
				counts[item.Category]++
			}
		}

		err := ValidateIngredients(c.Categories(), picked)
		msg := ""
		if err != nil {
			msg = err.Error()
		}

		for _, cat := range c.Categories() {
			wantLeast := cat.Mandatory() && counts[cat] == 0
			wantMost := cat.Exclusive() && counts[cat] > 1

			if got := strings.Contains(msg, "Select at least one "+cat.Label()); got != wantLeast {
				t.Fatalf("mask %b: at-least flag for %v = %v, want %v", mask, cat, got, wantLeast)
			}
			if got := strings.Contains(msg, "Select at most one "+cat.Label()); got != wantMost {
				t.Fatalf("mask %b: at-most flag for %v = %v, want %v", mask, cat, got, wantMost)
			}
		}

		// idempotent
		again := ValidateIngredients(c.Categories(), picked)
		if (again == nil) != (err == nil) || (again != nil && again.Error() != msg) {
			t.Fatalf("mask %b: validation is not idempotent", mask)
		}
	}
}

func TestBuildEndToEnd(t *testing.T) {
	c := smallCatalog(t)

	_, errs := Build(c, Draft{Name: "Carne1", Ingredients: []string{"GRBF", "CHED"}})
	if got := errs.For("ingredients"); len(got) != 1 || got[0] != "Select at least one wrap" {
		t.Fatalf("unexpected errors: %v", errs)
	}

	taco, errs := Build(c, Draft{Name: " Carne1 ", Ingredients: []string{"flto", "GRBF", "CHED", "FLTO"}})
	if !errs.Empty() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if taco.Name != "Carne1" {
		t.Fatalf("expected trimmed name, got %q", taco.Name)
	}
	if len(taco.Ingredients) != 3 {
		t.Fatalf("expected duplicate ids collapsed, got %v", taco.IngredientIDs())
	}
	if taco.Ingredients[0].Name != "Cheddar" {
		t.Fatalf("expected ingredients sorted by name, got %v", taco.IngredientIDs())
	}
}

func TestBuildReportsEveryField(t *testing.T) {
	c := smallCatalog(t)

	taco, errs := Build(c, Draft{Name: "abc", Ingredients: []string{"XXXX", "GRBF"}})
	if taco.Name != "" || taco.Ingredients != nil {
		t.Fatalf("expected zero taco on failure, got %+v", taco)
	}
	if len(errs.For("name")) != 1 {
		t.Fatalf("expected one name error, got %v", errs)
	}
	ingr := errs.For("ingredients")
	if len(ingr) != 2 || !strings.Contains(ingr[0], "XXXX") || ingr[1] != "Select at least one wrap" {
		t.Fatalf("unexpected ingredient errors: %v", ingr)
	}

	_, errs = Build(c, Draft{Name: "Empty taco"})
	if got := errs.For("ingredients"); len(got) != 1 || got[0] != ErrNoIngredients.Error() {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestProposeAlwaysValid(t *testing.T) {
	c := mustCatalog(t, ingredient.DefaultIngredients())
	p := NewProposer(rand.NewPCG(1, 2))

	for i := 0; i < 200; i++ {
		taco := p.Propose(c)
		if _, errs := Build(c, taco.Draft()); !errs.Empty() {
			t.Fatalf("proposal %q is invalid: %v", taco.Name, errs)
		}
	}
}

func TestPredefinedAndSuggest(t *testing.T) {
	c := mustCatalog(t, ingredient.DefaultIngredients())

	tacos := Predefined(c)
	if len(tacos) != 4 {
		t.Fatalf("expected 4 predefined tacos, got %d", len(tacos))
	}
	if len(tacos[3].Ingredients) != c.Len() {
		t.Fatalf("expected %q to hold every ingredient", tacos[3].Name)
	}

	// templates referencing missing ingredients are skipped
	if got := Predefined(smallCatalog(t)); len(got) != 1 {
		t.Fatalf("expected only the all-ingredients template, got %d", len(got))
	}

	p := NewProposer(rand.NewPCG(3, 4))
	s, ok := p.Suggest(c)
	if !ok || s.Name == "" || len(s.Ingredients) == 0 {
		t.Fatalf("unexpected suggestion %+v %v", s, ok)
	}
}
