package ingredient

// DefaultIngredients is the reference data the service ships with.
func DefaultIngredients() []Ingredient {
	return []Ingredient{
		{ID: "FLTO", Name: "Flour Tortilla", Category: Wrap},
		{ID: "COTO", Name: "Corn Tortilla", Category: Wrap},
		{ID: "GRBF", Name: "Ground Beef", Category: Protein},
		{ID: "CARN", Name: "Carnitas", Category: Protein},
		{ID: "TMTO", Name: "Diced Tomatoes", Category: Veggies},
		{ID: "LETC", Name: "Lettuce", Category: Veggies},
		{ID: "CHED", Name: "Cheddar", Category: Cheese},
		{ID: "JACK", Name: "Monterrey Jack", Category: Cheese},
		{ID: "SLSA", Name: "Salsa", Category: Sauce},
		{ID: "SRCR", Name: "Sour Cream", Category: Sauce},
	}
}
