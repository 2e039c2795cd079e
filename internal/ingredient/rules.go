package ingredient

type rule struct {
	mandatory bool
	exclusive bool
}

var rules = map[Category]rule{
	Wrap:  {mandatory: true, exclusive: true},
	Sauce: {exclusive: true},
}

// Mandatory reports whether a taco needs at least one ingredient of c.
func (c Category) Mandatory() bool {
	return rules[c].mandatory
}

// Exclusive reports whether a taco may hold at most one ingredient of c.
func (c Category) Exclusive() bool {
	return rules[c].exclusive
}
