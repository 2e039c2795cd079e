package taco

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"tacocloud/internal/ingredient"
)

var proposalNames = []string{
	"Jester", "Touchdown", "Steamroller", "Clean Slate", "Boomstick",
	"Beanstalk", "Elephant", "Brown Garden", "Desert Avalanche", "Pink Rhino",
	"Hotcake", "Pigstick", "Dreamstate", "Surprise Party", "Resurrection",
	"Lunar Eclipse", "Snowslide", "Jungle Citadel", "Ocean Rhino", "Hammer",
}

// Template is a named taco recipe expressed in ingredient IDs. An empty
// ID list means "every ingredient in the catalog".
type Template struct {
	Name string
	IDs  []string
}

var predefined = []Template{
	{Name: "Full fat", IDs: []string{"FLTO", "GRBF", "CHED", "JACK", "SRCR"}},
	{Name: "El veggie", IDs: []string{"COTO", "TMTO", "LETC", "SLSA"}},
	{Name: "Just Lettuce", IDs: []string{"FLTO", "LETC", "SRCR"}},
	{Name: "Leon the Professional"},
}

// Proposer suggests tacos. Safe for concurrent use.
type Proposer struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewProposer(src rand.Source) *Proposer {
	return &Proposer{rnd: rand.New(src)}
}

// Propose picks a random selection that satisfies every category rule of
// the catalog and a random name.
func (p *Proposer) Propose(catalog *ingredient.Catalog) Taco {
	p.mu.Lock()
	defer p.mu.Unlock()

	var items []ingredient.Ingredient
	for _, cat := range catalog.Categories() {
		available := catalog.ByCategory(cat)

		atMost := len(available)
		if cat.Exclusive() {
			atMost = 1
		}
		atLeast := 0
		if cat.Mandatory() {
			atLeast = 1
		}

		howMany := atLeast + p.rnd.IntN(atMost-atLeast+1)
		p.rnd.Shuffle(len(available), func(i, j int) {
			available[i], available[j] = available[j], available[i]
		})
		items = append(items, available[:howMany]...)
	}

	name := fmt.Sprintf("%s %d", proposalNames[p.rnd.IntN(len(proposalNames))], p.rnd.IntN(99)+1)
	return Taco{Name: name, Ingredients: dedupe(items)}
}

// Suggest returns one of the predefined tacos with a random number
// appended to its name, used to pre-fill the design form. Templates are
// not checked against the composition rules. ok is false when no template
// resolves against the catalog.
func (p *Proposer) Suggest(catalog *ingredient.Catalog) (Taco, bool) {
	tacos := Predefined(catalog)
	if len(tacos) == 0 {
		return Taco{}, false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	t := tacos[p.rnd.IntN(len(tacos))]
	t.Name = fmt.Sprintf("%s %d", t.Name, p.rnd.IntN(100))
	return t, true
}

// Predefined resolves the built-in templates against catalog. A template
// naming an ingredient the catalog lacks is skipped.
func Predefined(catalog *ingredient.Catalog) []Taco {
	var out []Taco
	for _, tpl := range predefined {
		if len(tpl.IDs) == 0 {
			out = append(out, Taco{Name: tpl.Name, Ingredients: dedupe(catalog.All())})
			continue
		}

		items := make([]ingredient.Ingredient, 0, len(tpl.IDs))
		for _, raw := range tpl.IDs {
			item, ok := catalog.Lookup(raw)
			if !ok {
				break
			}
			items = append(items, item)
		}
		if len(items) != len(tpl.IDs) {
			continue
		}
		out = append(out, Taco{Name: tpl.Name, Ingredients: dedupe(items)})
	}
	return out
}
