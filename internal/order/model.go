package order

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"tacocloud/internal/payment"
	"tacocloud/internal/taco"
)

var (
	ErrDuplicateTaco = errors.New("There already is a taco")
	ErrEmptyOrder    = errors.New("Design at least one taco before ordering")
	ErrNotFound      = errors.New("order not found")
)

// Order is the taco collection being assembled in one session. Tacos are
// keyed by name.
type Order struct {
	tacos map[string]taco.Taco
}

func New() *Order {
	return &Order{tacos: make(map[string]taco.Taco)}
}

// AddTaco stores t under its trimmed name. The taco must already have
// passed taco.Build; composition is not checked again here. Fails with
// ErrDuplicateTaco, leaving the order unchanged, if the name is taken.
func (o *Order) AddTaco(t taco.Taco) error {
	name := strings.TrimSpace(t.Name)
	if _, exists := o.tacos[name]; exists {
		return fmt.Errorf("%w named %s", ErrDuplicateTaco, name)
	}
	t.Name = name
	o.tacos[name] = t
	return nil
}

// TacoNames returns the names in lexicographic order. Never nil.
func (o *Order) TacoNames() []string {
	names := make([]string, 0, len(o.tacos))
	for name := range o.tacos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tacos returns the tacos ordered by name.
func (o *Order) Tacos() []taco.Taco {
	out := make([]taco.Taco, 0, len(o.tacos))
	for _, name := range o.TacoNames() {
		out = append(out, o.tacos[name])
	}
	return out
}

func (o *Order) Taco(name string) (taco.Taco, bool) {
	t, ok := o.tacos[strings.TrimSpace(name)]
	return t, ok
}

func (o *Order) Len() int {
	return len(o.tacos)
}

// Address is the delivery section of the order form.
type Address struct {
	Name   string `json:"name"`
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

func (a Address) trimmed() Address {
	return Address{
		Name:   strings.TrimSpace(a.Name),
		Street: strings.TrimSpace(a.Street),
		City:   strings.TrimSpace(a.City),
		State:  strings.TrimSpace(a.State),
		Zip:    strings.TrimSpace(a.Zip),
	}
}

// Submitted is a finalized order as persisted and archived. Only the last
// four digits and a bcrypt digest of the card number are kept.
type Submitted struct {
	ID         uuid.UUID         `json:"id"`
	PlacedAt   time.Time         `json:"placed_at"`
	Delivery   Address           `json:"delivery"`
	CardLast4  string            `json:"card_last4"`
	CardExpiry payment.YearMonth `json:"card_expiry"`
	CardDigest string            `json:"-"`
	Tacos      []taco.Taco       `json:"tacos"`
}

func (s *Submitted) TacoNames() []string {
	names := make([]string, 0, len(s.Tacos))
	for _, t := range s.Tacos {
		names = append(names, t.Name)
	}
	slices.Sort(names)
	return names
}
