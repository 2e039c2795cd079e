package ingredient

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"tacocloud/internal/logger"
)

type yamlFile struct {
	Ingredients []yamlIngredient `yaml:"ingredients"`
}

type yamlIngredient struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
}

// DecodeYAML reads an ingredient list of the form
//
//	ingredients:
//	  - id: FLTO
//	    name: Flour Tortilla
//	    category: wrap
//
// Any malformed entry fails the whole document.
func DecodeYAML(r io.Reader) ([]Ingredient, error) {
	var doc yamlFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	items := make([]Ingredient, 0, len(doc.Ingredients))
	for i, entry := range doc.Ingredients {
		category, err := ParseCategory(entry.Category)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		item, err := New(entry.ID, entry.Name, category)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func LoadYAML(path string) ([]Ingredient, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeYAML(f)
}

// Load builds a catalog from everything in repo.
func Load(ctx context.Context, repo Repository) (*Catalog, error) {
	items, err := repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ingredients: %w", err)
	}
	return NewCatalog(items)
}

// Provider hands out the current catalog and replaces it on Reload.
// Readers never observe a partially built catalog.
type Provider struct {
	repo    Repository
	log     *logger.Logger
	current atomic.Pointer[Catalog]
}

// NewProvider loads the initial catalog. An error here is fatal for the
// caller; there is no usable provider without a catalog.
func NewProvider(ctx context.Context, repo Repository, log *logger.Logger) (*Provider, error) {
	p := &Provider{repo: repo, log: log.WithComponent("catalog")}
	if _, err := p.Reload(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Provider) Catalog() *Catalog {
	return p.current.Load()
}

// Reload rebuilds the catalog from the repository. On failure the previous
// catalog stays in place.
func (p *Provider) Reload(ctx context.Context) (*Catalog, error) {
	c, err := Load(ctx, p.repo)
	if err != nil {
		p.log.Error("catalog reload failed", "error", err)
		return nil, err
	}
	p.current.Store(c)
	p.log.Info("catalog loaded",
		"ingredients", c.Len(),
		"categories", len(c.Categories()))
	return c, nil
}

func (p *Provider) Repository() Repository {
	return p.repo
}
