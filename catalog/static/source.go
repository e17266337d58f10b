package static

import (
	"context"

	"github.com/freshmarket/assistant/catalog"
)

// staticSource serves a fixed snapshot. Used for demos and tests.
type staticSource struct {
	products   []catalog.Product
	categories map[string]catalog.Category
}

func (s *staticSource) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	cpy := make([]catalog.Product, len(s.products))
	copy(cpy, s.products)

	return cpy, nil
}

func (s *staticSource) GetCategory(ctx context.Context, id string) (catalog.Category, error) {
	category, ok := s.categories[id]
	if !ok {
		return catalog.Category{}, catalog.ErrCategoryNotFound
	}

	return category, nil
}

func NewSource(products []catalog.Product, categories []catalog.Category) catalog.Source {
	s := &staticSource{
		products:   products,
		categories: map[string]catalog.Category{},
	}

	for _, category := range categories {
		s.categories[category.Id] = category
	}

	return s
}
