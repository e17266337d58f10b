package catalog

import (
	"context"
	"errors"
)

var ErrCategoryNotFound = errors.New("category not found")

// Product is the catalog's view of an item, before indexing. CategoryId
// still references the category table; the indexer resolves it to a
// display name.
type Product struct {
	Id          string
	Name        string
	Description string
	Price       string
	Stock       int
	Unit        string
	CategoryId  string
}

type Category struct {
	Id   string
	Name string
}

// Source is the storefront's product store, read-only from this module's
// point of view.
type Source interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetCategory(ctx context.Context, id string) (Category, error)
}
