package indexer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/freshmarket/assistant/catalog"
	"github.com/freshmarket/assistant/embedder"
	"github.com/freshmarket/assistant/index"
)

// fallbackCategory labels products whose category cannot be resolved.
const fallbackCategory = "Boshqa"

type Report struct {
	Indexed int `json:"indexed"`
	Skipped int `json:"skipped"`
}

// Builder rebuilds the vector index from the catalog's source of truth.
// Each run fully replaces the index, so it is safe to re-run.
type Builder struct {
	source   catalog.Source
	embedder embedder.Embedder
	index    index.Index
}

func (b *Builder) Sync(ctx context.Context) (Report, error) {
	var report Report

	products, err := b.source.ListProducts(ctx)
	if err != nil {
		return report, fmt.Errorf("list products: %w", err)
	}

	records := make([]index.Record, 0, len(products))
	texts := make([]string, 0, len(products))

	for _, product := range products {
		rec, err := b.mapProduct(ctx, product)
		if err != nil {
			slog.WarnContext(ctx, "skipping product", "id", product.Id, "error", err)
			report.Skipped++
			continue
		}

		records = append(records, rec)
		texts = append(texts, rec.Text)
	}

	vecs, err := b.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return report, fmt.Errorf("embed records: %w", err)
	}

	for i := range records {
		records[i].Embedding = vecs[i]
	}

	if err := b.index.Rebuild(ctx, records); err != nil {
		return report, fmt.Errorf("rebuild index: %w", err)
	}

	report.Indexed = len(records)

	slog.InfoContext(ctx, "index rebuilt", "indexed", report.Indexed, "skipped", report.Skipped)

	return report, nil
}

func (b *Builder) mapProduct(ctx context.Context, product catalog.Product) (index.Record, error) {
	if len(strings.TrimSpace(product.Name)) == 0 {
		return index.Record{}, errors.New("product name is empty")
	}

	category := fallbackCategory
	if len(product.CategoryId) > 0 {
		resolved, err := b.source.GetCategory(ctx, product.CategoryId)
		if err == nil {
			category = resolved.Name
		} else if errors.Is(err, catalog.ErrCategoryNotFound) {
			slog.WarnContext(ctx, "category not found, using fallback", "product", product.Id, "category_id", product.CategoryId)
		} else {
			return index.Record{}, fmt.Errorf("resolve category: %w", err)
		}
	}

	rec := index.Record{
		Id:          product.Id,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Category:    category,
		Stock:       product.Stock,
		Unit:        product.Unit,
	}

	rec.Text = rec.DeriveText()

	return rec, nil
}

func New(source catalog.Source, embedder embedder.Embedder, index index.Index) *Builder {
	if source == nil {
		panic("catalog source is required")
	}

	if embedder == nil {
		panic("embedder is required")
	}

	if index == nil {
		panic("index is required")
	}

	return &Builder{
		source:   source,
		embedder: embedder,
		index:    index,
	}
}
