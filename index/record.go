package index

import "fmt"

// Record is a product as stored in the vector index. Id is the catalog's
// stable external identifier, not a row id of the underlying store.
type Record struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	Unit        string    `json:"unit"`
	Text        string    `json:"text"`
	Embedding   []float32 `json:"embedding,omitempty"`
	Score       float32   `json:"score,omitempty"`
}

// DeriveText builds the embedding input from the record's display fields.
// The derivation is deterministic so re-embedding an unchanged record is
// idempotent.
func (r Record) DeriveText() string {
	return fmt.Sprintf("%s. %s. Kategoriya: %s. Narxi: %s so'm.", r.Name, r.Description, r.Category, r.Price)
}
