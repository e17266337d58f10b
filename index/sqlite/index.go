package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/freshmarket/assistant/index"
	_ "github.com/mattn/go-sqlite3"
)

const defaultLocation = "./data/products.db"

const schema = `
	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		price TEXT NOT NULL,
		category TEXT NOT NULL,
		stock INTEGER NOT NULL,
		unit TEXT NOT NULL,
		text TEXT NOT NULL,
		embedding BLOB NOT NULL
	);
`

// sqliteIndex persists the product snapshot in a single sqlite file.
// The file is only created by Rebuild; opening a missing snapshot leaves
// the index in the absent state.
type sqliteIndex struct {
	options index.Options
	path    string
	mtx     sync.RWMutex
	db      *sql.DB
}

func (s *sqliteIndex) Rebuild(ctx context.Context, records []index.Record) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.db == nil {
		db, err := open(s.path, true)
		if err != nil {
			return fmt.Errorf("create index at %s: %w", s.path, err)
		}
		s.db = db
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM products"); err != nil {
		return fmt.Errorf("clear index: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (id, name, description, price, category, stock, unit, text, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		embedding, err := json.Marshal(rec.Embedding)
		if err != nil {
			return fmt.Errorf("encode embedding for %s: %w", rec.Id, err)
		}

		if _, err := stmt.ExecContext(
			ctx,
			rec.Id,
			rec.Name,
			rec.Description,
			rec.Price,
			rec.Category,
			rec.Stock,
			rec.Unit,
			rec.Text,
			embedding,
		); err != nil {
			return fmt.Errorf("insert %s: %w", rec.Id, err)
		}
	}

	return tx.Commit()
}

func (s *sqliteIndex) Search(ctx context.Context, vector []float32, k int) ([]index.Record, error) {
	if k < 1 {
		return nil, nil
	}

	candidates, err := s.load(ctx, 0)
	if err != nil {
		return nil, err
	}

	return index.Rank(candidates, vector, k), nil
}

func (s *sqliteIndex) List(ctx context.Context, limit int) ([]index.Record, error) {
	return s.load(ctx, limit)
}

func (s *sqliteIndex) Count(ctx context.Context) (int, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if s.db == nil {
		return 0, index.ErrAbsent
	}

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}

	return count, nil
}

func (s *sqliteIndex) load(ctx context.Context, limit int) ([]index.Record, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if s.db == nil {
		return nil, index.ErrAbsent
	}

	query := "SELECT id, name, description, price, category, stock, unit, text, embedding FROM products"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []index.Record

	for rows.Next() {
		var rec index.Record
		var embedding []byte

		if err := rows.Scan(
			&rec.Id,
			&rec.Name,
			&rec.Description,
			&rec.Price,
			&rec.Category,
			&rec.Stock,
			&rec.Unit,
			&rec.Text,
			&embedding,
		); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}

		if err := json.Unmarshal(embedding, &rec.Embedding); err != nil {
			return nil, fmt.Errorf("decode embedding for %s: %w", rec.Id, err)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func open(path string, create bool) (*sql.DB, error) {
	if create {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	mode := "rw"
	if create {
		mode = "rwc"
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=%s", path, mode))
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func NewIndex(opts ...index.Option) (index.Index, error) {
	options := index.NewOptions(opts...)

	path := options.Location
	if len(path) == 0 {
		path = defaultLocation
	}

	s := &sqliteIndex{
		options: options,
		path:    path,
	}

	if _, err := os.Stat(path); err == nil {
		db, err := open(path, false)
		if err != nil {
			return nil, fmt.Errorf("open index at %s: %w", path, err)
		}
		s.db = db
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat index at %s: %w", path, err)
	}

	return s, nil
}
