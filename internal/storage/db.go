package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"orderreg/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS catalog_items (
  position INTEGER PRIMARY KEY,
  sku_id TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  synonyms TEXT NOT NULL,
  importedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_catalog_items_sku ON catalog_items(sku_id);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// ReplaceCatalog swaps the stored catalog for the given items. Positions
// record import order so ListCatalog can return items exactly as loaded.
func (d *DB) ReplaceCatalog(items []internal.CatalogItem) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM catalog_items`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
INSERT INTO catalog_items (position, sku_id, name, synonyms)
VALUES (?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, item := range items {
		synonymsJSON, _ := json.Marshal(item.Synonyms)
		if _, err := stmt.Exec(i, item.SKUID, item.Name, string(synonymsJSON)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListCatalog returns the stored catalog in import order.
func (d *DB) ListCatalog() ([]internal.CatalogItem, error) {
	rows, err := d.conn.Query(`
SELECT sku_id, name, synonyms FROM catalog_items ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.CatalogItem
	for rows.Next() {
		var item internal.CatalogItem
		var synonymsJSON string
		if err := rows.Scan(&item.SKUID, &item.Name, &synonymsJSON); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(synonymsJSON), &item.Synonyms)
		if item.Synonyms == nil {
			item.Synonyms = []string{}
		}
		out = append(out, item)
	}

	return out, rows.Err()
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
