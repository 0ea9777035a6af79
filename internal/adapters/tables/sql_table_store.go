package tables

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Postgres-backed implementation of the TableStore port. Rows are stored
// one record per table row with cells as a JSON array, which keeps the
// variable-length row shape intact across the round trip.
type SQLTableStore struct {
	DB *sql.DB
}

func NewSQLTableStore(db *sql.DB) *SQLTableStore {
	return &SQLTableStore{DB: db}
}

// InitSchema creates the backing table if it does not exist.
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS log_tables (
		table_name TEXT NOT NULL,
		row_index  INTEGER NOT NULL,
		cells      JSONB NOT NULL,
		PRIMARY KEY (table_name, row_index)
	);
	`)
	if err != nil {
		return fmt.Errorf("init table store schema: %w", err)
	}
	return nil
}

// Read all rows of the named table in stored order.
func (s *SQLTableStore) ReadTable(ctx context.Context, name string) ([][]string, error) {
	if s.DB == nil {
		return nil, errors.New("sql table store: db is nil")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("read table: name must not be empty")
	}

	q := `
	SELECT cells
	FROM log_tables
	WHERE table_name = $1
	ORDER BY row_index;
	`
	rows, err := s.DB.QueryContext(ctx, q, name)
	if err != nil {
		return nil, fmt.Errorf("read table %q: query log_tables: %w", name, err)
	}
	defer rows.Close()

	out := make([][]string, 0, 64)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("read table %q: scan row: %w", name, err)
		}

		var cells []string
		if err := json.Unmarshal(raw, &cells); err != nil {
			return nil, fmt.Errorf("read table %q: decode cells: %w", name, err)
		}
		out = append(out, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read table %q: row iteration: %w", name, err)
	}

	return out, nil
}

// Replace the named table's contents atomically.
func (s *SQLTableStore) WriteTable(ctx context.Context, name string, tableRows [][]string) error {
	if s.DB == nil {
		return errors.New("sql table store: db is nil")
	}
	if strings.TrimSpace(name) == "" {
		return errors.New("write table: name must not be empty")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write table %q: db begin: %w", name, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM log_tables WHERE table_name = $1;`, name); err != nil {
		return fmt.Errorf("write table %q: clear rows: %w", name, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO log_tables (table_name, row_index, cells)
	VALUES ($1, $2, $3);
	`)
	if err != nil {
		return fmt.Errorf("write table %q: db prepare: %w", name, err)
	}
	defer stmt.Close()

	for i, cells := range tableRows {
		encoded, err := json.Marshal(cells)
		if err != nil {
			return fmt.Errorf("write table %q: encode row %d: %w", name, i, err)
		}
		if _, err := stmt.ExecContext(ctx, name, i, encoded); err != nil {
			return fmt.Errorf("write table %q: insert row %d: %w", name, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write table %q: commit: %w", name, err)
	}

	return nil
}
