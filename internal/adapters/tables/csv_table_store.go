package tables

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CSV-file-backed implementation of the TableStore port. Each table is one
// <name>.csv file under Dir.
type CSVTableStore struct {
	Dir string
}

func NewCSVTableStore(dir string) *CSVTableStore {
	return &CSVTableStore{Dir: dir}
}

// Read all rows of the named table. Rows are allowed to have varying
// lengths; short rows are expected input for the normalizer, not a read
// error.
func (s *CSVTableStore) ReadTable(ctx context.Context, name string) ([][]string, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read table %q: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read table %q: parse csv: %w", name, err)
	}

	return rows, nil
}

// Replace the named table's contents. The write goes through a temp file and
// rename so a failed run never leaves a truncated table behind.
func (s *CSVTableStore) WriteTable(ctx context.Context, name string, rows [][]string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write table %q: %w", name, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+name+"-*.csv")
	if err != nil {
		return fmt.Errorf("write table %q: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		return fmt.Errorf("write table %q: write csv: %w", name, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("write table %q: flush csv: %w", name, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write table %q: %w", name, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write table %q: %w", name, err)
	}

	return nil
}

func (s *CSVTableStore) path(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.New("csv table store: table name must not be empty")
	}
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("csv table store: invalid table name %q", name)
	}
	return filepath.Join(s.Dir, name+".csv"), nil
}
