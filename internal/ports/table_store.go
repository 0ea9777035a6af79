package ports

import "context"

// Port: a boundary for reading and writing named tables of string rows.
// The core treats the first row as a header and the remainder as data; rows
// may have varying lengths.
type TableStore interface {
	// Read all rows of the named table in order.
	ReadTable(ctx context.Context, name string) ([][]string, error)
	// Replace the named table's contents with the given rows.
	WriteTable(ctx context.Context, name string, rows [][]string) error
}
