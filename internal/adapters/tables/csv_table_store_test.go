package tables

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVTableStoreRoundTrip(t *testing.T) {
	store := NewCSVTableStore(t.TempDir())
	ctx := context.Background()

	rows := [][]string{
		{"Date", "Order", "Latitude", "Longitude", "Business", "Address", "Place ID"},
		{"2024-05-01", "1", "10.0", "20.0", "A", "123 St", "pid1"},
		{"2024-05-01", "2", "10.1", "20.1", "B", "456 St"},
	}

	require.NoError(t, store.WriteTable(ctx, "locations_log", rows))

	got, err := store.ReadTable(ctx, "locations_log")
	require.NoError(t, err)

	// Short rows must survive the round trip unchanged; the normalizer, not
	// the store, judges them.
	assert.Equal(t, rows, got)
}

func TestCSVTableStoreMissingTable(t *testing.T) {
	store := NewCSVTableStore(t.TempDir())

	_, err := store.ReadTable(context.Background(), "absent")
	require.Error(t, err)
}

func TestCSVTableStoreRejectsPathyNames(t *testing.T) {
	store := NewCSVTableStore(t.TempDir())

	_, err := store.ReadTable(context.Background(), "../escape")
	require.Error(t, err)

	err = store.WriteTable(context.Background(), "", nil)
	require.Error(t, err)
}

func TestCSVTableStoreOverwrites(t *testing.T) {
	store := NewCSVTableStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.WriteTable(ctx, "t", [][]string{{"a"}, {"b"}}))
	require.NoError(t, store.WriteTable(ctx, "t", [][]string{{"c"}}))

	got, err := store.ReadTable(ctx, "t")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"c"}}, got)
}
