package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mileage-report-service/internal/domain"
)

func TestGroupByDateOrdersBySequence(t *testing.T) {
	records := []domain.StopRecord{
		{Date: "2024-05-01", Sequence: 3, BusinessName: "C"},
		{Date: "2024-05-01", Sequence: 1, BusinessName: "A"},
		{Date: "2024-05-02", Sequence: 1, BusinessName: "D"},
		{Date: "2024-05-01", Sequence: 2, BusinessName: "B"},
	}

	itineraries := GroupByDate(records)
	require.Len(t, itineraries, 2)

	day := itineraries["2024-05-01"]
	require.Len(t, day.Stops, 3)
	assert.Equal(t, []int{1, 2, 3}, sequences(day.Stops))
}

func TestGroupByDateStableOnSequenceTies(t *testing.T) {
	records := []domain.StopRecord{
		{Date: "2024-05-01", Sequence: 1, BusinessName: "first"},
		{Date: "2024-05-01", Sequence: 1, BusinessName: "second"},
		{Date: "2024-05-01", Sequence: 1, BusinessName: "third"},
	}

	day := GroupByDate(records)["2024-05-01"]
	require.Len(t, day.Stops, 3)
	assert.Equal(t, "first", day.Stops[0].BusinessName)
	assert.Equal(t, "second", day.Stops[1].BusinessName)
	assert.Equal(t, "third", day.Stops[2].BusinessName)
}

func TestGroupByDateIsLiteralStringGrouping(t *testing.T) {
	// Semantically identical dates in different formats stay distinct.
	records := []domain.StopRecord{
		{Date: "2024-05-05", Sequence: 1},
		{Date: "05/05/2024", Sequence: 1},
	}

	itineraries := GroupByDate(records)
	assert.Len(t, itineraries, 2)
}

func sequences(stops []domain.StopRecord) []int {
	out := make([]int, 0, len(stops))
	for _, s := range stops {
		out = append(out, s.Sequence)
	}
	return out
}
