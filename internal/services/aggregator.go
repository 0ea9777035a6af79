package services

import (
	"slices"

	"mileage-report-service/internal/domain"
)

// GroupByDate groups StopRecords into per-day itineraries.
//
// The grouping key is the literal date string: no parsing or normalization
// happens here, so "2024-05-05" and "05/05/2024" are distinct days even if
// semantically identical. Within a day, stops sort ascending by sequence;
// the sort is stable so equal sequence numbers keep input order.
func GroupByDate(records []domain.StopRecord) map[string]domain.DayItinerary {
	byDate := make(map[string][]domain.StopRecord)
	for _, r := range records {
		byDate[r.Date] = append(byDate[r.Date], r)
	}

	itineraries := make(map[string]domain.DayItinerary, len(byDate))
	for date, stops := range byDate {
		slices.SortStableFunc(stops, func(a, b domain.StopRecord) int {
			return a.Sequence - b.Sequence
		})
		itineraries[date] = domain.DayItinerary{Date: date, Stops: stops}
	}

	return itineraries
}
