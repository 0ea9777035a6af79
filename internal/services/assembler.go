package services

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"slices"
	"strings"

	"mileage-report-service/internal/domain"
)

// SortDirection orders report rows by date string.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// AssembleReport resolves every itinerary and splits the results into
// successful day rows and the route-error bucket.
//
// Dates sort by plain lexicographic comparison in the configured direction,
// which matches chronological order only when all dates share one
// lexicographically ordered format such as YYYY-MM-DD. That contract is on
// the upstream data, not enforced here.
func AssembleReport(
	ctx context.Context,
	itineraries map[string]domain.DayItinerary,
	resolver *Resolver,
	direction SortDirection,
) ([]domain.ReportRow, []domain.RawRow, error) {
	dates := make([]string, 0, len(itineraries))
	for date := range itineraries {
		dates = append(dates, date)
	}
	slices.Sort(dates)
	if direction == SortDescending {
		slices.Reverse(dates)
	}

	rows := make([]domain.ReportRow, 0, len(dates))
	routeErrors := []domain.RawRow{}

	for _, date := range dates {
		itinerary := itineraries[date]

		outcome, err := resolver.Resolve(ctx, itinerary)
		if err != nil {
			return nil, nil, fmt.Errorf("assemble report: %w", err)
		}

		if outcome.NoRoute() {
			routeErrors = append(routeErrors, itinerary.RawRows()...)
			continue
		}

		rows = append(rows, domain.ReportRow{
			Date:      date,
			Distance:  outcome.TotalDistance,
			RouteHTML: formatAddressList(itinerary.Stops),
			NotesHTML: formatNotesList(itinerary.Stops),
			MapLink:   outcome.MapLink,
		})
	}

	return rows, routeErrors, nil
}

// formatAddressList renders the day's street addresses as an ordered list,
// each hyperlinked to its place identifier when one is present.
func formatAddressList(stops []domain.StopRecord) string {
	var b strings.Builder
	b.WriteString("<ol>")
	for _, s := range stops {
		if s.PlaceID == "" {
			fmt.Fprintf(&b, "<li>%s</li>", html.EscapeString(s.StreetAddress))
			continue
		}
		fmt.Fprintf(&b,
			`<li><a href="https://www.google.com/maps/place/?q=place_id:%s">%s</a></li>`,
			url.QueryEscape(s.PlaceID),
			html.EscapeString(s.StreetAddress),
		)
	}
	b.WriteString("</ol>")
	return b.String()
}

// formatNotesList renders the day's free-text notes, one per stop, in stop
// order.
func formatNotesList(stops []domain.StopRecord) string {
	var b strings.Builder
	b.WriteString("<ol>")
	for _, s := range stops {
		fmt.Fprintf(&b, "<li>%s</li>", html.EscapeString(s.BusinessName))
	}
	b.WriteString("</ol>")
	return b.String()
}
