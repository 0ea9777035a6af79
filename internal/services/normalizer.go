package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"mileage-report-service/internal/domain"
	"mileage-report-service/internal/logging"
	"mileage-report-service/internal/ports"
)

// Source table column layout. Positional access ends here: everything past
// the normalizer operates on StopRecord fields.
const (
	colDate = iota
	colSequence
	colLatitude
	colLongitude
	colBusinessName
	colStreetAddress
	colPlaceID

	minColumns = 6
)

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type NormalizeOptions struct {
	// BackfillPlaceIDs enables the reverse-geocode lookup for rows whose
	// place identifier column is missing or empty.
	BackfillPlaceIDs bool

	// BackfillCoordinates enables the address-to-coordinates lookup for rows
	// with blank coordinates. The identifier backfill for such a row only
	// proceeds if this lookup succeeds.
	BackfillCoordinates bool

	// StrictDates diverts rows whose date is not YYYY-MM-DD into the
	// structural bucket. Off by default: grouping and ordering are defined
	// on literal strings, and mixed formats are a documented sharp edge of
	// the source data rather than something to silently repair.
	StrictDates bool

	// Heartbeat emits a progress log line every heartbeatEvery rows.
	Heartbeat bool
}

const heartbeatEvery = 10

// NormalizeResult carries the normalizer's three accumulators as explicit
// return values.
type NormalizeResult struct {
	Records []domain.StopRecord

	// UpdatedRows is the write-back payload: the header followed by every
	// row that passed normalization, including any backfilled identifiers.
	UpdatedRows [][]string

	// StructuralErrors holds rejected rows verbatim.
	StructuralErrors []domain.RawRow
}

// NormalizeRows validates and enriches raw table rows into StopRecords.
//
// Rows with too few columns, a blank street address, or (in strict mode) a
// non-ISO date go to the structural bucket and processing continues. A
// sequence or coordinate cell that fails to parse aborts the whole pass:
// that is corrupt data, not a short row.
func NormalizeRows(
	ctx context.Context,
	log *zap.Logger,
	lookup ports.PlaceLookup,
	header []string,
	rows []domain.RawRow,
	opts NormalizeOptions,
) (NormalizeResult, error) {
	result := NormalizeResult{
		Records:          make([]domain.StopRecord, 0, len(rows)),
		UpdatedRows:      make([][]string, 0, 1+len(rows)),
		StructuralErrors: []domain.RawRow{},
	}
	result.UpdatedRows = append(result.UpdatedRows, header)

	for i, row := range rows {
		if opts.Heartbeat && i%heartbeatEvery == 0 {
			log.Info("normalizing rows", zap.Int(logging.FieldRow, i+1), zap.Int(logging.FieldRows, len(rows)))
		}

		if len(row) < minColumns {
			log.Warn("skipping row with insufficient columns",
				zap.Int(logging.FieldRow, i+1),
				zap.Strings("cells", row),
			)
			result.StructuralErrors = append(result.StructuralErrors, row)
			continue
		}

		if strings.TrimSpace(row[colStreetAddress]) == "" {
			log.Warn("skipping row with empty street address", zap.Int(logging.FieldRow, i+1))
			result.StructuralErrors = append(result.StructuralErrors, row)
			continue
		}

		if !isoDate.MatchString(row[colDate]) {
			log.Warn("row date is not YYYY-MM-DD; date grouping is literal",
				zap.Int(logging.FieldRow, i+1),
				zap.String(logging.FieldDate, row[colDate]),
			)
			if opts.StrictDates {
				result.StructuralErrors = append(result.StructuralErrors, row)
				continue
			}
		}

		if coordsBlank(row) {
			if !opts.BackfillCoordinates {
				return NormalizeResult{}, fmt.Errorf("normalize row %d: blank coordinates and coordinate backfill disabled", i+1)
			}
			ok, err := backfillCoords(ctx, log, lookup, row)
			if err != nil {
				return NormalizeResult{}, fmt.Errorf("normalize row %d: %w", i+1, err)
			}
			if !ok {
				result.StructuralErrors = append(result.StructuralErrors, row)
				continue
			}
		}

		record, err := parseRecord(row)
		if err != nil {
			return NormalizeResult{}, fmt.Errorf("normalize row %d: %w", i+1, err)
		}

		// Backfill runs only when the identifier is absent, so re-running
		// normalization on an already-backfilled row performs no lookup and
		// leaves the row unchanged.
		if record.PlaceID == "" && opts.BackfillPlaceIDs {
			record.PlaceID = lookupPlaceID(ctx, log, lookup, record.Latitude, record.Longitude)
			record.Raw = withPlaceID(record.Raw, record.PlaceID)
		}

		result.Records = append(result.Records, record)
		result.UpdatedRows = append(result.UpdatedRows, record.Raw)
	}

	return result, nil
}

// parseRecord converts a length-checked row into a StopRecord. Parse
// failures here are fatal for the pass.
func parseRecord(row domain.RawRow) (domain.StopRecord, error) {
	seq, err := strconv.Atoi(strings.TrimSpace(row[colSequence]))
	if err != nil {
		return domain.StopRecord{}, fmt.Errorf("parse sequence %q: %w", row[colSequence], err)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(row[colLatitude]), 64)
	if err != nil {
		return domain.StopRecord{}, fmt.Errorf("parse latitude %q: %w", row[colLatitude], err)
	}

	lng, err := strconv.ParseFloat(strings.TrimSpace(row[colLongitude]), 64)
	if err != nil {
		return domain.StopRecord{}, fmt.Errorf("parse longitude %q: %w", row[colLongitude], err)
	}

	record := domain.StopRecord{
		Date:          row[colDate],
		Sequence:      seq,
		Latitude:      lat,
		Longitude:     lng,
		BusinessName:  row[colBusinessName],
		StreetAddress: row[colStreetAddress],
		Raw:           row,
	}
	if len(row) > colPlaceID {
		record.PlaceID = strings.TrimSpace(row[colPlaceID])
	}

	return record, nil
}

func coordsBlank(row domain.RawRow) bool {
	return strings.TrimSpace(row[colLatitude]) == "" || strings.TrimSpace(row[colLongitude]) == ""
}

// backfillCoords resolves missing coordinates from the street address and
// writes them into the row. A not-found result is not an error: the caller
// diverts the row to the structural bucket, since it cannot be routed.
func backfillCoords(ctx context.Context, log *zap.Logger, lookup ports.PlaceLookup, row domain.RawRow) (bool, error) {
	address := row[colStreetAddress]

	res, err := lookup.CoordsByAddress(ctx, address)
	if err != nil {
		return false, fmt.Errorf("lookup coordinates for %q: %w", address, err)
	}
	if !res.Found {
		log.Warn("no coordinates found for address", zap.String("address", address))
		return false, nil
	}

	row[colLatitude] = strconv.FormatFloat(res.Lat, 'f', -1, 64)
	row[colLongitude] = strconv.FormatFloat(res.Lng, 'f', -1, 64)
	return true, nil
}

// lookupPlaceID backfills a missing place identifier. The lookup fails open:
// any failure leaves the identifier empty and the row proceeds, degrading
// only the map-link rendering.
func lookupPlaceID(ctx context.Context, log *zap.Logger, lookup ports.PlaceLookup, lat, lng float64) string {
	res, err := lookup.PlaceIDByCoords(ctx, lat, lng)
	if err != nil {
		log.Warn("place identifier lookup failed",
			zap.Float64("lat", lat),
			zap.Float64("lng", lng),
			zap.Error(err),
		)
		return ""
	}
	if !res.Found {
		log.Warn("no place identifier found",
			zap.Float64("lat", lat),
			zap.Float64("lng", lng),
		)
		return ""
	}
	return res.PlaceID
}

// withPlaceID writes the identifier into the row's identifier column,
// growing the row when it is only minColumns wide, so the write-back
// persists the backfill. The (possibly reallocated) row is returned.
func withPlaceID(row domain.RawRow, placeID string) domain.RawRow {
	if len(row) > colPlaceID {
		row[colPlaceID] = placeID
		return row
	}
	for len(row) < colPlaceID {
		row = append(row, "")
	}
	return append(row, placeID)
}
