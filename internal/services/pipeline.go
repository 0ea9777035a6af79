package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"mileage-report-service/internal/domain"
	"mileage-report-service/internal/logging"
	"mileage-report-service/internal/ports"
)

// Config is the read-only run configuration, read once at startup.
type Config struct {
	SourceTable string
	// TargetTable receives a tabular copy of the finished report. Empty
	// disables the write.
	TargetTable string

	Unit          domain.DistanceUnit
	SortDirection SortDirection

	Normalize NormalizeOptions
}

// Pipeline is one batch run over a full table snapshot: read, normalize,
// write back, aggregate, resolve, assemble, render. Single-threaded and
// synchronous; all state is owned by the run and discarded at its end.
type Pipeline struct {
	Tables   ports.TableStore
	Lookup   ports.PlaceLookup
	Routes   ports.RouteProvider
	Renderer ports.Renderer
	Logger   *zap.Logger
	Config   Config
}

// Run executes the pipeline start to finish and returns the assembled
// report. A routing-service malfunction or a parse failure aborts the run;
// structural and route errors accumulate in the report instead.
func (p *Pipeline) Run(ctx context.Context) (_ *domain.Report, err error) {
	defer logging.Time(p.Logger, "pipeline.run")(&err)

	p.Logger.Info("starting mileage log processing",
		zap.String(logging.FieldTable, p.Config.SourceTable),
		zap.String(logging.FieldUnit, string(p.Config.Unit)),
	)

	data, err := p.Tables.ReadTable(ctx, p.Config.SourceTable)
	if err != nil {
		return nil, fmt.Errorf("run pipeline: read table %q: %w", p.Config.SourceTable, err)
	}
	if len(data) == 0 {
		return nil, errors.New("run pipeline: source table has no header row")
	}
	header, rows := data[0], data[1:]
	p.heartbeat("data read from the source table", zap.Int(logging.FieldRows, len(rows)))

	raw := make([]domain.RawRow, len(rows))
	for i, r := range rows {
		raw[i] = domain.RawRow(r)
	}

	normalized, err := NormalizeRows(ctx, p.Logger, p.Lookup, header, raw, p.Config.Normalize)
	if err != nil {
		return nil, fmt.Errorf("run pipeline: %w", err)
	}
	p.heartbeat("rows normalized",
		zap.Int(logging.FieldRows, len(normalized.Records)),
		zap.Int("structural_errors", len(normalized.StructuralErrors)),
	)

	// Persist backfilled identifiers so the next run finds them in place.
	if err := p.Tables.WriteTable(ctx, p.Config.SourceTable, normalized.UpdatedRows); err != nil {
		return nil, fmt.Errorf("run pipeline: write back table %q: %w", p.Config.SourceTable, err)
	}

	itineraries := GroupByDate(normalized.Records)
	p.heartbeat("records grouped by date", zap.Int("days", len(itineraries)))

	resolver := &Resolver{Provider: p.Routes, Unit: p.Config.Unit}
	reportRows, routeErrors, err := AssembleReport(ctx, itineraries, resolver, p.Config.SortDirection)
	if err != nil {
		return nil, fmt.Errorf("run pipeline: %w", err)
	}
	p.heartbeat("final data prepared",
		zap.Int(logging.FieldRows, len(reportRows)),
		zap.Int("route_errors", len(routeErrors)),
	)

	report := &domain.Report{
		Unit:             p.Config.Unit,
		Rows:             reportRows,
		StructuralErrors: normalized.StructuralErrors,
		RouteErrors:      routeErrors,
	}

	if p.Config.TargetTable != "" {
		if err := p.Tables.WriteTable(ctx, p.Config.TargetTable, tabulate(report)); err != nil {
			return nil, fmt.Errorf("run pipeline: write table %q: %w", p.Config.TargetTable, err)
		}
	}

	if err := p.Renderer.Render(ctx, report); err != nil {
		return nil, fmt.Errorf("run pipeline: render report: %w", err)
	}
	p.heartbeat("report rendered")

	return report, nil
}

// tabulate flattens the report for the target-table write.
func tabulate(report *domain.Report) [][]string {
	rows := make([][]string, 0, 1+len(report.Rows))
	rows = append(rows, []string{"Date", report.Unit.Label(), "Route", "Link"})
	for _, r := range report.Rows {
		rows = append(rows, []string{
			r.Date,
			fmt.Sprintf("%.2f", r.Distance),
			r.RouteHTML,
			r.MapLink,
		})
	}
	return rows
}

func (p *Pipeline) heartbeat(msg string, fields ...zap.Field) {
	if !p.Config.Normalize.Heartbeat {
		return
	}
	p.Logger.Info("HEARTBEAT: "+msg, fields...)
}
