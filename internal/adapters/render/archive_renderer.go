package render

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"mileage-report-service/internal/domain"
)

// ArchiveRenderer stores each run's report in Postgres so past reports stay
// queryable after the HTML file is overwritten. One run row keyed by a
// generated run ID, plus one row per reported day.
type ArchiveRenderer struct {
	DB  *sql.DB
	Tag string
}

func NewArchiveRenderer(db *sql.DB, tag string) *ArchiveRenderer {
	return &ArchiveRenderer{DB: db, Tag: tag}
}

// InitArchiveSchema creates the archive tables if they do not exist.
func InitArchiveSchema(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS report_runs (
		run_id            UUID PRIMARY KEY,
		created_at        TIMESTAMPTZ NOT NULL,
		tag               TEXT NOT NULL DEFAULT '',
		unit              TEXT NOT NULL,
		total_distance    DOUBLE PRECISION NOT NULL,
		day_count         INTEGER NOT NULL,
		structural_errors INTEGER NOT NULL,
		route_errors      INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS report_days (
		run_id   UUID NOT NULL REFERENCES report_runs(run_id),
		day      TEXT NOT NULL,
		distance DOUBLE PRECISION NOT NULL,
		route    TEXT NOT NULL,
		notes    TEXT NOT NULL,
		map_link TEXT NOT NULL,
		PRIMARY KEY (run_id, day)
	);
	`)
	if err != nil {
		return fmt.Errorf("init archive schema: %w", err)
	}
	return nil
}

func (r *ArchiveRenderer) Render(ctx context.Context, report *domain.Report) error {
	if r.DB == nil {
		return errors.New("archive renderer: db is nil")
	}

	runID := uuid.New()

	var total float64
	for _, row := range report.Rows {
		total += row.Distance
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("archive report: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO report_runs (
		run_id, created_at, tag, unit, total_distance,
		day_count, structural_errors, route_errors
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`,
		runID.String(),
		time.Now().UTC(),
		strings.TrimSpace(r.Tag),
		string(report.Unit),
		total,
		len(report.Rows),
		len(report.StructuralErrors),
		len(report.RouteErrors),
	)
	if err != nil {
		return fmt.Errorf("archive report: insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO report_days (run_id, day, distance, route, notes, map_link)
	VALUES ($1, $2, $3, $4, $5, $6);
	`)
	if err != nil {
		return fmt.Errorf("archive report: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, row := range report.Rows {
		_, err := stmt.ExecContext(ctx,
			runID.String(), row.Date, row.Distance, row.RouteHTML, row.NotesHTML, row.MapLink,
		)
		if err != nil {
			return fmt.Errorf("archive report: insert day %q: %w", row.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("archive report: commit: %w", err)
	}

	return nil
}
