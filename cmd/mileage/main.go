package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"mileage-report-service/internal/adapters/gmaps"
	"mileage-report-service/internal/adapters/render"
	"mileage-report-service/internal/adapters/tables"
	"mileage-report-service/internal/domain"
	"mileage-report-service/internal/logging"
	"mileage-report-service/internal/platform/db"
	"mileage-report-service/internal/ports"
	"mileage-report-service/internal/services"
)

// main is the application composition root. It wires concrete adapters
// (CSV or Postgres table store, Google Maps client, HTML/archive renderers)
// behind ports and executes one pipeline run.
func main() {
	source := flag.String("source", "locations_log", "Source table name")
	target := flag.String("target", "mileage_log", "Target table for the tabular report (empty to skip)")
	unit := flag.String("unit", "mi", "Distance unit: km or mi")
	sortDir := flag.String("sort", "asc", "Date sort direction: asc or desc")
	dataDir := flag.String("data-dir", "data", "Directory for CSV-backed tables")
	out := flag.String("out", "OUTPUT/mileage_report.html", "HTML report output path")
	useDB := flag.Bool("db", false, "Use Postgres for tables and run archive (requires DATABASE_URL)")
	dbTag := flag.String("db-tag", "", "Optional label for the archived run")
	backfill := flag.Bool("backfill", true, "Backfill missing place identifiers via reverse geocoding")
	geocodeAddresses := flag.Bool("geocode-addresses", false, "Backfill blank coordinates from street addresses")
	strictDates := flag.Bool("strict-dates", false, "Reject rows whose date is not YYYY-MM-DD")
	verbose := flag.Bool("verbose", false, "Debug-level logging")
	heartbeat := flag.Bool("heartbeat", false, "Emit progress heartbeat log lines")
	flag.Parse()

	if err := run(context.Background(), options{
		source:           *source,
		target:           *target,
		unit:             *unit,
		sortDir:          *sortDir,
		dataDir:          *dataDir,
		out:              *out,
		useDB:            *useDB,
		dbTag:            *dbTag,
		backfill:         *backfill,
		geocodeAddresses: *geocodeAddresses,
		strictDates:      *strictDates,
		verbose:          *verbose,
		heartbeat:        *heartbeat,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	source, target   string
	unit, sortDir    string
	dataDir, out     string
	useDB            bool
	dbTag            string
	backfill         bool
	geocodeAddresses bool
	strictDates      bool
	verbose          bool
	heartbeat        bool
}

func run(ctx context.Context, opts options) error {
	if err := godotenv.Load(); err != nil {
		// Absent .env is normal outside local development.
		fmt.Fprintln(os.Stderr, "No .env file found (using environment variables)")
	}

	log, err := logging.New(opts.verbose)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	distanceUnit, err := parseUnit(opts.unit)
	if err != nil {
		return err
	}

	direction, err := parseSortDirection(opts.sortDir)
	if err != nil {
		return err
	}

	apiKey := os.Getenv("MAPS_API_KEY")
	if strings.TrimSpace(apiKey) == "" {
		return errors.New("MAPS_API_KEY is required")
	}

	// One maps client for the whole run, shared by lookup and routing.
	client, err := gmaps.NewClient(apiKey, log)
	if err != nil {
		return fmt.Errorf("build maps client: %w", err)
	}

	var store ports.TableStore
	renderers := render.Fanout{render.NewHTMLRenderer(opts.out)}

	if opts.useDB {
		databaseURL := os.Getenv("DATABASE_URL")
		if strings.TrimSpace(databaseURL) == "" {
			return errors.New("DATABASE_URL is required with -db")
		}

		conn, err := db.Open(ctx, databaseURL)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := tables.InitSchema(conn); err != nil {
			return err
		}
		if err := render.InitArchiveSchema(conn); err != nil {
			return err
		}

		store = tables.NewSQLTableStore(conn)
		renderers = append(renderers, render.NewArchiveRenderer(conn, opts.dbTag))
	} else {
		store = tables.NewCSVTableStore(opts.dataDir)
	}

	pipeline := &services.Pipeline{
		Tables:   store,
		Lookup:   client,
		Routes:   client,
		Renderer: renderers,
		Logger:   log,
		Config: services.Config{
			SourceTable:   opts.source,
			TargetTable:   opts.target,
			Unit:          distanceUnit,
			SortDirection: direction,
			Normalize: services.NormalizeOptions{
				BackfillPlaceIDs:    opts.backfill,
				BackfillCoordinates: opts.geocodeAddresses,
				StrictDates:         opts.strictDates,
				Heartbeat:           opts.heartbeat,
			},
		},
	}

	report, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	log.Info("run complete",
		zap.Int("days", len(report.Rows)),
		zap.Int("structural_errors", len(report.StructuralErrors)),
		zap.Int("route_errors", len(report.RouteErrors)),
		zap.String("report", opts.out),
	)

	return nil
}

func parseUnit(s string) (domain.DistanceUnit, error) {
	switch domain.DistanceUnit(s) {
	case domain.UnitKilometers:
		return domain.UnitKilometers, nil
	case domain.UnitMiles:
		return domain.UnitMiles, nil
	default:
		return "", fmt.Errorf("invalid -unit %q (want km or mi)", s)
	}
}

func parseSortDirection(s string) (services.SortDirection, error) {
	switch services.SortDirection(s) {
	case services.SortAscending:
		return services.SortAscending, nil
	case services.SortDescending:
		return services.SortDescending, nil
	default:
		return "", fmt.Errorf("invalid -sort %q (want asc or desc)", s)
	}
}
