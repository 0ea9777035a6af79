package render

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"mileage-report-service/internal/domain"
)

// HTMLRenderer writes the report as a static HTML file: one table of day
// rows with a running distance total, followed by an errors section listing
// both buckets when either is non-empty.
type HTMLRenderer struct {
	Path string
}

func NewHTMLRenderer(path string) *HTMLRenderer {
	return &HTMLRenderer{Path: path}
}

var reportTemplate = template.Must(template.New("report").Parse(`<html>
<body>
<table border="1">
<tr><th>DATE</th><th>{{.UnitLabel}}</th><th>WAYPOINT</th><th>ROUTE LINK</th></tr>
{{- range .Rows}}
<tr><td>{{.Date}}</td><td>{{printf "%.2f" .Distance}}</td><td>{{.RouteHTML}}</td><td><a href="{{.MapLink}}">Route Link</a></td></tr>
{{- end}}
<tr><td>TOTAL</td><td>{{printf "%.2f" .Total}}</td><td></td><td></td></tr>
</table>
{{- if .HasErrors}}
<h2>Errors</h2>
<table border="1">
{{- if .StructuralErrors}}
<tr><th>Error Rows</th></tr>
{{- range .StructuralErrors}}
<tr><td>{{.}}</td></tr>
{{- end}}
{{- end}}
{{- if .RouteErrors}}
<tr><th>Route Errors</th></tr>
{{- range .RouteErrors}}
<tr><td>{{.}}</td></tr>
{{- end}}
{{- end}}
</table>
{{- end}}
</body>
</html>
`))

type htmlRow struct {
	Date      string
	Distance  float64
	RouteHTML template.HTML
	MapLink   string
}

type htmlReport struct {
	UnitLabel        string
	Rows             []htmlRow
	Total            float64
	HasErrors        bool
	StructuralErrors []string
	RouteErrors      []string
}

func (r *HTMLRenderer) Render(ctx context.Context, report *domain.Report) error {
	view := htmlReport{
		UnitLabel:        report.Unit.Label(),
		Rows:             make([]htmlRow, 0, len(report.Rows)),
		StructuralErrors: flattenRows(report.StructuralErrors),
		RouteErrors:      flattenRows(report.RouteErrors),
	}
	view.HasErrors = len(view.StructuralErrors) > 0 || len(view.RouteErrors) > 0

	// Distances arrive pre-rounded, so this total matches any re-summation
	// a reader does over the rendered rows.
	for _, row := range report.Rows {
		view.Total += row.Distance
		view.Rows = append(view.Rows, htmlRow{
			Date:     row.Date,
			Distance: row.Distance,
			// RouteHTML is assembler-built markup from escaped cell values.
			RouteHTML: template.HTML(row.RouteHTML),
			MapLink:   row.MapLink,
		})
	}

	if err := os.MkdirAll(filepath.Dir(r.Path), 0o755); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}

	f, err := os.Create(r.Path)
	if err != nil {
		return fmt.Errorf("render html report: %w", err)
	}

	if err := reportTemplate.Execute(f, view); err != nil {
		f.Close()
		return fmt.Errorf("render html report: execute template: %w", err)
	}

	return f.Close()
}

func flattenRows(rows []domain.RawRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, strings.Join(r, ", "))
	}
	return out
}
