package ports

import (
	"context"

	"mileage-report-service/internal/domain"
)

// Port: a boundary for rendering a finished report. The core makes no
// assumption about the target beyond it accepting the three-part payload
// (day rows plus the two error buckets).
type Renderer interface {
	Render(ctx context.Context, report *domain.Report) error
}
