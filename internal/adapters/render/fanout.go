package render

import (
	"context"
	"fmt"

	"mileage-report-service/internal/domain"
	"mileage-report-service/internal/ports"
)

// Fanout renders the same report through multiple targets in order,
// stopping at the first failure.
type Fanout []ports.Renderer

func (f Fanout) Render(ctx context.Context, report *domain.Report) error {
	for i, r := range f {
		if err := r.Render(ctx, report); err != nil {
			return fmt.Errorf("renderer %d: %w", i, err)
		}
	}
	return nil
}
