package logging

// Standard field names for consistent structured logging across the
// pipeline. Use these constants instead of raw strings.
const (
	FieldTable      = "table"
	FieldDate       = "date"
	FieldRow        = "row"
	FieldRows       = "rows"
	FieldStatus     = "status"
	FieldOperation  = "operation"
	FieldDurationMS = "duration_ms"
	FieldDistance   = "distance"
	FieldUnit       = "unit"
	FieldRunID      = "run_id"
)
