package domain

// ReportRow is the final denormalized output unit for one successfully
// resolved day. Created once by the assembler and never mutated; distance is
// already rounded so re-summation by a renderer is stable.
type ReportRow struct {
	Date      string
	Distance  float64
	RouteHTML string
	NotesHTML string
	MapLink   string
}

// Report is the three-part payload handed to rendering collaborators:
// successful day rows plus the two error buckets, never merged.
type Report struct {
	Unit DistanceUnit
	Rows []ReportRow

	// StructuralErrors holds rows rejected by the normalizer, verbatim.
	StructuralErrors []RawRow

	// RouteErrors holds the rows of every day the mapping service could not
	// resolve into a drivable route.
	RouteErrors []RawRow
}
