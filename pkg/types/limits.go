package types

// ============================================================================
// Layout Limits
// ============================================================================
// Bounds on what a layout definition may declare. Definitions beyond them
// are rejected before any byte of a source is touched.

const (
	// MaxFieldLen is the largest fixed-length byte array a field may declare.
	MaxFieldLen = 1 << 20 // 1 MiB

	// MaxFields is the largest number of fields a single layout may declare.
	MaxFields = 4096

	// MaxFieldNameLen bounds field names, which double as CLI arguments.
	MaxFieldNameLen = 128
)
