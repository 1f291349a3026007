package store

// maxListLimit is a defense-in-depth cap on limit values for paged queries.
const maxListLimit = 1000

// defaultListLimit applies when a paged query does not set a limit.
const defaultListLimit = 50

// clampLimit normalises a caller-supplied page size.
func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultListLimit
	case limit > maxListLimit:
		return maxListLimit
	default:
		return limit
	}
}
