package indexpager

const (
	NoLimit         = -1
	AbsoluteMaxRows = 1000
	DefaultMaxRows  = 100
)

func IsNormalizedRowsMax(rows int, maxRows int) (int, bool) {
	if rows <= 0 {
		return DefaultMaxRows, false
	} else if maxRows != NoLimit && rows > maxRows {
		return maxRows, false
	}

	return rows, true
}

func NormalizeRowsMax(rows int, maxRows int) int {
	ret, _ := IsNormalizedRowsMax(rows, maxRows)
	return ret
}

func NormalizeRows(rows int) int {
	return NormalizeRowsMax(rows, AbsoluteMaxRows)
}

// absoluteCap resolves a caller-supplied hard cap: zero means the default,
// NoLimit disables it.
func absoluteCap(rows int) int {
	if rows == 0 {
		return AbsoluteMaxRows
	}

	return rows
}

// minRows picks the tighter of two row budgets, treating NoLimit as
// unbounded.
func minRows(a, b int) int {
	switch {
	case a == NoLimit:
		return b
	case b == NoLimit:
		return a
	case a < b:
		return a
	default:
		return b
	}
}
