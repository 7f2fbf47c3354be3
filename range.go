package indexpager

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

type (
	// Bound is a single comparison condition of the form
	// Comparator(Field, Value).
	Bound struct {
		Field      string
		Comparator Comparator
		Value      Value
	}

	// Range is a conjunction of bounds in the canonical scan shape the
	// storage primitive accepts natively: zero or more leading eq bounds on
	// consecutive index fields, then at most one lower and one upper
	// inequality on the single following field. An empty Range scans the
	// whole index.
	Range []Bound
)

// String - implements fmt.Stringer.
//
// Example: for [{a eq 1}, {b gte 2}, {b lt 5}] returns
// "a eq 1 AND b gte 2 AND b lt 5".
func (b Bound) String() string {
	return fmt.Sprintf("%s %s %s", b.Field, b.Comparator, b.Value)
}

func (r Range) String() string {
	if len(r) == 0 {
		return "TRUE"
	}

	parts := lo.Map(r, func(b Bound, _ int) string {
		return b.String()
	})

	return strings.Join(parts, " AND ")
}

// Equalities returns the leading eq prefix of the range.
func (r Range) Equalities() []Bound {
	for i, b := range r {
		if b.Comparator != ComparatorEq {
			return r[:i]
		}
	}

	return r
}

// Lower returns the lower inequality bound, if any.
func (r Range) Lower() (Bound, bool) {
	return lo.Find(r, func(b Bound) bool {
		return b.Comparator.IsLower()
	})
}

// Upper returns the upper inequality bound, if any.
func (r Range) Upper() (Bound, bool) {
	return lo.Find(r, func(b Bound) bool {
		return b.Comparator.IsUpper()
	})
}

// Canonical reports whether the range has the primitive scan shape:
// an eq prefix on distinct fields followed by at most one lower and one
// upper inequality, both on the same single trailing field.
func (r Range) Canonical() bool {
	eqs := r.Equalities()
	seen := make(map[string]struct{}, len(eqs))
	for _, b := range eqs {
		if _, ok := seen[b.Field]; ok {
			return false
		}
		seen[b.Field] = struct{}{}
	}

	rest := r[len(eqs):]
	if len(rest) > 2 {
		return false
	}

	var lowers, uppers int
	for _, b := range rest {
		if _, ok := seen[b.Field]; ok {
			return false
		}
		if b.Field != rest[0].Field {
			return false
		}

		switch {
		case b.Comparator.IsLower():
			lowers++
		case b.Comparator.IsUpper():
			uppers++
		default:
			return false
		}
	}

	return lowers <= 1 && uppers <= 1
}
