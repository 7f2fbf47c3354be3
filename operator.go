package indexpager

import "fmt"

// Comparator defines a comparison operator for bounding an index field.
// Used in canonical range conditions.
type Comparator string

const (
	ComparatorEq  Comparator = "eq"
	ComparatorLT  Comparator = "lt"
	ComparatorLTE Comparator = "lte"
	ComparatorGT  Comparator = "gt"
	ComparatorGTE Comparator = "gte"
)

func (c Comparator) Valid() bool {
	switch c {
	case ComparatorEq, ComparatorLT, ComparatorLTE, ComparatorGT, ComparatorGTE:
		return true
	default:
		return false
	}
}

// IsLower reports whether the comparator bounds a range from below.
func (c Comparator) IsLower() bool {
	return c == ComparatorGT || c == ComparatorGTE
}

// IsUpper reports whether the comparator bounds a range from above.
func (c Comparator) IsUpper() bool {
	return c == ComparatorLT || c == ComparatorLTE
}

// Inclusive reports whether the comparator admits the boundary itself.
func (c Comparator) Inclusive() bool {
	return c == ComparatorEq || c == ComparatorLTE || c == ComparatorGTE
}

// Exclusive returns the strict counterpart of an inclusive inequality.
// Strict comparators map to themselves. Once a boundary key has been covered
// at one staircase depth, shallower depths must exclude it.
func (c Comparator) Exclusive() Comparator {
	switch c {
	case ComparatorGTE:
		return ComparatorGT
	case ComparatorLTE:
		return ComparatorLT
	default:
		return c
	}
}

// SQL returns the operator spelled the way SQL dialects expect it.
func (c Comparator) SQL() string {
	switch c {
	case ComparatorEq:
		return "="
	case ComparatorLT:
		return "<"
	case ComparatorLTE:
		return "<="
	case ComparatorGT:
		return ">"
	case ComparatorGTE:
		return ">="
	default:
		panic(fmt.Errorf("cannot map comparator '%s' to SQL", c))
	}
}

// Order defines the physical direction a range is walked in.
type Order string

const (
	OrderASC  Order = "ASC"
	OrderDESC Order = "DESC"
)

func (o Order) Valid() bool {
	return o == OrderASC || o == OrderDESC
}

func (o Order) Reverse() Order {
	switch o {
	case OrderASC:
		return OrderDESC
	case OrderDESC:
		return OrderASC
	default:
		panic(fmt.Errorf("cannot reverse order '%s'", o))
	}
}
