package indexpager

import (
	"fmt"

	"github.com/samber/lo"
)

// comparatorForStart maps a start boundary's inclusivity to its comparator.
// Start bounds are always gt/gte and end bounds lt/lte regardless of the
// walk order; Order only flips the physical direction.
func comparatorForStart(inclusive bool) Comparator {
	return lo.Ternary(inclusive, ComparatorGTE, ComparatorGT)
}

func comparatorForEnd(inclusive bool) Comparator {
	return lo.Ternary(inclusive, ComparatorLTE, ComparatorLT)
}

// splitRange decomposes the two-sided bounded range
// (startCmp startKey, endCmp endKey) over the given index fields into an
// ordered list of canonical Ranges.
//
// The decomposition has three stages. First the shared leading components of
// both keys are folded into an equality prefix common to every output range.
// Then each side is unwound as a staircase: while a boundary key has more
// than one unconsumed component, one range pins all but its last component
// with equalities and bounds the last with the current comparator, after
// which the comparator degrades to its strict form so shallower depths
// exclude the already-covered boundary. The middle range carries whatever
// single components remain on either side.
//
// Output order invariant: start-side ranges deepest first, then the middle
// range, then end-side ranges deepest last. Scanning the ranges in this
// order, each ascending, concatenates to the full requested range in
// ascending key order; a descending walk reverses the range order, not the
// bounds.
func splitRange(fields []string, startKey, endKey IndexKey, startCmp, endCmp Comparator) ([]Range, error) {
	if !startCmp.IsLower() {
		return nil, &RangeError{Reason: fmt.Sprintf("start comparator '%s' is not a lower bound", startCmp)}
	}
	if !endCmp.IsUpper() {
		return nil, &RangeError{Reason: fmt.Sprintf("end comparator '%s' is not an upper bound", endCmp)}
	}
	if len(startKey) > len(fields) {
		return nil, &RangeError{Reason: fmt.Sprintf("start key has %d components, index has %d fields", len(startKey), len(fields))}
	}
	if len(endKey) > len(fields) {
		return nil, &RangeError{Reason: fmt.Sprintf("end key has %d components, index has %d fields", len(endKey), len(fields))}
	}

	// Stage 1: fold shared leading components into the common prefix.
	var prefix Range
	for len(startKey) > 0 && len(endKey) > 0 {
		c := startKey[0].Compare(endKey[0])
		if c > 0 {
			return nil, &RangeError{Field: fields[0], Reason: "start key is greater than end key"}
		}
		if c < 0 {
			break
		}

		prefix = append(prefix, Bound{Field: fields[0], Comparator: ComparatorEq, Value: startKey[0]})
		fields = fields[1:]
		startKey = startKey[1:]
		endKey = endKey[1:]
	}

	// A boundary key fully folded into the prefix pins the whole block
	// sharing it: an inclusive bound is a no-op there, an exclusive one
	// excludes the block and with it everything the other side still allows.
	if len(prefix) > 0 {
		if len(startKey) == 0 && !startCmp.Inclusive() {
			return nil, nil
		}
		if len(endKey) == 0 && !endCmp.Inclusive() {
			return nil, nil
		}
		if len(startKey) == 0 && len(endKey) == 0 {
			return []Range{prefix}, nil
		}
	}

	makeRange := func(key IndexKey, cmp Comparator) Range {
		ret := make(Range, 0, len(prefix)+len(key))
		ret = append(ret, prefix...)
		for i := 0; i < len(key)-1; i++ {
			ret = append(ret, Bound{Field: fields[i], Comparator: ComparatorEq, Value: key[i]})
		}
		ret = append(ret, Bound{Field: fields[len(key)-1], Comparator: cmp, Value: key[len(key)-1]})

		return ret
	}

	// Stage 2: start-side staircase, deepest range first.
	var startRanges []Range
	for len(startKey) > 1 {
		startRanges = append(startRanges, makeRange(startKey, startCmp))
		startCmp = startCmp.Exclusive()
		startKey = startKey[:len(startKey)-1]
	}

	// Stage 3: end-side staircase, built deepest first and reversed so the
	// output walks the end side shallowest to deepest.
	var endRanges []Range
	for len(endKey) > 1 {
		endRanges = append(endRanges, makeRange(endKey, endCmp))
		endCmp = endCmp.Exclusive()
		endKey = endKey[:len(endKey)-1]
	}
	endRanges = lo.Reverse(endRanges)

	// Stage 4: middle range over the single remaining component per side.
	middle := append(Range{}, prefix...)
	if len(startKey) == 1 {
		middle = append(middle, Bound{Field: fields[0], Comparator: startCmp, Value: startKey[0]})
	}
	if len(endKey) == 1 {
		middle = append(middle, Bound{Field: fields[0], Comparator: endCmp, Value: endKey[0]})
	}

	ret := make([]Range, 0, len(startRanges)+1+len(endRanges))
	ret = append(ret, startRanges...)
	ret = append(ret, middle)
	ret = append(ret, endRanges...)

	return ret, nil
}
