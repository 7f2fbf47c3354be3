package indexpager

import "fmt"

// RangeBuilder accumulates eq/lt/lte/gt/gte constraints over the fields of
// one index and compiles them into a boundary key pair for a PageRequest.
//
// The builder enforces the canonical range discipline as an explicit state
// machine: equalities must bind a leading prefix of the index fields in
// declared order, and each side may carry at most one inequality, on the
// field immediately after the equality prefix. Violations fail with a
// RangeError on the first offending call; subsequent calls keep the first
// error (sticky), so chains stay fluent:
//
//	start, startIncl, end, endIncl, err := NewRangeBuilder("a", "b", "c").
//		Eq("a", Number(1)).
//		Gte("b", Number(2)).
//		Lt("b", Number(7)).
//		Build()
type RangeBuilder struct {
	fields []string
	eqs    IndexKey
	lower  *builderBound
	upper  *builderBound
	err    error
}

type builderBound struct {
	value     Value
	inclusive bool
}

func NewRangeBuilder(fields ...string) *RangeBuilder {
	return &RangeBuilder{
		fields: fields,
	}
}

// nextField is the only field a new constraint may target.
func (b *RangeBuilder) nextField() (string, bool) {
	if len(b.eqs) >= len(b.fields) {
		return "", false
	}

	return b.fields[len(b.eqs)], true
}

func (b *RangeBuilder) fail(field, reason string) *RangeBuilder {
	if b.err == nil {
		b.err = &RangeError{Field: field, Reason: reason}
	}

	return b
}

// Eq pins the next index field to an exact value, extending the equality
// prefix. Not allowed once either inequality has been recorded.
func (b *RangeBuilder) Eq(field string, value Value) *RangeBuilder {
	if b.err != nil {
		return b
	}
	if b.lower != nil || b.upper != nil {
		return b.fail(field, "equality after an inequality bound")
	}

	next, ok := b.nextField()
	if !ok {
		return b.fail(field, "no index fields left to bind")
	}
	if field != next {
		return b.fail(field, fmt.Sprintf("equality must bind the next index field '%s'", next))
	}

	b.eqs = append(b.eqs, value)

	return b
}

func (b *RangeBuilder) Lt(field string, value Value) *RangeBuilder {
	return b.setUpper(field, value, false)
}

func (b *RangeBuilder) Lte(field string, value Value) *RangeBuilder {
	return b.setUpper(field, value, true)
}

func (b *RangeBuilder) Gt(field string, value Value) *RangeBuilder {
	return b.setLower(field, value, false)
}

func (b *RangeBuilder) Gte(field string, value Value) *RangeBuilder {
	return b.setLower(field, value, true)
}

func (b *RangeBuilder) setLower(field string, value Value, inclusive bool) *RangeBuilder {
	if b.err != nil {
		return b
	}
	if b.lower != nil {
		return b.fail(field, "duplicate lower bound")
	}

	next, ok := b.nextField()
	if !ok {
		return b.fail(field, "no index fields left to bind")
	}
	if field != next {
		return b.fail(field, fmt.Sprintf("lower bound must target the field '%s' following the equality prefix", next))
	}

	b.lower = &builderBound{value: value, inclusive: inclusive}

	return b
}

func (b *RangeBuilder) setUpper(field string, value Value, inclusive bool) *RangeBuilder {
	if b.err != nil {
		return b
	}
	if b.upper != nil {
		return b.fail(field, "duplicate upper bound")
	}

	next, ok := b.nextField()
	if !ok {
		return b.fail(field, "no index fields left to bind")
	}
	if field != next {
		return b.fail(field, fmt.Sprintf("upper bound must target the field '%s' following the equality prefix", next))
	}

	b.upper = &builderBound{value: value, inclusive: inclusive}

	return b
}

// Build emits the accumulated constraints as a PageRequest-shaped boundary
// pair. A side without an inequality falls back to the equality prefix as an
// inclusive partial boundary key; with no constraints at all both sides are
// open.
func (b *RangeBuilder) Build() (startKey IndexKey, startInclusive bool, endKey IndexKey, endInclusive bool, err error) {
	if b.err != nil {
		return nil, false, nil, false, b.err
	}

	startKey = append(IndexKey{}, b.eqs...)
	startInclusive = true
	if b.lower != nil {
		startKey = append(startKey, b.lower.value)
		startInclusive = b.lower.inclusive
	}

	endKey = append(IndexKey{}, b.eqs...)
	endInclusive = true
	if b.upper != nil {
		endKey = append(endKey, b.upper.value)
		endInclusive = b.upper.inclusive
	}

	return startKey, startInclusive, endKey, endInclusive, nil
}
