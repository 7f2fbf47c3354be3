package indexpager

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RangeBuilder_Build(t *testing.T) {
	tests := []struct {
		name               string
		build              func(*RangeBuilder) *RangeBuilder
		wantStart          IndexKey
		wantStartInclusive bool
		wantEnd            IndexKey
		wantEndInclusive   bool
	}{
		{
			name: "no constraints means fully open",
			build: func(b *RangeBuilder) *RangeBuilder {
				return b
			},
			wantStart: IndexKey{}, wantStartInclusive: true,
			wantEnd: IndexKey{}, wantEndInclusive: true,
		},
		{
			name: "pure equality prefix bounds both sides",
			build: func(b *RangeBuilder) *RangeBuilder {
				return b.Eq("a", Number(1)).Eq("b", String("x"))
			},
			wantStart: IndexKey{Number(1), String("x")}, wantStartInclusive: true,
			wantEnd: IndexKey{Number(1), String("x")}, wantEndInclusive: true,
		},
		{
			name: "two-sided inequality after the prefix",
			build: func(b *RangeBuilder) *RangeBuilder {
				return b.Eq("a", Number(1)).Gte("b", Number(2)).Lt("b", Number(7))
			},
			wantStart: IndexKey{Number(1), Number(2)}, wantStartInclusive: true,
			wantEnd: IndexKey{Number(1), Number(7)}, wantEndInclusive: false,
		},
		{
			name: "upper bound only",
			build: func(b *RangeBuilder) *RangeBuilder {
				return b.Lte("a", Number(9))
			},
			wantStart: IndexKey{}, wantStartInclusive: true,
			wantEnd: IndexKey{Number(9)}, wantEndInclusive: true,
		},
		{
			name: "strict lower bound only",
			build: func(b *RangeBuilder) *RangeBuilder {
				return b.Gt("a", Number(0))
			},
			wantStart: IndexKey{Number(0)}, wantStartInclusive: false,
			wantEnd: IndexKey{}, wantEndInclusive: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, startInclusive, end, endInclusive, err := tt.build(NewRangeBuilder("a", "b", "c")).Build()
			require.NoError(t, err)

			assert.True(t, start.Equal(tt.wantStart), "start = %s, want %s", start, tt.wantStart)
			assert.Equal(t, tt.wantStartInclusive, startInclusive)
			assert.True(t, end.Equal(tt.wantEnd), "end = %s, want %s", end, tt.wantEnd)
			assert.Equal(t, tt.wantEndInclusive, endInclusive)
		})
	}
}

func Test_RangeBuilder_Discipline(t *testing.T) {
	tests := []struct {
		name      string
		build     func(*RangeBuilder) *RangeBuilder
		wantField string
	}{
		{
			name: "equality must start at the first field",
			build: func(b *RangeBuilder) *RangeBuilder {
				return b.Eq("b", Number(1))
			},
			wantField: "b",
		},
		{
			name: "equality must follow the prefix in order",
			build: func(b *RangeBuilder) *RangeBuilder {
				return b.Eq("a", Number(1)).Eq("c", Number(2))
			},
			wantField: "c",
		},
		{
			name: "equality after an inequality",
			build: func(b *RangeBuilder) *RangeBuilder {
				return b.Gte("a", Number(1)).Eq("a", Number(1))
			},
			wantField: "a",
		},
		{
			name: "duplicate lower bound",
			build: func(b *RangeBuilder) *RangeBuilder {
				return b.Gt("a", Number(1)).Gte("a", Number(2))
			},
			wantField: "a",
		},
		{
			name: "duplicate upper bound",
			build: func(b *RangeBuilder) *RangeBuilder {
				return b.Lt("a", Number(5)).Lte("a", Number(4))
			},
			wantField: "a",
		},
		{
			name: "inequality skipping past the prefix field",
			build: func(b *RangeBuilder) *RangeBuilder {
				return b.Eq("a", Number(1)).Lt("c", Number(2))
			},
			wantField: "c",
		},
		{
			name: "equality past the last field",
			build: func(b *RangeBuilder) *RangeBuilder {
				return b.Eq("a", Number(1)).Eq("b", Number(2)).Eq("c", Number(3)).Eq("d", Number(4))
			},
			wantField: "d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, _, err := tt.build(NewRangeBuilder("a", "b", "c")).Build()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrRange)

			var rangeErr *RangeError
			require.True(t, errors.As(err, &rangeErr))
			assert.Equal(t, tt.wantField, rangeErr.Field)
		})
	}
}

func Test_RangeBuilder_FirstErrorSticks(t *testing.T) {
	_, _, _, _, err := NewRangeBuilder("a", "b").
		Eq("b", Number(1)). // offends first
		Gt("a", Number(2)). // would offend differently
		Build()

	var rangeErr *RangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, "b", rangeErr.Field)
}

func Test_RangeBuilder_FeedsSplitter(t *testing.T) {
	fields := []string{"a", "b", "c"}
	start, startInclusive, end, endInclusive, err := NewRangeBuilder(fields...).
		Eq("a", Number(1)).
		Gte("b", Number(2)).
		Lt("b", Number(7)).
		Build()
	require.NoError(t, err)

	ranges, err := splitRange(fields, start, end,
		comparatorForStart(startInclusive), comparatorForEnd(endInclusive))
	require.NoError(t, err)

	require.Len(t, ranges, 1)
	assert.Equal(t, Range{
		{Field: "a", Comparator: ComparatorEq, Value: Number(1)},
		{Field: "b", Comparator: ComparatorGTE, Value: Number(2)},
		{Field: "b", Comparator: ComparatorLT, Value: Number(7)},
	}, ranges[0])
}
