package indexpager

import (
	"strings"

	"github.com/samber/lo"
)

// IndexKey is an ordered tuple of field values identifying a position in a
// sorted index, one value per index field in declared order. Keys projected
// from fetched rows are always full-length and end with the
// (creationTime, id) tie-breaker pair. A shorter key is a valid range
// boundary only: it denotes the edge of the block of rows sharing its field
// values.
type IndexKey []Value

// Compare orders keys lexicographically, field by field. A key that is a
// strict prefix of another sorts first, so a partial boundary key lands just
// before the block it names.
func (k IndexKey) Compare(other IndexKey) int {
	for i := range k {
		if i >= len(other) {
			return 1
		}

		if c := k[i].Compare(other[i]); c != 0 {
			return c
		}
	}

	if len(k) < len(other) {
		return -1
	}

	return 0
}

func (k IndexKey) Equal(other IndexKey) bool {
	return k.Compare(other) == 0
}

// String - implements fmt.Stringer.
func (k IndexKey) String() string {
	parts := lo.Map(k, func(v Value, _ int) string {
		return v.String()
	})

	return "[" + strings.Join(parts, ", ") + "]"
}
