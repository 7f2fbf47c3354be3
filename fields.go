package indexpager

import "github.com/samber/lo"

// Tie-breaker fields implicitly appended to every index, in this order.
// Together they make every full-length IndexKey unique.
const (
	FieldCreationTime = "creationTime"
	FieldID           = "id"
)

// Built-in index names every table carries without schema declarations.
const (
	// IndexByCreationTime is the natural insertion-order index.
	IndexByCreationTime = "by_creation_time"
	// IndexByID orders rows by document ID alone.
	IndexByID = "by_id"
)

// Schema maps table name -> index name -> declared index fields, without the
// implicit tie-breaker suffix.
type Schema map[string]map[string][]string

// ResolveIndexFields determines the ordered field list of an index. An
// explicit field list wins over the schema; the built-in indexes resolve to
// their fixed field lists only. The tie-breaker fields are appended unless
// already declared.
func ResolveIndexFields(table, index string, explicit []string, schema Schema) ([]string, error) {
	switch index {
	case IndexByCreationTime:
		return []string{FieldCreationTime, FieldID}, nil
	case IndexByID:
		return []string{FieldID}, nil
	}

	fields := explicit
	if fields == nil && schema != nil {
		fields = schema[table][index]
	}
	if fields == nil {
		return nil, &ConfigurationError{
			Table:  table,
			Index:  index,
			Reason: "no explicit field list and no schema entry found",
		}
	}

	ret := make([]string, 0, len(fields)+2)
	ret = append(ret, fields...)
	for _, tieBreaker := range []string{FieldCreationTime, FieldID} {
		if !lo.Contains(ret, tieBreaker) {
			ret = append(ret, tieBreaker)
		}
	}

	return ret, nil
}
