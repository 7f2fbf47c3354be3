package indexpager

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Document is the generic map-shaped row type used by schemaless backends
// like memstore. Struct-backed stores plug their own row type into Pager
// instead.
type Document map[string]Value

// Getters is a dictionary of field getters for a row type. It must cover
// every field of every index paged over, tie-breakers included.
// Example:
//
//	indexpager.Getters[User]{
//		"creationTime": func(u User) indexpager.Value { return indexpager.Number(u.CreatedAt) },
//		"id":           func(u User) indexpager.Value { return indexpager.ID(u.ID) },
//	}
type Getters[T any] map[string]func(T) Value

// DocumentGetters builds Getters projecting the given fields out of
// map-shaped documents.
func DocumentGetters(fields ...string) Getters[Document] {
	ret := make(Getters[Document], len(fields))
	for _, field := range fields {
		ret[field] = func(doc Document) Value {
			return doc[field]
		}
	}

	return ret
}

// PageRequest describes one bounded read of an index range.
//
// Start and End are partial or full boundary keys; an empty key leaves that
// side open. If End is supplied, TargetMaxRows is ignored and only
// AbsoluteMaxRows caps the page.
type PageRequest struct {
	Table string
	Index string
	// IndexFields overrides schema resolution for custom indexes.
	IndexFields []string

	Start          IndexKey
	StartInclusive bool
	End            IndexKey
	EndInclusive   bool

	// Order is the physical walk direction, OrderASC by default.
	Order Order
	// TargetMaxRows is the soft page size, DefaultMaxRows by default.
	TargetMaxRows int
	// AbsoluteMaxRows is the hard safety cap, AbsoluteMaxRows by default.
	// NoLimit disables it.
	AbsoluteMaxRows int
}

// PageResponse is a complete, internally consistent page. IndexKeys runs
// parallel to Page: IndexKeys[i] is the full-length key projected from
// Page[i] and is safe to reuse as a boundary key in a later request.
type PageResponse[T any] struct {
	Page    []T
	HasMore bool
	// IndexKeys - one full-length resumable key per returned row.
	IndexKeys []IndexKey
	// ContinueCursor is the serialized resumption position: the last
	// returned key when HasMore, the EndCursor sentinel otherwise.
	ContinueCursor string
}

// Pager pages over the indexes of one table through a Streamer. Configure it
// with the fluent With* methods; the zero/nil pager is tolerated everywhere
// but cannot fetch pages until a store is attached.
type Pager[T any] struct {
	store   Streamer[T]
	schema  Schema
	getters Getters[T]
	logger  *zap.Logger
}

func NewPager[T any](store Streamer[T], getters Getters[T]) *Pager[T] {
	return &Pager[T]{
		store:   store,
		getters: getters,
	}
}

// WithSchema attaches index declarations used to resolve custom index names
// that arrive without an explicit field list.
func (p *Pager[T]) WithSchema(schema Schema) *Pager[T] {
	if p == nil {
		p = new(Pager[T])
	}

	p.schema = schema

	return p
}

// WithLogger attaches a structured logger. Scans are logged at debug level;
// the default is a nop logger.
func (p *Pager[T]) WithLogger(logger *zap.Logger) *Pager[T] {
	if p == nil {
		p = new(Pager[T])
	}

	p.logger = logger

	return p
}

func (p *Pager[T]) log() *zap.Logger {
	if p == nil || p.logger == nil {
		return zap.NewNop()
	}

	return p.logger
}

// Range resolves the request's index fields and runs the declarative builder
// against them, returning the request with its boundary keys filled in.
//
// Usage:
//
//	req, err := pager.Range(PageRequest{Table: "users", Index: "by_team"},
//		func(b *RangeBuilder) *RangeBuilder {
//			return b.Eq("team", ID(teamID)).Gte("rank", Number(10))
//		})
func (p *Pager[T]) Range(req PageRequest, build func(*RangeBuilder) *RangeBuilder) (PageRequest, error) {
	fields, err := ResolveIndexFields(req.Table, req.Index, req.IndexFields, p.schemaOrNil())
	if err != nil {
		return PageRequest{}, err
	}

	start, startInclusive, end, endInclusive, err := build(NewRangeBuilder(fields...)).Build()
	if err != nil {
		return PageRequest{}, err
	}

	req.Start, req.StartInclusive = start, startInclusive
	req.End, req.EndInclusive = end, endInclusive

	return req, nil
}

func (p *Pager[T]) schemaOrNil() Schema {
	if p == nil {
		return nil
	}

	return p.schema
}

// GetPage fetches one bounded page of the requested range.
//
// The resolved range is split into canonical scans which run strictly
// sequentially: whether a later scan is needed at all depends on how many
// rows the earlier ones yielded. Each scan asks for one row beyond the
// remaining budget so HasMore never needs a second round trip. The call
// either returns a complete page or fails entirely; it never returns rows
// alongside an error.
func (p *Pager[T]) GetPage(ctx context.Context, req PageRequest) (PageResponse[T], error) {
	if p == nil || p.store == nil {
		return PageResponse[T]{}, fmt.Errorf("cannot get page: pager has no backing store")
	}

	fields, err := ResolveIndexFields(req.Table, req.Index, req.IndexFields, p.schema)
	if err != nil {
		return PageResponse[T]{}, err
	}

	order := req.Order
	if order == "" {
		order = OrderASC
	}
	if !order.Valid() {
		return PageResponse[T]{}, &RangeError{Reason: fmt.Sprintf("invalid order '%s'", req.Order)}
	}

	// Row budgets admit exactly zero (use the default), NoLimit, or a
	// positive count.
	if req.TargetMaxRows < NoLimit {
		return PageResponse[T]{}, &RangeError{Reason: fmt.Sprintf("invalid target row limit %d", req.TargetMaxRows)}
	}
	if req.AbsoluteMaxRows < NoLimit {
		return PageResponse[T]{}, &RangeError{Reason: fmt.Sprintf("invalid absolute row limit %d", req.AbsoluteMaxRows)}
	}

	ranges, err := splitRange(fields, req.Start, req.End,
		comparatorForStart(req.StartInclusive), comparatorForEnd(req.EndInclusive))
	if err != nil {
		return PageResponse[T]{}, err
	}
	if order == OrderDESC {
		ranges = lo.Reverse(ranges)
	}

	budget := p.rowBudget(req)

	var page []T
	hasMore := false
	for i, rng := range ranges {
		remaining := NoLimit
		if budget != NoLimit {
			// One lookahead row decides HasMore without a second fetch.
			remaining = budget - len(page) + 1
		}

		p.log().Debug("issuing range scan",
			zap.Int("scan", i+1),
			zap.Int("scans", len(ranges)),
			zap.String("range", rng.String()),
			zap.String("order", string(order)),
			zap.Int("limit", remaining),
		)

		rows, err := p.store.Scan(ctx, ScanRequest{
			Table:  req.Table,
			Index:  req.Index,
			Fields: fields,
			Range:  rng,
			Order:  order,
			Limit:  remaining,
		})
		if err != nil {
			return PageResponse[T]{}, fmt.Errorf("scan %d of %d failed: %w", i+1, len(ranges), err)
		}

		page = append(page, rows...)
		if budget != NoLimit && len(page) > budget {
			page = page[:budget]
			hasMore = true
			break
		}
	}

	indexKeys := make([]IndexKey, 0, len(page))
	for _, row := range page {
		key, err := p.projectKey(fields, row)
		if err != nil {
			return PageResponse[T]{}, err
		}

		indexKeys = append(indexKeys, key)
	}

	continueCursor := EndCursor
	if hasMore {
		continueCursor = EncodeCursor(lo.LastOrEmpty(indexKeys))
	}

	return PageResponse[T]{
		Page:           page,
		HasMore:        hasMore,
		IndexKeys:      indexKeys,
		ContinueCursor: continueCursor,
	}, nil
}

// rowBudget computes the hard row count for one page: the absolute cap
// alone when an explicit end key pins the range, the tighter of target and
// absolute otherwise.
func (p *Pager[T]) rowBudget(req PageRequest) int {
	absolute := absoluteCap(req.AbsoluteMaxRows)

	if len(req.End) > 0 {
		return absolute
	}

	target := req.TargetMaxRows
	if target == 0 {
		target = DefaultMaxRows
	}

	return minRows(target, absolute)
}

func (p *Pager[T]) projectKey(fields []string, row T) (IndexKey, error) {
	key := make(IndexKey, 0, len(fields))
	for _, field := range fields {
		getter, ok := p.getters[field]
		if !ok {
			return nil, fmt.Errorf("cannot find getter for index field '%s'", field)
		}

		key = append(key, getter(row))
	}

	return key, nil
}
