package indexpager

import (
	"context"
	"fmt"

	"github.com/samber/lo"
)

// Predicate is an optional post-fetch filter applied to raw pages before
// they are returned. It may suspend (hit other tables, caches) and may
// legitimately shrink a page to nothing without that meaning the range is
// exhausted.
type Predicate[T any] func(context.Context, T) (bool, error)

// PaginateRequest is the opaque-cursor surface over GetPage, shaped for API
// payloads.
type PaginateRequest[T any] struct {
	Table string
	Index string
	// IndexFields overrides schema resolution for custom indexes.
	IndexFields []string

	// Cursor resumes after a previous page; empty means the start of the
	// range, EndCursor means the range is already exhausted.
	Cursor string
	// NumItems is the soft page size, normalized via NormalizeRows.
	NumItems int
	// EndCursor, when set to anything but the EndCursor sentinel, pins the
	// far boundary of the walk: NumItems no longer truncates the page and
	// only the absolute safety cap applies. Used for reactive pagination
	// windows that must stay glued to their neighbor page.
	EndCursor string
	// AbsoluteMaxRows overrides the safety cap; NoLimit disables it.
	AbsoluteMaxRows int

	Order     Order
	Predicate Predicate[T]
}

// PaginateResult mirrors PaginateRequest. Callers must chain ContinueCursor
// and inspect IsDone; page length says nothing about completion once a
// predicate is involved.
type PaginateResult[T any] struct {
	Page           []T
	IsDone         bool
	ContinueCursor string
	// PageKeys - the full-length index key of every returned row, parallel
	// to Page.
	PageKeys []IndexKey
}

// Paginate fetches the next page of an index range addressed by opaque
// cursors.
//
// The continue cursor is always derived from the raw unfiltered page, so a
// sparse predicate advances through the range even when every row of a page
// is filtered out. Cursors chain the same way in both orders: ContinueCursor
// resumes the walk wherever it stopped, which on a descending walk is the
// lower side of the fetched window.
//
// With a pinned EndCursor the result echoes the pin and IsDone reports
// whether the scan exhausted the range at or before the pinned key; a page
// truncated by the absolute cap returns IsDone=false so the caller can
// retry the window with a larger budget.
func (p *Pager[T]) Paginate(ctx context.Context, req PaginateRequest[T]) (PaginateResult[T], error) {
	if req.Cursor == EndCursor {
		return PaginateResult[T]{
			Page:           []T{},
			IsDone:         true,
			ContinueCursor: EndCursor,
		}, nil
	}

	cursorKey, err := DecodeCursor(req.Cursor)
	if err != nil {
		return PaginateResult[T]{}, fmt.Errorf("cannot paginate: %w", err)
	}

	pinned := req.EndCursor != "" && req.EndCursor != EndCursor
	var pin IndexKey
	if pinned {
		pin, err = DecodeCursor(req.EndCursor)
		if err != nil {
			return PaginateResult[T]{}, fmt.Errorf("cannot paginate: %w", err)
		}
	}

	order := req.Order
	if order == "" {
		order = OrderASC
	}

	pageReq := PageRequest{
		Table:       req.Table,
		Index:       req.Index,
		IndexFields: req.IndexFields,

		Order:           order,
		TargetMaxRows:   NormalizeRows(req.NumItems),
		AbsoluteMaxRows: req.AbsoluteMaxRows,
	}

	// Boundary keys are key-order bounds, not walk-relative, so the side the
	// cursor lands on flips with the order. Resumption keys are the last
	// returned row, hence exclusive; pins close their side of the window,
	// hence inclusive.
	if order == OrderDESC {
		pageReq.End, pageReq.EndInclusive = cursorKey, false
		pageReq.Start, pageReq.StartInclusive = pin, true
		if pinned {
			// The NumItems-ignoring pin rule keys off the end boundary,
			// which a descending resume cursor occupies. Restate the
			// budget explicitly for this walk direction.
			pageReq.TargetMaxRows = NoLimit
		} else {
			pageReq.AbsoluteMaxRows = minRows(pageReq.TargetMaxRows, absoluteCap(req.AbsoluteMaxRows))
		}
	} else {
		pageReq.Start, pageReq.StartInclusive = cursorKey, false
		pageReq.End, pageReq.EndInclusive = pin, true
	}

	resp, err := p.GetPage(ctx, pageReq)
	if err != nil {
		return PaginateResult[T]{}, err
	}

	page, pageKeys := resp.Page, resp.IndexKeys
	if req.Predicate != nil {
		page, pageKeys, err = filterPage(ctx, req.Predicate, page, pageKeys)
		if err != nil {
			return PaginateResult[T]{}, err
		}
	}

	if pinned {
		return PaginateResult[T]{
			Page:           page,
			IsDone:         !resp.HasMore,
			ContinueCursor: req.EndCursor,
			PageKeys:       pageKeys,
		}, nil
	}

	if !resp.HasMore {
		return PaginateResult[T]{
			Page:           page,
			IsDone:         true,
			ContinueCursor: EndCursor,
			PageKeys:       pageKeys,
		}, nil
	}

	return PaginateResult[T]{
		Page:           page,
		IsDone:         false,
		ContinueCursor: EncodeCursor(lo.LastOrEmpty(resp.IndexKeys)),
		PageKeys:       pageKeys,
	}, nil
}

func filterPage[T any](ctx context.Context, predicate Predicate[T], page []T, keys []IndexKey) ([]T, []IndexKey, error) {
	filtered := make([]T, 0, len(page))
	filteredKeys := make([]IndexKey, 0, len(keys))
	for i, row := range page {
		ok, err := predicate(ctx, row)
		if err != nil {
			return nil, nil, fmt.Errorf("page predicate failed: %w", err)
		}
		if !ok {
			continue
		}

		filtered = append(filtered, row)
		filteredKeys = append(filteredKeys, keys[i])
	}

	return filtered, filteredKeys, nil
}
