// Package memstore is an in-memory ordered document store implementing the
// indexpager scan primitive. It is the reference backend used by the test
// suite and the examples; it keeps documents unordered and sorts per scan,
// trading speed for an exact match with the comparison semantics of
// indexpager.Value.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mvoravek/indexpager"
)

// Store holds any number of named tables of map-shaped documents. All
// methods are safe for concurrent use; scans observe whatever documents are
// present at call time, there is no snapshotting.
type Store struct {
	mu    sync.RWMutex
	docs  map[string][]indexpager.Document
	clock func() float64
}

func New() *Store {
	return &Store{
		docs: make(map[string][]indexpager.Document),
		clock: func() float64 {
			return float64(time.Now().UnixMicro())
		},
	}
}

// WithClock substitutes the creation timestamp source, useful for
// deterministic fixtures.
func (s *Store) WithClock(clock func() float64) *Store {
	if s == nil {
		s = New()
	}

	s.clock = clock

	return s
}

// Insert stores a copy of the document, filling in the id and creationTime
// tie-breaker fields when absent, and returns the stored copy.
func (s *Store) Insert(table string, doc indexpager.Document) indexpager.Document {
	stored := make(indexpager.Document, len(doc)+2)
	for field, value := range doc {
		stored[field] = value
	}
	if _, ok := stored[indexpager.FieldID]; !ok {
		stored[indexpager.FieldID] = indexpager.ID(uuid.NewString())
	}
	if _, ok := stored[indexpager.FieldCreationTime]; !ok {
		stored[indexpager.FieldCreationTime] = indexpager.Number(s.clock())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[table] = append(s.docs[table], stored)

	return stored
}

// Delete removes the document with the given id. Returns false if no such
// document exists.
func (s *Store) Delete(table string, id indexpager.Value) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.docs[table]
	for i, doc := range docs {
		if doc[indexpager.FieldID].Equal(id) {
			s.docs[table] = append(docs[:i:i], docs[i+1:]...)
			return true
		}
	}

	return false
}

// Len returns the number of documents in a table.
func (s *Store) Len(table string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.docs[table])
}

// Scan - implements indexpager.Streamer. Rows are filtered by the canonical
// range conditions, ordered by the projected index key and truncated to the
// limit.
func (s *Store) Scan(ctx context.Context, req indexpager.ScanRequest) ([]indexpager.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	docs := s.docs[req.Table]
	matched := make([]indexpager.Document, 0, len(docs))
	for _, doc := range docs {
		if matchesRange(doc, req.Range) {
			matched = append(matched, doc)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		c := projectKey(matched[i], req.Fields).Compare(projectKey(matched[j], req.Fields))
		if req.Order == indexpager.OrderDESC {
			return c > 0
		}

		return c < 0
	})

	if req.Limit != indexpager.NoLimit && req.Limit < len(matched) {
		matched = matched[:req.Limit]
	}

	return matched, nil
}

var _ indexpager.Streamer[indexpager.Document] = (*Store)(nil)

func matchesRange(doc indexpager.Document, rng indexpager.Range) bool {
	for _, bound := range rng {
		c := doc[bound.Field].Compare(bound.Value)

		var ok bool
		switch bound.Comparator {
		case indexpager.ComparatorEq:
			ok = c == 0
		case indexpager.ComparatorLT:
			ok = c < 0
		case indexpager.ComparatorLTE:
			ok = c <= 0
		case indexpager.ComparatorGT:
			ok = c > 0
		case indexpager.ComparatorGTE:
			ok = c >= 0
		}

		if !ok {
			return false
		}
	}

	return true
}

func projectKey(doc indexpager.Document, fields []string) indexpager.IndexKey {
	key := make(indexpager.IndexKey, 0, len(fields))
	for _, field := range fields {
		key = append(key, doc[field])
	}

	return key
}
