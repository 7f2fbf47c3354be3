// Package gormstore streams rows of a SQL table through GORM, rendering
// canonical indexpager ranges as WHERE / ORDER BY / LIMIT clauses. The
// table's composite index must sort the mapped columns the same way
// indexpager.Value sorts the corresponding values; with uniformly typed
// columns that holds on every dialect.
package gormstore

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mvoravek/indexpager"
)

// ColumnMapping maps index field names to fully qualified column names.
// Use it when bare field names could cause an "ambiguous column name" error
// or simply differ from the schema.
type ColumnMapping = map[string]string

// Store implements indexpager.Streamer over a SQL table. T is the GORM
// model of one row.
type Store[T any] struct {
	db      *gorm.DB
	columns ColumnMapping
}

func New[T any](db *gorm.DB) *Store[T] {
	return &Store[T]{
		db: db,
	}
}

// WithColumnMapping substitutes column names for index fields.
func (s *Store[T]) WithColumnMapping(columns ColumnMapping) *Store[T] {
	if s == nil {
		s = new(Store[T])
	}

	s.columns = columns

	return s
}

var _availableColumnNameSymbols = append([]rune("_.'`\""), lo.AlphanumericCharset...)

// Scan - implements indexpager.Streamer.
func (s *Store[T]) Scan(ctx context.Context, req indexpager.ScanRequest) ([]T, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("cannot scan: store has no database handle")
	}

	q := s.db.WithContext(ctx).Model(new(T)).Table(req.Table)

	for _, bound := range req.Range {
		expr, err := s.boundExpression(bound)
		if err != nil {
			return nil, err
		}

		q = q.Clauses(expr)
	}

	orderBy, err := s.orderClause(req.Fields, req.Order)
	if err != nil {
		return nil, err
	}
	q = q.Order(orderBy)

	if req.Limit != indexpager.NoLimit {
		q = q.Limit(req.Limit)
	}

	var rows []T
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("scan query failed: %w", err)
	}

	return rows, nil
}

// boundExpression converts a bound of the form Comparator(Field, Value) into
// an SQL condition "column op ?" represented as a clause.Expression.
func (s *Store[T]) boundExpression(bound indexpager.Bound) (clause.Expression, error) {
	column, err := s.column(bound.Field)
	if err != nil {
		return nil, err
	}

	sqlClause, arg := boundSQL(column, bound)

	return clause.Expr{
		SQL:  sqlClause,
		Vars: []any{arg},
	}, nil
}

// boundSQL renders a bound as "column op ?" with the corresponding
// placeholder value.
//
// Example:
//
//	Bound{Field: "rank", Comparator: ComparatorGT, Value: Number(10)}
//
// Result:
//
//	("rank > ?", 10.0)
func boundSQL(column string, bound indexpager.Bound) (string, driver.Value) {
	return fmt.Sprintf("%s %s ?", column, bound.Comparator.SQL()), bound.Value.Native()
}

// orderClause renders the full index field list as
// "<column_1> <order>, <column_2> <order>, ...". Every field participates:
// inside one canonical range the equality prefix is constant, but the
// remaining fields still decide the within-range order.
func (s *Store[T]) orderClause(fields []string, order indexpager.Order) (string, error) {
	if len(fields) == 0 {
		return "", fmt.Errorf("cannot order scan: empty index field list")
	}
	if !order.Valid() {
		return "", fmt.Errorf("invalid scan order '%s'", order)
	}

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		column, err := s.column(field)
		if err != nil {
			return "", err
		}

		parts = append(parts, fmt.Sprintf("%s %s", column, order))
	}

	return strings.Join(parts, ", "), nil
}

func (s *Store[T]) column(field string) (string, error) {
	column := field
	if s.columns != nil {
		if mapped, ok := s.columns[field]; ok {
			column = mapped
		}
	}

	// Guard against SQL injection by restricting allowed characters in
	// column names.
	if !lo.Every(_availableColumnNameSymbols, []rune(column)) {
		return "", fmt.Errorf("column name contains forbidden symbols '%s'", column)
	}

	return column, nil
}
