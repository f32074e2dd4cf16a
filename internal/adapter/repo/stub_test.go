package repo

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"garage/internal/infra"
)

type execCall struct {
	query string
	args  []any
}

// stubSQL answers queries from canned results keyed by the query constant.
type stubSQL struct {
	rows     map[string][][]any
	row      map[string][]any
	rowErr   map[string]error
	queryErr map[string]error
	execErr  map[string]error
	execs    []execCall
	queries  []execCall
	txs      int
}

func newStubSQL() *stubSQL {
	return &stubSQL{
		rows:     map[string][][]any{},
		row:      map[string][]any{},
		rowErr:   map[string]error{},
		queryErr: map[string]error{},
		execErr:  map[string]error{},
	}
}

func (s *stubSQL) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.execs = append(s.execs, execCall{query: query, args: args})
	if err, ok := s.execErr[query]; ok {
		return pgconn.CommandTag{}, err
	}
	return pgconn.NewCommandTag("OK 1"), nil
}

func (s *stubSQL) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	s.queries = append(s.queries, execCall{query: query, args: args})
	if err, ok := s.rowErr[query]; ok {
		return stubRow{err: err}
	}
	values, ok := s.row[query]
	if !ok {
		return stubRow{err: pgx.ErrNoRows}
	}
	return stubRow{values: values}
}

func (s *stubSQL) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	s.queries = append(s.queries, execCall{query: query, args: args})
	if err, ok := s.queryErr[query]; ok {
		return nil, err
	}
	return &stubRows{data: s.rows[query]}, nil
}

func (s *stubSQL) InTx(_ context.Context, fn func(tx infra.SQLExecutor) error) error {
	s.txs++
	return fn(s)
}

var _ infra.TxRunner = (*stubSQL)(nil)

type stubRow struct {
	values []any
	err    error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assignAll(dest, r.values)
}

type stubRows struct {
	data [][]any
	idx  int
}

func (r *stubRows) Next() bool {
	if r.idx >= len(r.data) {
		return false
	}
	r.idx++
	return true
}

func (r *stubRows) Scan(dest ...any) error {
	if r.idx == 0 || r.idx > len(r.data) {
		return pgx.ErrNoRows
	}
	return assignAll(dest, r.data[r.idx-1])
}

func (r *stubRows) Close()                                       {}
func (r *stubRows) Err() error                                   { return nil }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

func (r *stubRows) Values() ([]any, error) {
	return nil, fmt.Errorf("values not supported in test rows")
}

// assignAll copies values into scan destinations, converting between named
// and underlying types and allocating pointers for nullable columns.
func assignAll(dest []any, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(values))
	}
	for i := range dest {
		target := reflect.ValueOf(dest[i]).Elem()
		if values[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		v := reflect.ValueOf(values[i])
		if target.Kind() == reflect.Ptr && v.Kind() != reflect.Ptr {
			p := reflect.New(target.Type().Elem())
			p.Elem().Set(v.Convert(target.Type().Elem()))
			target.Set(p)
			continue
		}
		if !v.Type().ConvertibleTo(target.Type()) {
			return fmt.Errorf("scan: column %d: cannot assign %T to %s", i, values[i], target.Type())
		}
		target.Set(v.Convert(target.Type()))
	}
	return nil
}
