package repo

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type call struct {
	query string
	args  []any
}

// stubExecutor records every statement and answers from canned results keyed
// by the sqlinline constant.
type stubExecutor struct {
	calls    []call
	execErr  map[string]error
	affected int64
	row      map[string][]any
	rowErr   map[string]error
	rows     map[string][][]any
}

func newStubExecutor() *stubExecutor {
	return &stubExecutor{
		execErr:  map[string]error{},
		affected: 1,
		row:      map[string][]any{},
		rowErr:   map[string]error{},
		rows:     map[string][][]any{},
	}
}

func (s *stubExecutor) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.calls = append(s.calls, call{query: query, args: args})
	if err := s.execErr[query]; err != nil {
		return pgconn.CommandTag{}, err
	}
	return pgconn.NewCommandTag(fmt.Sprintf("UPDATE %d", s.affected)), nil
}

func (s *stubExecutor) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	s.calls = append(s.calls, call{query: query, args: args})
	if err := s.rowErr[query]; err != nil {
		return simpleRow{err: err}
	}
	vals, ok := s.row[query]
	if !ok {
		return simpleRow{err: pgx.ErrNoRows}
	}
	return simpleRow{vals: vals}
}

func (s *stubExecutor) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	s.calls = append(s.calls, call{query: query, args: args})
	return &stubRows{data: s.rows[query], idx: -1}, nil
}

func (s *stubExecutor) callsTo(query string) []call {
	var out []call
	for _, c := range s.calls {
		if c.query == query {
			out = append(out, c)
		}
	}
	return out
}

type simpleRow struct {
	vals []any
	err  error
}

func (r simpleRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(dest, r.vals)
}

type stubRows struct {
	data [][]any
	idx  int
}

func (r *stubRows) Close()                                       {}
func (r *stubRows) Err() error                                   { return nil }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) Values() ([]any, error)                       { return r.data[r.idx], nil }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

func (r *stubRows) Next() bool {
	r.idx++
	return r.idx < len(r.data)
}

func (r *stubRows) Scan(dest ...any) error {
	return assign(dest, r.data[r.idx])
}

// assign copies vals into the scan destinations, converting between named
// and underlying types the way the pgx scanner would.
func assign(dest []any, vals []any) error {
	if len(dest) != len(vals) {
		return fmt.Errorf("scan: %d destinations, %d values", len(dest), len(vals))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		if vals[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		v := reflect.ValueOf(vals[i])
		if target.Kind() == reflect.Pointer && v.Kind() != reflect.Pointer {
			ptr := reflect.New(target.Type().Elem())
			ptr.Elem().Set(v.Convert(target.Type().Elem()))
			target.Set(ptr)
			continue
		}
		if !v.Type().ConvertibleTo(target.Type()) {
			return fmt.Errorf("scan: column %d: cannot assign %T to %s", i, vals[i], target.Type())
		}
		target.Set(v.Convert(target.Type()))
	}
	return nil
}
