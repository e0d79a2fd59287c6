package store

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

/* ---------- 假實作 ---------- */

// assign 依序把 vals 寫入 Scan 的 dest 指標
func assign(vals []any, dest []any) error {
	if len(vals) != len(dest) {
		return fmt.Errorf("scan: got %d dest, want %d", len(dest), len(vals))
	}
	for i, v := range vals {
		target := reflect.ValueOf(dest[i]).Elem()
		if v == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		target.Set(reflect.ValueOf(v).Convert(target.Type()))
	}
	return nil
}

// fakeRow 實作 pgx.Row，用於模擬單筆掃描行為。
type fakeRow struct {
	vals []any
	err  error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.vals, dest)
}

// fakeRows 實作 pgx.Rows，用於模擬多筆掃描行為。
type fakeRows struct {
	data   [][]any
	idx    int
	err    error
	closed bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Next() bool                                   { return r.idx < len(r.data) }
func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.idx]
	r.idx++
	return assign(row, dest)
}
func (r *fakeRows) Values() ([]any, error) { return nil, nil }
func (r *fakeRows) RawValues() [][]byte    { return nil }
func (r *fakeRows) Conn() *pgx.Conn        { return nil }

// recorded 記錄最後一次呼叫的 SQL 與參數
type recorded struct {
	sql  string
	args []any
}

func (r *recorded) row(row pgx.Row) func(ctx context.Context, sql string, args ...any) pgx.Row {
	return func(ctx context.Context, sql string, args ...any) pgx.Row {
		r.sql, r.args = sql, args
		return row
	}
}

func (r *recorded) rows(rows pgx.Rows, err error) func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
		r.sql, r.args = sql, args
		return rows, err
	}
}

func (r *recorded) exec(tag string, err error) func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
		r.sql, r.args = sql, args
		return pgconn.NewCommandTag(tag), err
	}
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func uniqueErr() error { return &pgconn.PgError{Code: "23505"} }

func intPtr(v int) *int { return &v }
