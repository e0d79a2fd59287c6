package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound 查無資料（包含 pgx.ErrNoRows 與 0 筆受影響）
	ErrNotFound = errors.New("not found")
	// ErrConflict 違反唯一性約束 (SQLSTATE 23505)
	ErrConflict = errors.New("conflict")
	// ErrInvalidReference 外鍵指向不存在的資料 (SQLSTATE 23503)
	ErrInvalidReference = errors.New("invalid reference")
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// wrap 包上操作名稱，並把 driver 錯誤轉成 store 的 sentinel
func wrap(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%s: %w", op, ErrConflict)
		case foreignKeyViolation:
			return fmt.Errorf("%s: %w", op, ErrInvalidReference)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// affected 把 0 筆受影響視為 ErrNotFound
func affected(op string, tag pgconn.CommandTag, err error) error {
	if err != nil {
		return wrap(op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// rowScanner 同時涵蓋 pgx.Row 與 pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// filter 組動態 WHERE 條件；cond 內以 %d 表示參數位置
type filter struct {
	clauses []string
	args    []any
}

func (f *filter) add(cond string, v any) {
	f.args = append(f.args, v)
	f.clauses = append(f.clauses, fmt.Sprintf(cond, len(f.args)))
}

func (f *filter) where() string {
	if len(f.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.clauses, " AND ")
}

// next 回傳下一個參數位置並加入參數
func (f *filter) next(v any) int {
	f.args = append(f.args, v)
	return len(f.args)
}

// collect 逐列掃描 rows
func collect[T any](rows pgx.Rows, scan func(rowScanner) (T, error)) ([]T, error) {
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
