package source

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
)

// ScanFunc reads the current row.
type ScanFunc[Item any] = func(rows *sql.Rows) (Item, error)

// Rows returns a source yielding the rows of a query, each read by scan. The query runs when
// the sequence is first ranged over, and its rows are closed when the sequence ends. The
// database itself is left open.
func Rows[Item any](db *sql.DB, scan ScanFunc[Item], query string, args ...any) *Seq[Item] {
	if db == nil {
		panic("db can't be nil")
	}
	if scan == nil {
		panic("scan can't be nil")
	}

	return New(func(ctx context.Context) iter.Seq2[Item, error] {
		return func(yield func(Item, error) bool) {
			var zero Item

			rows, err := db.QueryContext(ctx, query, args...)
			if err != nil {
				yield(zero, fmt.Errorf("query: %w", err))
				return
			}
			defer rows.Close()

			for rows.Next() {
				item, err := scan(rows)
				if err != nil {
					yield(zero, fmt.Errorf("scan row: %w", err))
					return
				}
				if !yield(item, nil) {
					return
				}
			}
			if err := rows.Err(); err != nil {
				yield(zero, fmt.Errorf("read rows: %w", err))
			}
		}
	})
}
