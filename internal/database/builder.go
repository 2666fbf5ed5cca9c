package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// execer is the subset of *sql.DB / *sql.Tx the builders execute against.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// InsertBuilder assembles a parameter-bound INSERT statement from ordered
// column/value pairs.
//
// Design decision: Statement text is assembled only from fixed table and
// column identifiers supplied by this package; every value travels as a
// bound parameter. Scraped text never becomes part of the SQL string.
type InsertBuilder struct {
	table    string
	columns  []string
	args     []any
	orIgnore bool
}

// NewInsert starts an INSERT into the given table.
func NewInsert(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

// OrIgnore makes the statement an INSERT OR IGNORE, used for link tables
// where re-inserting an existing pair is a no-op rather than an error.
func (b *InsertBuilder) OrIgnore() *InsertBuilder {
	b.orIgnore = true
	return b
}

// Set appends one column/value pair. Call order determines column order.
func (b *InsertBuilder) Set(column string, value any) *InsertBuilder {
	b.columns = append(b.columns, column)
	b.args = append(b.args, value)
	return b
}

// SQL renders the statement and its bound arguments.
func (b *InsertBuilder) SQL() (string, []any) {
	verb := "INSERT"
	if b.orIgnore {
		verb = "INSERT OR IGNORE"
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(b.columns)), ", ")
	query := fmt.Sprintf("%s INTO %s (%s) VALUES (%s)",
		verb, b.table, strings.Join(b.columns, ", "), placeholders)
	return query, b.args
}

// Exec renders and executes the statement.
func (b *InsertBuilder) Exec(ctx context.Context, db execer) (sql.Result, error) {
	if len(b.columns) == 0 {
		return nil, fmt.Errorf("insert into %s has no columns", b.table)
	}
	query, args := b.SQL()
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", b.table, err)
	}
	return result, nil
}
