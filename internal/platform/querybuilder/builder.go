// Package querybuilder renders the small set of postgres statements the
// document backend needs, with $n placeholders.
package querybuilder

import (
	"errors"
	"strconv"
	"strings"
)

// Condition renders one predicate of a WHERE clause.
type Condition interface {
	appendSQL(q *query)
}

type eqCondition struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eqCondition{column: column, value: value}
}

func (c eqCondition) appendSQL(q *query) {
	q.buf.WriteString(c.column)
	q.buf.WriteString(" = ")
	q.bind(c.value)
}

type query struct {
	buf  strings.Builder
	args []any
}

func (q *query) bind(v any) {
	q.args = append(q.args, v)
	q.buf.WriteString("$")
	q.buf.WriteString(strconv.Itoa(len(q.args)))
}

func (q *query) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			q.buf.WriteString(" WHERE ")
		} else {
			q.buf.WriteString(" AND ")
		}
		c.appendSQL(q)
	}
}

type SelectBuilder struct {
	columns   []string
	table     string
	where     []Condition
	forUpdate bool
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// ForUpdate locks the selected rows until the surrounding transaction ends.
func (b *SelectBuilder) ForUpdate() *SelectBuilder {
	b.forUpdate = true
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, errors.New("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errors.New("select table is required")
	}

	var q query
	q.buf.WriteString("SELECT ")
	q.buf.WriteString(strings.Join(b.columns, ", "))
	q.buf.WriteString(" FROM ")
	q.buf.WriteString(b.table)
	q.where(b.where)
	if b.forUpdate {
		q.buf.WriteString(" FOR UPDATE")
	}
	return q.buf.String(), q.args, nil
}

// InsertBuilder writes a single row; Suffix carries ON CONFLICT clauses.
type InsertBuilder struct {
	table   string
	columns []string
	values  []any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.values = append([]any(nil), values...)
	return b
}

func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errors.New("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, errors.New("insert columns are required")
	}
	if len(b.values) != len(b.columns) {
		return "", nil, errors.New("insert needs one value per column")
	}

	var q query
	q.buf.WriteString("INSERT INTO ")
	q.buf.WriteString(b.table)
	q.buf.WriteString(" (")
	q.buf.WriteString(strings.Join(b.columns, ", "))
	q.buf.WriteString(") VALUES (")
	for i, v := range b.values {
		if i > 0 {
			q.buf.WriteString(", ")
		}
		q.bind(v)
	}
	q.buf.WriteString(")")
	if b.suffix != "" {
		q.buf.WriteString(" ")
		q.buf.WriteString(b.suffix)
	}
	return q.buf.String(), q.args, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errors.New("delete table is required")
	}
	if len(b.where) == 0 {
		return "", nil, errors.New("delete without where clause is not allowed")
	}

	var q query
	q.buf.WriteString("DELETE FROM ")
	q.buf.WriteString(b.table)
	q.where(b.where)
	return q.buf.String(), q.args, nil
}
