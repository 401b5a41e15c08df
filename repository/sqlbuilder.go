// file: repository/sqlbuilder.go

package repository

import (
	"strconv"
	"strings"
)

// fragment is a piece of SQL with "?" markers and the values bound to them, in order.
type fragment struct {
	sql  string
	args []any
}

// selectBuilder assembles a SELECT statement clause by clause. Values are
// only ever carried as bound arguments; Build renumbers the "?" markers into
// postgres "$n" placeholders in the order they appear in the final text.
type selectBuilder struct {
	columns []fragment
	from    string
	joins   []string
	where   []fragment
	groupBy []string
	having  []fragment
	orderBy []string
	limit   *fragment
	offset  *fragment
}

func newSelect(from string) *selectBuilder {
	return &selectBuilder{from: from}
}

func (b *selectBuilder) Column(sql string, args ...any) *selectBuilder {
	b.columns = append(b.columns, fragment{sql: sql, args: args})
	return b
}

func (b *selectBuilder) Join(sql string) *selectBuilder {
	b.joins = append(b.joins, sql)
	return b
}

// Where adds a condition. Conditions are joined with AND.
func (b *selectBuilder) Where(sql string, args ...any) *selectBuilder {
	b.where = append(b.where, fragment{sql: sql, args: args})
	return b
}

func (b *selectBuilder) GroupBy(columns ...string) *selectBuilder {
	b.groupBy = append(b.groupBy, columns...)
	return b
}

// Having adds an aggregate condition. Conditions are joined with AND.
func (b *selectBuilder) Having(sql string, args ...any) *selectBuilder {
	b.having = append(b.having, fragment{sql: sql, args: args})
	return b
}

func (b *selectBuilder) OrderBy(terms ...string) *selectBuilder {
	b.orderBy = append(b.orderBy, terms...)
	return b
}

func (b *selectBuilder) Limit(n int) *selectBuilder {
	b.limit = &fragment{sql: "?", args: []any{n}}
	return b
}

func (b *selectBuilder) Offset(n int) *selectBuilder {
	b.offset = &fragment{sql: "?", args: []any{n}}
	return b
}

// Build returns the statement text and its arguments.
func (b *selectBuilder) Build() (string, []any) {
	var sb strings.Builder
	var args []any

	sb.WriteString("SELECT ")
	for i, c := range b.columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.sql)
		args = append(args, c.args...)
	}

	sb.WriteString(" FROM ")
	sb.WriteString(b.from)
	for _, j := range b.joins {
		sb.WriteString(" ")
		sb.WriteString(j)
	}

	args = writeConditions(&sb, " WHERE ", b.where, args)

	if len(b.groupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(b.groupBy, ", "))
	}

	args = writeConditions(&sb, " HAVING ", b.having, args)

	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit != nil {
		sb.WriteString(" LIMIT ")
		sb.WriteString(b.limit.sql)
		args = append(args, b.limit.args...)
	}
	if b.offset != nil {
		sb.WriteString(" OFFSET ")
		sb.WriteString(b.offset.sql)
		args = append(args, b.offset.args...)
	}

	return rebind(sb.String()), args
}

func writeConditions(sb *strings.Builder, keyword string, conds []fragment, args []any) []any {
	if len(conds) == 0 {
		return args
	}
	sb.WriteString(keyword)
	for i, c := range conds {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sb.WriteString(c.sql)
		args = append(args, c.args...)
	}
	return args
}

// updateBuilder assembles an UPDATE statement from a whitelisted set of columns.
type updateBuilder struct {
	table string
	sets  []fragment
	where []fragment
}

func newUpdate(table string) *updateBuilder {
	return &updateBuilder{table: table}
}

// Set assigns value to column. Column names come from code, never from input.
func (b *updateBuilder) Set(column string, value any) *updateBuilder {
	b.sets = append(b.sets, fragment{sql: column + " = ?", args: []any{value}})
	return b
}

func (b *updateBuilder) Where(sql string, args ...any) *updateBuilder {
	b.where = append(b.where, fragment{sql: sql, args: args})
	return b
}

// Empty reports whether no column has been set.
func (b *updateBuilder) Empty() bool {
	return len(b.sets) == 0
}

func (b *updateBuilder) Build() (string, []any) {
	var sb strings.Builder
	var args []any

	sb.WriteString("UPDATE ")
	sb.WriteString(b.table)
	sb.WriteString(" SET ")
	for i, s := range b.sets {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(s.sql)
		args = append(args, s.args...)
	}
	args = writeConditions(&sb, " WHERE ", b.where, args)

	return rebind(sb.String()), args
}

// rebind rewrites "?" markers as $1, $2, ... in order of appearance.
func rebind(query string) string {
	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
