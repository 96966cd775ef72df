// Package querybuilder assembles parameterized SELECT statements from a
// sparse set of optional filters. Values never appear in the query text; each
// one is bound through a positional placeholder numbered at append time.
package querybuilder

import (
	"strconv"
	"strings"
)

// Condition is a single column predicate. A Condition built from a nil value
// is absent and renders nothing.
type Condition struct {
	column string
	op     string
	value  any
	ok     bool
}

// When returns a condition on column using op, present only when v is non-nil.
func When[T any](column, op string, v *T) Condition {
	if v == nil {
		return Condition{}
	}
	return Condition{column: column, op: op, value: *v, ok: true}
}

// Eq is When with the equality operator.
func Eq[T any](column string, v *T) Condition {
	return When(column, "=", v)
}

// Present reports whether the condition contributes a clause.
func (c Condition) Present() bool {
	return c.ok
}

// Query is rendered SQL text plus its ordered bind arguments.
type Query struct {
	SQL  string
	Args []any
}

// Builder collects conditions, ordering and paging for one statement.
type Builder struct {
	base    string
	conds   []Condition
	orderBy string
	paged   bool
	limit   int
	offset  int
}

// New starts a statement from base, which must not contain a WHERE clause.
func New(base string) *Builder {
	return &Builder{base: base}
}

// Where appends conditions in the order given. Absent ones are skipped at
// render time.
func (b *Builder) Where(conds ...Condition) *Builder {
	b.conds = append(b.conds, conds...)
	return b
}

// OrderBy sets the ORDER BY expression. It is inserted verbatim and must
// never carry caller input.
func (b *Builder) OrderBy(expr string) *Builder {
	b.orderBy = expr
	return b
}

// Paginate adds LIMIT and OFFSET, both bound as parameters after every
// filter value.
func (b *Builder) Paginate(limit, offset int) *Builder {
	b.paged = true
	b.limit = limit
	b.offset = offset
	return b
}

// Build renders the statement. It has no side effects and can be called
// repeatedly.
func (b *Builder) Build() Query {
	var sb strings.Builder
	args := make([]any, 0, len(b.conds)+2)

	bind := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	sb.WriteString(b.base)
	sb.WriteString(" WHERE 1=1")
	for _, c := range b.conds {
		if !c.ok {
			continue
		}
		sb.WriteString(" AND ")
		sb.WriteString(c.column)
		sb.WriteByte(' ')
		sb.WriteString(c.op)
		sb.WriteByte(' ')
		sb.WriteString(bind(c.value))
	}
	if b.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.orderBy)
	}
	if b.paged {
		sb.WriteString(" LIMIT ")
		sb.WriteString(bind(b.limit))
		sb.WriteString(" OFFSET ")
		sb.WriteString(bind(b.offset))
	}

	return Query{SQL: sb.String(), Args: args}
}
