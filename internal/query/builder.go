// Package query builds the count and data queries behind exercise logs.
package query

import "strings"

const (
	joinClause = `FROM users JOIN exercise ON users.id = exercise.userId`

	logColumns = `users.id, users.username, exercise.exerciseId, exercise.duration, exercise.description, exercise.date`

	// Chronological order; exerciseId breaks ties between entries on the same day.
	orderClause = `ORDER BY exercise.date ASC, exercise.exerciseId ASC`
)

// Filter holds the optional log filters. Dates must already be normalized to YYYY-MM-DD.
type Filter struct {
	UserID   Optional[int64]
	FromDate Optional[string]
	ToDate   Optional[string]
	Limit    Optional[int]
}

// Query is a statement with "?" placeholders and its ordered arguments.
type Query struct {
	SQL  string
	Args []any
}

// Predicate is the composed WHERE fragment and its arguments.
type Predicate struct {
	Clause string
	Args   []any
}

// Where composes the predicate from the present filters, in the fixed order
// user id, from date, to date. Limit never contributes.
func (f Filter) Where() Predicate {
	var conds []string
	var args []any

	if id, ok := f.UserID.Get(); ok {
		conds = append(conds, "users.id = ?")
		args = append(args, id)
	}
	if from, ok := f.FromDate.Get(); ok {
		conds = append(conds, "exercise.date >= ?")
		args = append(args, from)
	}
	if to, ok := f.ToDate.Get(); ok {
		conds = append(conds, "exercise.date <= ?")
		args = append(args, to)
	}

	if len(conds) == 0 {
		return Predicate{Args: []any{}}
	}
	return Predicate{
		Clause: "WHERE " + strings.Join(conds, " AND "),
		Args:   args,
	}
}

// Build returns the count query (ignores limit) and the data query (ordered,
// limited when a limit is present). Both share the predicate arguments; the
// data query appends the limit last.
func Build(f Filter) (count Query, data Query) {
	p := f.Where()

	count = Query{
		SQL:  join(`SELECT COUNT(*)`, joinClause, p.Clause),
		Args: append([]any{}, p.Args...),
	}

	dataArgs := append([]any{}, p.Args...)
	dataSQL := join(`SELECT `+logColumns, joinClause, p.Clause, orderClause)
	if limit, ok := f.Limit.Get(); ok {
		dataSQL += ` LIMIT ?`
		dataArgs = append(dataArgs, limit)
	}
	data = Query{SQL: dataSQL, Args: dataArgs}

	return count, data
}

func join(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
