package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// whereBuilder accumulates positional filter conditions for list queries.
type whereBuilder struct {
	conditions []string
	args       []interface{}
}

// add appends a condition whose format has a single %d for the placeholder.
func (w *whereBuilder) add(format string, value interface{}) {
	w.args = append(w.args, value)
	w.conditions = append(w.conditions, fmt.Sprintf(format, len(w.args)))
}

func (w *whereBuilder) addID(column string, id *int64) {
	if id != nil {
		w.add(column+" = $%d", *id)
	}
}

func (w *whereBuilder) addIDs(column string, ids []int64) {
	if len(ids) > 0 {
		w.add(column+" = ANY($%d)", pq.Array(ids))
	}
}

func (w *whereBuilder) addSearch(expr, term string) {
	term = strings.TrimSpace(term)
	if term != "" {
		w.add(expr+" ILIKE $%d", "%"+escapeLike(term)+"%")
	}
}

// where renders the WHERE clause, or an empty string without conditions.
func (w *whereBuilder) where() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conditions, " AND ")
}

// page renders LIMIT/OFFSET placeholders and appends their values.
func (w *whereBuilder) page(count, offset int) string {
	w.args = append(w.args, count, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(w.args)-1, len(w.args))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// expectAffected converts an update or delete that touched no rows into
// sql.ErrNoRows.
func expectAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
