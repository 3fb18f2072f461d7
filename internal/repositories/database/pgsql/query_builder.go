package pgsql

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/utils/pagination"
)

// whereClause accumulates AND-ed conditions with numbered placeholders.
type whereClause struct {
	conds []string
	args  []any
}

// add appends a condition; each "?" in cond is replaced by the next placeholder.
func (w *whereClause) add(cond string, args ...any) {
	for _, arg := range args {
		w.args = append(w.args, arg)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

// addIf appends cond with a single argument when value is non-empty.
func (w *whereClause) addIf(cond, value string) {
	if value != "" {
		w.add(cond, value)
	}
}

// next reserves a placeholder for an argument used outside the WHERE clause.
func (w *whereClause) next(arg any) string {
	w.args = append(w.args, arg)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereClause) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// keyset restricts a (time desc, id desc) listing to rows after the page token and returns
// the LIMIT placeholder, fetching one extra row to detect a following page.
func (w *whereClause) keyset(timeCol, idCol string, limit int, nextToken *string) (string, error) {
	cursor, err := pagination.DecodeOptional(nextToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if cursor != nil {
		w.add(fmt.Sprintf("(%s, %s) < (?, ?)", timeCol, idCol), cursor.At, cursor.ID)
	}
	return w.next(pagination.NormalizeLimit(limit) + 1), nil
}

// trimPage cuts the extra keyset row and builds the token for the following page.
func trimPage[T any](items []T, limit int, key func(T) (time.Time, string)) ([]T, *string) {
	limit = pagination.NormalizeLimit(limit)
	if len(items) <= limit {
		return items, nil
	}
	items = items[:limit]
	at, id := key(items[limit-1])
	token := pagination.EncodeToken(at, id)
	return items, &token
}
