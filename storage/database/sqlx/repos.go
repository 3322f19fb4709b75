// Package sqlxrepos implements the domain repositories on postgres via sqlx.
package sqlxrepos

import (
	"strconv"
	"strings"
)

func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
