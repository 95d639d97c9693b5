package repository

import (
	"fmt"
	"sort"
	"strings"
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// buildUpdate renders a partial UPDATE for the whitelisted columns present in
// updates. Columns are emitted in sorted order so the statement is stable.
func buildUpdate(table string, allowed []string, id int64, updates map[string]interface{}) (string, []interface{}, error) {
	columns := make([]string, 0, len(updates))
	for key := range updates {
		if !contains(allowed, key) {
			return "", nil, fmt.Errorf("unknown column %q for %s", key, table)
		}
		columns = append(columns, key)
	}
	sort.Strings(columns)

	setClauses := make([]string, 0, len(columns)+1)
	args := make([]interface{}, 0, len(columns)+1)
	for i, column := range columns {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, i+1))
		args = append(args, updates[column])
	}
	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(setClauses, ", "), len(args))
	return query, args, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
