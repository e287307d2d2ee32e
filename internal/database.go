package internal

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const (
	// TableCursorDiskKV is the flat composite-keyed table in the global store
	TableCursorDiskKV = "cursorDiskKV"
	// TableItemTable is the key-value table in per-workspace stores
	TableItemTable = "ItemTable"
)

// KeyValuePair represents one raw (key, value) row from a store
type KeyValuePair struct {
	Key   string
	Value string
}

// OpenDatabase opens a SQLite store in read-only mode. Read-only access never
// takes a writer lock, so concurrent queries against other stores proceed
// without coordination.
func OpenDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}

	return db, nil
}

// ScanByPrefix returns all rows from cursorDiskKV whose key starts with prefix
func ScanByPrefix(db *sql.DB, prefix string) ([]KeyValuePair, error) {
	query := "SELECT key, value FROM " + TableCursorDiskKV + ` WHERE key LIKE ? ESCAPE '\' AND value IS NOT NULL`
	rows, err := db.Query(query, escapeLike(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("prefix scan failed: %w", err)
	}
	defer rows.Close()

	return collectPairs(rows)
}

// GetByKeys returns rows matching the exact keys from the given table
func GetByKeys(db *sql.DB, table string, keys ...string) ([]KeyValuePair, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(keys)-1) + "?"
	query := fmt.Sprintf("SELECT key, value FROM %s WHERE key IN (%s) AND value IS NOT NULL", table, placeholders)

	args := make([]interface{}, len(keys))
	for i, k := range keys {
		args[i] = k
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("key lookup failed: %w", err)
	}
	defer rows.Close()

	return collectPairs(rows)
}

func collectPairs(rows *sql.Rows) ([]KeyValuePair, error) {
	var pairs []KeyValuePair
	for rows.Next() {
		var pair KeyValuePair
		var value sql.NullString
		if err := rows.Scan(&pair.Key, &value); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		if value.Valid {
			pair.Value = value.String
			pairs = append(pairs, pair)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return pairs, nil
}

// escapeLike escapes LIKE wildcards so record kinds containing % or _
// cannot widen a prefix scan. Composite keys are plain identifiers in
// practice, but the stores are not under our control.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}
