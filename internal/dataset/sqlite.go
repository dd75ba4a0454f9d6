package dataset

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// readSQLiteColumn reads one column of a SQLite table in rowid order.
// Values come back with SQLite's dynamic types: int64, float64, string
// or []byte per cell.
func readSQLiteColumn(path, table, column string) ([]any, error) {
	if err := checkIdentifier(table); err != nil {
		return nil, fmt.Errorf("%s: table: %w", path, err)
	}
	if err := checkIdentifier(column); err != nil {
		return nil, fmt.Errorf("%s: column: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer db.Close()

	rows, err := db.Query(fmt.Sprintf("SELECT %q FROM %q", column, table))
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", path, err)
	}
	defer rows.Close()

	var values []any
	for rows.Next() {
		var v any
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return values, nil
}

// checkIdentifier rejects table and column names that cannot be safely
// quoted into a query.
func checkIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("empty identifier")
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return fmt.Errorf("invalid identifier %q", name)
			}
		default:
			return fmt.Errorf("invalid identifier %q", name)
		}
	}
	return nil
}
