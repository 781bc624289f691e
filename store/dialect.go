package store

import (
	"fmt"
	"strconv"
	"strings"

	"veneya/config"
)

type schemaStmt struct {
	name string
	sql  string
}

// dialect holds the SQL that differs between SQLite and PostgreSQL. Queries
// are written with '?' placeholders and rebound per dialect.
type dialect struct {
	name   string
	schema []schemaStmt
	// unitEarnings is the expression parsing products.unit_earnings (alias p)
	// as a float. Non-numeric text counts as 0.
	unitEarnings string
	// syncSequence realigns the id sequence after an insert with an explicit id.
	syncSequence string
	positional   bool
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case config.DriverSQLite:
		return sqliteDialect, nil
	case config.DriverPostgres:
		return postgresDialect, nil
	}
	return dialect{}, fmt.Errorf("unknown database driver %q", driver)
}

var sqliteDialect = dialect{
	name: config.DriverSQLite,
	schema: []schemaStmt{
		{"accounts", `
		CREATE TABLE IF NOT EXISTS accounts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			avg_daily_earnings TEXT NOT NULL
		)`},
		{"products", `
		CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			unit_earnings TEXT NOT NULL,
			account_id INTEGER NOT NULL,
			FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
		)`},
		{"sales", `
		CREATE TABLE IF NOT EXISTS sales (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			product_id INTEGER,
			quantity INTEGER,
			zone TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			account_id INTEGER,
			FOREIGN KEY (product_id) REFERENCES products(id),
			FOREIGN KEY (account_id) REFERENCES accounts(id)
		)`},
		{"idx_products_account", `CREATE INDEX IF NOT EXISTS idx_products_account ON products(account_id)`},
		{"idx_sales_zone", `CREATE INDEX IF NOT EXISTS idx_sales_zone ON sales(zone)`},
		{"idx_sales_account", `CREATE INDEX IF NOT EXISTS idx_sales_account ON sales(account_id)`},
	},
	unitEarnings: `CAST(p.unit_earnings AS REAL)`,
}

var postgresDialect = dialect{
	name: config.DriverPostgres,
	schema: []schemaStmt{
		{"accounts", `
		CREATE TABLE IF NOT EXISTS accounts (
			id SERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			avg_daily_earnings TEXT NOT NULL
		)`},
		{"products", `
		CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			unit_earnings TEXT NOT NULL,
			account_id INTEGER NOT NULL REFERENCES accounts(id) ON DELETE CASCADE
		)`},
		{"sales", `
		CREATE TABLE IF NOT EXISTS sales (
			id SERIAL PRIMARY KEY,
			product_id INTEGER REFERENCES products(id),
			quantity INTEGER,
			zone TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			account_id INTEGER REFERENCES accounts(id)
		)`},
		{"idx_products_account", `CREATE INDEX IF NOT EXISTS idx_products_account ON products(account_id)`},
		{"idx_sales_zone", `CREATE INDEX IF NOT EXISTS idx_sales_zone ON sales(zone)`},
		{"idx_sales_account", `CREATE INDEX IF NOT EXISTS idx_sales_account ON sales(account_id)`},
	},
	unitEarnings: `CASE WHEN p.unit_earnings ~ '^\s*[-+]{0,1}([0-9]+[.]{0,1}[0-9]*|[.][0-9]+)([eE][-+]{0,1}[0-9]+){0,1}\s*$'
		THEN CAST(p.unit_earnings AS DOUBLE PRECISION) ELSE 0 END`,
	syncSequence: `SELECT setval(pg_get_serial_sequence('products', 'id'), (SELECT COALESCE(MAX(id), 1) FROM products))`,
	positional:   true,
}

// rebind rewrites '?' placeholders to $1, $2, ... for PostgreSQL. Quoted
// literals are copied untouched.
func (d dialect) rebind(query string) string {
	if !d.positional {
		return query
	}
	var (
		b      strings.Builder
		n      int
		quoted bool
	)
	b.Grow(len(query) + 8)
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'':
			quoted = !quoted
			b.WriteByte(ch)
		case ch == '?' && !quoted:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}
