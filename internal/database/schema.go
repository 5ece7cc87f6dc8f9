package database

import (
	_ "embed"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed schema.sql
var schemaSQL string

// Statements splits the embedded schema into individual DDL statements.
func Statements() []string {
	var stmts []string
	for _, part := range strings.Split(schemaSQL, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// Migrate creates any missing tables. Every statement is idempotent.
func Migrate(db *sqlx.DB) (int, error) {
	stmts := Statements()
	for i, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return i, err
		}
	}
	return len(stmts), nil
}
