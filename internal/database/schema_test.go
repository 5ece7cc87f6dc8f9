package database

import (
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatements(t *testing.T) {
	stmts := Statements()
	require.Len(t, stmts, 8)
	for _, stmt := range stmts {
		assert.True(t, strings.HasPrefix(stmt, "CREATE TABLE IF NOT EXISTS"), stmt)
	}
	// parents must be created before the tables referencing them
	assert.Contains(t, stmts[0], "tb_akun")
	assert.Contains(t, stmts[6], "tb_jurnal")
}

func TestMigrate(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	db := sqlx.NewDb(mockDB, "mysql")

	for _, stmt := range Statements() {
		mock.ExpectExec(regexp.QuoteMeta(stmt)).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	n, err := Migrate(db)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
