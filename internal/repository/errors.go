package repository

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrForeignKey = errors.New("referenced record does not exist")
	ErrDuplicate  = errors.New("duplicate value")
)

const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrNoReferencedRow = 1452
)

// translate maps driver errors onto the package sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlErrDuplicateEntry:
			return errors.Join(ErrDuplicate, err)
		case mysqlErrNoReferencedRow:
			return errors.Join(ErrForeignKey, err)
		}
	}
	return err
}

func withTx(db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// searchClause builds "WHERE a LIKE ? OR b LIKE ?" over the given columns.
func searchClause(search string, columns ...string) (string, []interface{}) {
	if search == "" || len(columns) == 0 {
		return "", nil
	}
	pattern := "%" + search + "%"
	clause := "WHERE "
	args := make([]interface{}, 0, len(columns))
	for i, col := range columns {
		if i > 0 {
			clause += " OR "
		}
		clause += col + " LIKE ?"
		args = append(args, pattern)
	}
	return clause, args
}
