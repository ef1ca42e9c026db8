package database

import (
	"database/sql"
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrNotFound is returned when a row addressed by id does not exist, or when
// an insert references a parent row that does not exist
var ErrNotFound = errors.New("not found")

// notFound maps sql.ErrNoRows to ErrNotFound and leaves other errors untouched
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// requireAffected returns ErrNotFound when an update or delete touched no rows
func requireAffected(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// missingParent maps a foreign key violation on insert to ErrNotFound
func missingParent(err error) error {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}
	code := sqliteErr.Code()
	if code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY ||
		(code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqliteErr.Error(), "FOREIGN KEY")) {
		return ErrNotFound
	}
	return err
}
