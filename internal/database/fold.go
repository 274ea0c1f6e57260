package database

import (
	"database/sql"
	"sync"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// driverName is the sqlite3 driver with the fold() SQL function attached.
const driverName = "sqlite3_fold"

var registerDriver sync.Once

func foldDriver() string {
	registerDriver.Do(func() {
		sql.Register(driverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("fold", Fold, true)
			},
		})
	})
	return driverName
}

// Fold returns the Unicode case-folded form of s, so "Über" and "über"
// (or "STRASSE" and "straße") compare equal. SQLite's own LOWER only maps
// ASCII.
func Fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
