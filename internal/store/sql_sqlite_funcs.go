package store

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// sqliteDriverName is the go-sqlite3 driver with the terminal's SQL functions.
const sqliteDriverName = "sqlite3_pos"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("fold", foldText, true)
		},
	})
}

// foldText lowercases the whole of Unicode. SQLite's LOWER only folds ASCII,
// so "Ñ" and "Á" in product names need this to match their lowercase forms.
func foldText(s string) string {
	return strings.ToLower(s)
}
