package main

import (
	"database/sql"
	"log"
	"os"

	_ "github.com/glebarez/go-sqlite"
)

// Creates the transcript table in the sqlite database given as the first
// argument (default ./db.sqlite3).
func main() {
	path := "db.sqlite3"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		log.Fatal(err)
	}

	if _, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS transcript (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			transcript_id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			size TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			content JSON,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		);
	`); err != nil {
		log.Fatal(err)
	}
}
