// Package migrations embeds the goose schema migrations for each SQL dialect.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed postgres/*.sql sqlite/*.sql
var all embed.FS

// Postgres holds the PostgreSQL migrations rooted at ".".
var Postgres = mustSub("postgres")

// SQLite holds the SQLite migrations rooted at ".".
var SQLite = mustSub("sqlite")

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(all, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
