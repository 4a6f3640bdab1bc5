// Package migrations embeds the forward-only schema migrations applied with
// goose on startup. Each migration runs at most once; goose keeps its own
// applied-versions ledger inside the database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
