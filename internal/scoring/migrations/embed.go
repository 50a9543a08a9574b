package migrations

import "embed"

// FS contains embedded SQLite migrations for the leaderboard.
//
//go:embed *.sql
var FS embed.FS
