// Package migrations embeds the goose migrations for the atlas schema.
package migrations

import "embed"

// FS embeds all .sql migration files in this directory.
//
//go:embed *.sql
var FS embed.FS
