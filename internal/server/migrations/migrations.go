// Package migrations embeds the goose SQL migrations for the account store
// PostgreSQL database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
