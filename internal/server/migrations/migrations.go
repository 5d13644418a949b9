// Package migrations embeds the goose SQL migrations for the PostgreSQL
// schema: users, accounts, sessions and verification_tokens.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
