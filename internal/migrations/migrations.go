// Package migrations embeds the goose SQL migrations for each supported
// dialect. The directory name matches dbx.Dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS
