// Package migrations holds the goose migrations of the scope config store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
