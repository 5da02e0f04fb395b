// Package migrations embeds the versioned schema in the atlas directory format.
package migrations

import "embed"

//go:embed *.sql atlas.sum
var FS embed.FS
