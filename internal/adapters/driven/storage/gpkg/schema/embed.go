// Package schema embeds the GeoPackage core schema applied to new datasets.
package schema

import "embed"

// FS contains the schema SQL files, applied in name order.
//
//go:embed *.sql
var FS embed.FS
