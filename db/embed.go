// Package db bundles the SQL migrations so binaries do not depend on the
// working directory at runtime.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
