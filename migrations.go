package trainsphere

import "embed"

// MigrationsFS holds the SQL migration files compiled into the binary, so a
// deployment is a single executable plus its database file.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
