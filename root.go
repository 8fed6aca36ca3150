// Package root exposes files embedded at the repository root, currently the
// goose SQL migrations applied by the migrate command.
package root

import "embed"

// Migrations contains the goose SQL migration files.
//
//go:embed migrations/*.sql
var Migrations embed.FS
