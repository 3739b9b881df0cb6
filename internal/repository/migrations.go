package repository

import "embed"

// Migrations holds the versioned schema, applied at startup by
// database.Migrate. Constraint names used in constraints.go are declared here.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations holding the SQL files.
const MigrationsDir = "migrations"
