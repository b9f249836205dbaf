// Package migrations holds the bun migrations for the quiz_results and quizzes tables.
package migrations

import "github.com/uptrace/bun/migrate"

var Migrations = migrate.NewMigrations()
