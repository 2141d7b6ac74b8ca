package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"personapi/internal/logging"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is probed before migrating; its presence means the schema is in place.
const sentinelTable = "public.persons"

var steps = []migrationStep{
	{
		Name: "create_table_persons",
		SQL: `CREATE TABLE IF NOT EXISTS persons (
  id           INTEGER PRIMARY KEY,
  dtype        TEXT    NOT NULL CHECK (dtype IN ('Person', 'Child', 'Employee')),
  name         TEXT    NOT NULL,
  birth_date   DATE    NOT NULL,
  city         TEXT    NOT NULL DEFAULT '',
  street       TEXT    NOT NULL DEFAULT '',
  building     INTEGER NOT NULL DEFAULT 0,
  kindergarten TEXT,
  employer     TEXT,
  salary       INTEGER
);`,
	},
	{
		Name: "create_index_persons_name",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_persons_name ON persons (lower(name));`,
	},
	{
		Name: "create_index_persons_city",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_persons_city ON persons (lower(city));`,
	},
	{
		Name: "create_index_persons_birth_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_persons_birth_date ON persons (birth_date);`,
	},
	{
		Name: "create_index_persons_dtype_salary",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_persons_dtype_salary ON persons (dtype, salary);`,
	},
}

// EnsureMigrated checks if the 'persons' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *logging.Logger, dbHost string) error {
	start := time.Now()

	log.Log(map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	err := db.QueryRowContext(ctx, "SELECT to_regclass($1) IS NOT NULL", sentinelTable).Scan(&exists)
	if err != nil {
		log.Log(map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Log(map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	log.Log(map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Log(map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Log(map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	log.Log(map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}
