package repositories

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// EnsureSchema creates missing tables and indexes. Every statement is idempotent.
// Relations are deliberately free of foreign keys: deleting an offer leaves its
// comments and favorites in place.
func EnsureSchema(ctx context.Context, db *sql.DB, dialect Dialect) error {
	name := "schema/mysql.sql"
	if dialect == Postgres {
		name = "schema/postgres.sql"
	}
	data, err := schemaFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	for _, stmt := range strings.Split(string(data), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
