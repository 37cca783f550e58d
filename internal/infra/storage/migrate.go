package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schema string

// Migrate применяет схему БД при старте процесса.
// Скрипт идемпотентен (CREATE TABLE IF NOT EXISTS), поэтому
// повторные запуски безопасны
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("storage: apply schema: %w", err)
	}
	return nil
}
