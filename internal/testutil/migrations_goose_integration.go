//go:build integration

package testutil

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // драйвер database/sql "pgx"
	"github.com/pressly/goose/v3"

	"github.com/Gunvolt24/order_rules/migrations"
)

// ApplyMigrationsGoose — накатывает вшитые миграции по DSN через отдельное соединение.
// Provider вместо глобального состояния goose: тесты с t.Parallel не мешают друг другу.
func ApplyMigrationsGoose(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	for _, r := range results {
		tcLogger.Printf("migration applied: %s (%s)", r.Source.Path, r.Duration)
	}
	return nil
}
