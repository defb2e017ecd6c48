package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Gunvolt24/order_rules/config"
	cachemem "github.com/Gunvolt24/order_rules/internal/cache/memory"
	"github.com/Gunvolt24/order_rules/internal/repo/postgres"
	"github.com/Gunvolt24/order_rules/internal/usecase"
	"github.com/Gunvolt24/order_rules/pkg/logger"
	"github.com/Gunvolt24/order_rules/pkg/validate"
)

// CLI-приложение: пересоздаёт демонстрационные заказы.
// По умолчанию таблица очищается; -reset=false только дополняет пустую базу.
func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	_ = godotenv.Load(".env.local")

	if err := run(opts.reset, opts.timeout); err != nil {
		fmt.Fprintf(os.Stderr, "seed-orders: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	reset   bool
	timeout time.Duration
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("seed-orders", flag.ContinueOnError)
	fs.BoolVar(&o.reset, "reset", true, "delete all orders before seeding")
	fs.DurationVar(&o.timeout, "timeout", 30*time.Second, "overall timeout")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return o, nil
}

func run(reset bool, timeout time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logg, cleanup, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return err
	}
	defer func() { _ = cleanup() }()

	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Postgres.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// кэш здесь не читается, но SeedDefaults очищает его при reset
	svc := usecase.NewOrderService(
		postgres.NewOrderRepository(pool),
		cachemem.NewLRUCacheTTL(cfg.Cache.Capacity, cfg.Cache.TTL),
		logg,
		validate.NewOrderValidator(),
	)

	if reset {
		fmt.Println("Deleting existing orders...")
	}
	created, err := svc.SeedDefaults(ctx, reset)
	if err != nil {
		return err
	}
	if created == nil {
		fmt.Println("Orders already exist, nothing to do (use -reset to recreate)")
		return nil
	}

	for _, o := range created {
		fmt.Printf("Created order #%d: Total=$%s, Items=%d\n", o.ID, o.Total.StringFixed(2), o.ItemsCount)
	}
	fmt.Printf("Successfully created %d sample orders\n", len(created))
	return nil
}
