//go:build integration

package testutil

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/segmentio/kafka-go"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/testcontainers/testcontainers-go/wait"
)

var tcLogger = log.New(os.Stdout, "[tc] ", log.LstdFlags)

// PGContainer — Postgres с базой orders и пулом к ней.
type PGContainer struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	DSN       string
}

type pgOptions struct {
	migrate  bool
	maxConns int32
}

// PGOption — настройка StartPostgresTC.
type PGOption func(*pgOptions)

// WithMigrations — накатить схему orders сразу после старта.
func WithMigrations() PGOption { return func(o *pgOptions) { o.migrate = true } }

// WithMaxConns — размер пула (по умолчанию 5).
func WithMaxConns(n int32) PGOption { return func(o *pgOptions) { o.maxConns = n } }

// StartPostgresTC — поднимает postgres:16-alpine; stop закрывает пул и удаляет контейнер.
func StartPostgresTC(ctx context.Context, opts ...PGOption) (*PGContainer, func(context.Context) error, error) {
	o := pgOptions{maxConns: 5}
	for _, fn := range opts {
		fn(&o)
	}

	pg, err := postgres.Run(
		ctx,
		"postgres:16-alpine",
		tc.WithLifecycleHooks(tc.DefaultLoggingHook(tcLogger)),
		postgres.WithDatabase("orders"),
		postgres.WithUsername("app"),
		postgres.WithPassword("app"),
		tc.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run postgres: %w", err)
	}

	fail := func(step string, err error) (*PGContainer, func(context.Context) error, error) {
		_ = tc.TerminateContainer(pg)
		return nil, nil, fmt.Errorf("%s: %w", step, err)
	}

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return fail("conn string", err)
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return fail("parse config", err)
	}
	cfg.MaxConns = o.maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return fail("new pool", err)
	}

	if o.migrate {
		if err := ApplyMigrationsGoose(ctx, dsn); err != nil {
			pool.Close()
			return fail("migrate", err)
		}
	}

	stop := func(c context.Context) error {
		pool.Close()
		return pg.Terminate(c)
	}
	return &PGContainer{Container: pg, DSN: dsn, Pool: pool}, stop, nil
}

// KafkaEnv — брокер redpanda для тестов консьюмера заказов.
type KafkaEnv struct {
	Container *redpanda.Container
	Brokers   []string
	BaseTopic string
}

// StartKafkaTC — поднимает redpanda; baseTopic служит префиксом для NewTopic.
func StartKafkaTC(ctx context.Context, baseTopic string) (*KafkaEnv, func(context.Context) error, error) {
	rp, err := redpanda.Run(
		ctx,
		"docker.redpanda.com/redpandadata/redpanda:v23.3.8",
		tc.WithLifecycleHooks(tc.DefaultLoggingHook(tcLogger)),
		redpanda.WithAutoCreateTopics(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run redpanda: %w", err)
	}

	seed, err := rp.KafkaSeedBroker(ctx)
	if err != nil {
		_ = tc.TerminateContainer(rp)
		return nil, nil, fmt.Errorf("seed broker: %w", err)
	}

	env := &KafkaEnv{Container: rp, Brokers: []string{seed}, BaseTopic: baseTopic}
	stop := func(_ context.Context) error { return tc.TerminateContainer(rp) }
	return env, stop, nil
}

// NewTopic — создаёт уникальный топик с префиксом BaseTopic-suffix и возвращает его с именем группы.
func (k *KafkaEnv) NewTopic(ctx context.Context, suffix string) (topic, group string, err error) {
	topic, group = UniqueTopicAndGroup(k.BaseTopic + "-" + suffix)
	if err := EnsureTopic(ctx, k.Brokers[0], topic); err != nil {
		return "", "", err
	}
	return topic, group, nil
}

// Publish — пишет сообщения в топик с подтверждением от всех реплик.
func (k *KafkaEnv) Publish(ctx context.Context, topic string, payloads ...[]byte) error {
	w := &kafka.Writer{
		Addr:         kafka.TCP(k.Brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Balancer:     &kafka.LeastBytes{},
	}
	defer w.Close()

	msgs := make([]kafka.Message, len(payloads))
	for i, p := range payloads {
		msgs[i] = kafka.Message{Value: p}
	}
	if err := w.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}
