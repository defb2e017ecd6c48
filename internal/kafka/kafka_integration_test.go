//go:build integration

package kafka_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	cachemem "github.com/Gunvolt24/order_rules/internal/cache/memory"
	"github.com/Gunvolt24/order_rules/internal/domain"
	ikafka "github.com/Gunvolt24/order_rules/internal/kafka"
	"github.com/Gunvolt24/order_rules/internal/ports"
	pgrepo "github.com/Gunvolt24/order_rules/internal/repo/postgres"
	"github.com/Gunvolt24/order_rules/internal/testutil"
	"github.com/Gunvolt24/order_rules/internal/usecase"
	"github.com/Gunvolt24/order_rules/pkg/logger"
	"github.com/Gunvolt24/order_rules/pkg/validate"
)

var reUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func safe(t *testing.T) string { return reUnsafe.ReplaceAllString(t.Name(), "-") }

func orderMsg(total string, items int) []byte {
	return []byte(fmt.Sprintf(`{"total":%q,"items_count":%d}`, total, items))
}

// 1) Валидное сообщение сохраняется в БД
func TestKafka_Valid_Saved_TC(t *testing.T) {
	st := newStack(t)

	topic, group := newTopic(t, st, safe(t))

	startConsumer(t, st, topic, group, "first", st.svc)
	time.Sleep(1500 * time.Millisecond)

	publish(t, st, topic, orderMsg("150.00", 3))

	got := waitOrders(t, st, 1)
	require.Equal(t, "150.00", got[0].Total.StringFixed(2))
	require.Equal(t, 3, got[0].ItemsCount)
	require.Positive(t, got[0].ID)
}

// 2) Не-JSON сообщение пропускается, валидное после него сохраняется
func TestKafka_Skip_InvalidJSON_Then_SaveValid_TC(t *testing.T) {
	st := newStack(t)

	topic, group := newTopic(t, st, "invalid-json-"+safe(t))

	startConsumer(t, st, topic, group, "first", st.svc)
	time.Sleep(1500 * time.Millisecond)

	publish(t, st, topic, []byte("not-a-json"))
	publish(t, st, topic, orderMsg("75.50", 1))

	got := waitOrders(t, st, 1)
	require.Equal(t, "75.50", got[0].Total.StringFixed(2))
}

// 3) Невалидный заказ (items_count = 0, отрицательная сумма) пропускается; следующий валидный сохраняется
func TestKafka_Skip_ValidationError_Then_SaveValid_TC(t *testing.T) {
	st := newStack(t)

	topic, group := newTopic(t, st, "invalid-order-"+safe(t))

	startConsumer(t, st, topic, group, "first", st.svc)
	time.Sleep(1500 * time.Millisecond)

	publish(t, st, topic, orderMsg("10.00", 0))
	publish(t, st, topic, orderMsg("-1.00", 2))
	publish(t, st, topic, orderMsg("200.00", 5))

	got := waitOrders(t, st, 1)
	require.Equal(t, "200.00", got[0].Total.StringFixed(2))

	// даём шанс «лишним» сообщениям, если бы они не были отброшены
	time.Sleep(500 * time.Millisecond)
	n, err := st.repo.Count(st.ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

// 4) StartOffset="last": сообщения, опубликованные до старта консьюмера, игнорируются
func TestKafka_StartOffset_Last_IgnoresOld_TC(t *testing.T) {
	st := newStack(t)

	topic, group := newTopic(t, st, "last-"+safe(t))

	// «старое» до консьюмера
	publish(t, st, topic, orderMsg("1.00", 1))

	startConsumer(t, st, topic, group, "last", st.svc)

	// публикуем новое, пока не увидим его в БД: одно из сообщений окажется после базовой позиции
	deadline := time.Now().Add(20 * time.Second)
	ticker := time.NewTicker(300 * time.Millisecond)
	defer ticker.Stop()

	for {
		publish(t, st, topic, orderMsg("2.00", 2))

		orders, err := st.repo.List(st.ctx, 100, 0)
		require.NoError(t, err)
		if len(orders) > 0 {
			for _, o := range orders {
				require.Equal(t, "2.00", o.Total.StringFixed(2), "old message must be ignored")
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("new order not saved in time")
		}
		<-ticker.C
	}
}

// 5) At-least-once: при временной ошибке оффсет не коммитится, после перезапуска сообщение приходит снова
func TestKafka_Redelivery_AfterRestart_NoCommit_TC(t *testing.T) {
	st := newStack(t)

	topic, group := newTopic(t, st, "redelivery-"+safe(t))

	publish(t, st, topic, orderMsg("120.00", 4))

	// фаза 1: всегда временная ошибка
	cancelFail := startConsumer(t, st, topic, group, "first", alwaysTempFailSaver{})
	time.Sleep(2 * time.Second)
	cancelFail()

	n, err := st.repo.Count(st.ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	// фаза 2: та же группа, нормальный сервис
	startConsumer(t, st, topic, group, "first", st.svc)

	got := waitOrders(t, st, 1)
	require.Equal(t, "120.00", got[0].Total.StringFixed(2))
}

// -----------------функции-помощники-----------------

type stack struct {
	ctx  context.Context
	repo *pgrepo.OrderRepository
	svc  *usecase.OrderService
	logg ports.Logger
	kf   *testutil.KafkaEnv
}

func newStack(t *testing.T) *stack {
	t.Helper()

	// длинный контекст на старт контейнеров
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancelStart)

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart, testutil.WithMigrations())
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopPG(context.Background()) })

	kf, stopKF, err := testutil.StartKafkaTC(ctxStart, "orders-itc")
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopKF(context.Background()) })

	// короткий контекст на сам тест
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	t.Cleanup(cancel)

	pool, err := pgxpool.New(ctx, pg.DSN)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	logg, closer, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer() })

	repo := pgrepo.NewOrderRepository(pool)
	svc := usecase.NewOrderService(repo, cachemem.NewLRUCacheTTL(100, time.Minute), logg, validate.NewOrderValidator())

	return &stack{ctx: ctx, repo: repo, svc: svc, logg: logg, kf: kf}
}

type saver interface {
	SaveFromMessage(ctx context.Context, raw []byte) (*domain.Order, error)
}

// startConsumer запускает консьюмер в горутине; возвращает функцию остановки.
func startConsumer(t *testing.T, st *stack, topic, group, offset string, svc saver) func() {
	t.Helper()

	consumer, err := ikafka.NewConsumer(&ikafka.ConsumerConfig{
		Brokers:        st.kf.Brokers,
		Topic:          topic,
		GroupID:        group,
		StartOffset:    offset,
		ProcessTimeout: 3 * time.Second,
		RetryInitial:   100 * time.Millisecond,
		RetryMax:       time.Second,
	}, svc, st.logg)
	require.NoError(t, err)

	runCtx, cancelRun := context.WithCancel(st.ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = consumer.Run(runCtx)
	}()

	stop := func() {
		cancelRun()
		<-done
		_ = consumer.Close()
	}
	t.Cleanup(func() {
		select {
		case <-done:
		default:
			stop()
		}
	})
	return stop
}

// waitOrders ждёт, пока в БД не окажется ровно want заказов.
func waitOrders(t *testing.T, st *stack, want int) []*domain.Order {
	t.Helper()
	deadline := time.Now().Add(20 * time.Second)
	for {
		orders, err := st.repo.List(st.ctx, 100, 0)
		require.NoError(t, err)
		if len(orders) >= want {
			require.Len(t, orders, want)
			return orders
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected %d orders, got %d", want, len(orders))
		}
		time.Sleep(200 * time.Millisecond)
	}
}

func newTopic(t *testing.T, st *stack, suffix string) (topic, group string) {
	t.Helper()
	topic, group, err := st.kf.NewTopic(st.ctx, suffix)
	require.NoError(t, err)
	return topic, group
}

func publish(t *testing.T, st *stack, topic string, payloads ...[]byte) {
	t.Helper()
	require.NoError(t, st.kf.Publish(st.ctx, topic, payloads...))
}

// сервис-заглушка: всегда временная ошибка, оффсет не коммитится
type alwaysTempFailSaver struct{}

func (alwaysTempFailSaver) SaveFromMessage(context.Context, []byte) (*domain.Order, error) {
	return nil, errors.New("temporary failure")
}
