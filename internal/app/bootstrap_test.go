package app_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Gunvolt24/order_rules/config"
	"github.com/Gunvolt24/order_rules/internal/app"
)

// логгер-заглушка
type nopLogger struct{}

func (nopLogger) Debugf(context.Context, string, ...any) {}
func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// фейковый консьюмер, который ждёт отмены контекста
type fakeConsumer struct {
	runCalls   int32
	closeCalls int32
}

func (f *fakeConsumer) Run(ctx context.Context) error {
	atomic.AddInt32(&f.runCalls, 1)
	<-ctx.Done()
	return ctx.Err()
}
func (f *fakeConsumer) Close() error {
	atomic.AddInt32(&f.closeCalls, 1)
	return nil
}

// консьюмер, который падает сразу
type failingConsumer struct{ err error }

func (f failingConsumer) Run(context.Context) error { return f.err }
func (f failingConsumer) Close() error              { return nil }

func TestAppRun_GracefulShutdown(t *testing.T) {
	// HTTP-сервер на случайном свободном порту
	srv := &http.Server{
		Addr:    "127.0.0.1:0",
		Handler: http.NewServeMux(),
	}

	fc := &fakeConsumer{}
	a := &app.App{
		Logger:        nopLogger{},
		HTTPServer:    srv,
		KafkaConsumer: fc,
	}

	// Запуск и быстрая остановка
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if atomic.LoadInt32(&fc.runCalls) == 0 {
		t.Fatalf("consumer.Run should be called")
	}
	if atomic.LoadInt32(&fc.closeCalls) == 0 {
		t.Fatalf("consumer.Close should be called")
	}
}

func TestAppRun_WithoutConsumer(t *testing.T) {
	a := &app.App{
		Logger:     nopLogger{},
		HTTPServer: &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestAppRun_BackgroundErrorStopsService(t *testing.T) {
	boom := errors.New("broker unreachable")
	a := &app.App{
		Logger:        nopLogger{},
		HTTPServer:    &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()},
		KafkaConsumer: failingConsumer{err: boom},
	}

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	select {
	case err := <-done:
		if !errors.Is(err, boom) {
			t.Fatalf("want background error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after background error")
	}
}

func TestAppRun_PortBusy(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	a := &app.App{
		Logger:     nopLogger{},
		HTTPServer: &http.Server{Addr: ln.Addr().String(), Handler: http.NewServeMux()},
	}
	if err := a.Run(context.Background()); err == nil {
		t.Fatal("want listen error")
	}
}

func TestBootstrap_BadDSN(t *testing.T) {
	cfg, err := config.LoadWithPrefix("APP_BOOTSTRAP_TEST")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Postgres.DSN = "postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a, cleanup, err := app.Bootstrap(ctx, &cfg)
	defer cleanup()
	if err == nil || a != nil {
		t.Fatalf("want error for unreachable postgres, got app=%v err=%v", a, err)
	}
}
