// Пакет rules — ядро сервиса: реестр именованных правил, сами правила и движок,
// который применяет набор правил к заказу и агрегирует результат.
// Пакет не выполняет ввода-вывода: заказ приходит уже загруженным.
package rules

import (
	"context"

	"github.com/Gunvolt24/order_rules/internal/domain"
)

// Rule — именованный предикат над заказом.
// Evaluate обязан быть чистой функцией заказа и собственной конфигурации правила:
// без побочных эффектов и без изменения заказа.
type Rule interface {
	Name() string
	Description() string
	Evaluate(order *domain.Order) (bool, error)
}

// Factory — конструктор правила с конфигурацией по умолчанию.
// Движок вызывает фабрику на каждую проверку, экземпляры правил не переиспользуются.
type Factory func() (Rule, error)

// Info — имя и описание правила для листинга.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Logger — то, что ядру нужно от логгера.
type Logger interface {
	Debugf(ctx context.Context, format string, args ...any)
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(context.Context, string, ...any) {}
func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}
