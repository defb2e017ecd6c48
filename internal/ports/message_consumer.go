package ports

import "context"

// MessageConsumer — фоновый источник новых заказов (Kafka).
// Run блокируется до отмены ctx или фатальной ошибки; Close освобождает соединения.
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
