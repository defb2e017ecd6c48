package ports

import (
	"context"

	"github.com/Gunvolt24/order_rules/internal/domain"
)

// OrderReadService — сервис чтения заказов.
type OrderReadService interface {
	// GetOrder — заказ по ID; ошибка с domain.ErrOrderNotFound, если заказа нет.
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	// ListOrders — страница заказов, новые первыми.
	ListOrders(ctx context.Context, limit, offset int) ([]*domain.Order, error)
}
