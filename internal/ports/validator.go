package ports

import (
	"context"

	"github.com/Gunvolt24/order_rules/internal/domain"
)

// OrderValidator — проверка инвариантов заказа перед сохранением.
type OrderValidator interface {
	Validate(ctx context.Context, order *domain.Order) error
}
