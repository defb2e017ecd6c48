package ports

import (
	"context"

	"github.com/Gunvolt24/order_rules/internal/domain"
)

type OrderRepository interface {
	// Create — вставляет заказ; заполняет ID, CreatedAt, UpdatedAt.
	Create(ctx context.Context, order *domain.Order) error
	// GetByID — (nil, nil), если заказа нет.
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Order, error)
	LastN(ctx context.Context, n int) ([]*domain.Order, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}
