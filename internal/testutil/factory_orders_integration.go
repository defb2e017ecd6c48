//go:build integration

package testutil

import (
	"context"
	"testing"

	"github.com/Gunvolt24/order_rules/internal/domain"
	"github.com/Gunvolt24/order_rules/internal/ports"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// MakeOrder — валидный несохранённый заказ (150.00 / 3) с опциями.
func MakeOrder(opts ...func(*domain.Order)) domain.Order {
	o := domain.Order{
		Total:      decimal.RequireFromString("150.00"),
		ItemsCount: 3,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func WithTotal(total string) func(*domain.Order) {
	return func(o *domain.Order) { o.Total = decimal.RequireFromString(total) }
}

func WithItems(n int) func(*domain.Order) {
	return func(o *domain.Order) { o.ItemsCount = n }
}

// CreateOrder — сохраняет заказ через репозиторий и возвращает его с назначенным ID.
func CreateOrder(t *testing.T, ctx context.Context, repo ports.OrderRepository, opts ...func(*domain.Order)) *domain.Order {
	t.Helper()
	o := MakeOrder(opts...)
	require.NoError(t, repo.Create(ctx, &o))
	require.Positive(t, o.ID)
	return &o
}
