package usecase

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/order_rules/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultSeedOrders — демонстрационные заказы: один проходит все правила, второй ни одного,
// третий проходит все.
func DefaultSeedOrders() []*domain.Order {
	return []*domain.Order{
		{Total: decimal.RequireFromString("150.00"), ItemsCount: 3},
		{Total: decimal.RequireFromString("75.50"), ItemsCount: 1},
		{Total: decimal.RequireFromString("200.00"), ItemsCount: 5},
	}
}

// SeedDefaults — заполняет хранилище демонстрационными заказами.
// reset=false: если заказы уже есть, ничего не делает и возвращает nil-срез.
// reset=true: удаляет все заказы, очищает кэш и вставляет набор заново.
func (s *OrderService) SeedDefaults(ctx context.Context, reset bool) ([]*domain.Order, error) {
	if reset {
		deleted, err := s.repo.DeleteAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("seed: delete orders: %w", err)
		}
		s.cache.Purge(ctx)
		s.log.Infof(ctx, "seed: deleted %d orders", deleted)
	} else {
		n, err := s.repo.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("seed: count orders: %w", err)
		}
		if n > 0 {
			s.log.Infof(ctx, "seed: skipped, store already has %d orders", n)
			return nil, nil
		}
	}

	orders := DefaultSeedOrders()
	for _, order := range orders {
		if err := s.CreateOrder(ctx, order); err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
		s.log.Infof(ctx, "seed: created %s", order)
	}
	return orders, nil
}
