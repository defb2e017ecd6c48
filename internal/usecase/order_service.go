package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Gunvolt24/order_rules/internal/domain"
	"github.com/Gunvolt24/order_rules/internal/ports"
	"github.com/Gunvolt24/order_rules/pkg/validate"
)

// Проверка, что OrderService удовлетворяет порту чтения.
var _ ports.OrderReadService = (*OrderService)(nil)

// OrderService — прикладная логика работы с заказами (без знаний о транспорте).
type OrderService struct {
	repo      ports.OrderRepository // прямой доступ к хранилищу
	cache     ports.OrderCache      // прямой доступ к кэшу
	log       ports.Logger          // прямой доступ к логгеру
	validator ports.OrderValidator  // прямой доступ к валидатору
}

// NewOrderService — DI-конструктор.
func NewOrderService(
	repo ports.OrderRepository,
	cache ports.OrderCache,
	log ports.Logger,
	validator ports.OrderValidator,
) *OrderService {
	return &OrderService{
		repo:      repo,
		cache:     cache,
		log:       log,
		validator: validator,
	}
}

// GetOrder — получить заказ по ID: сначала из кэша, при промахе — из БД с записью в кэш.
// Если записи нет, возвращает ошибку, оборачивающую domain.ErrOrderNotFound.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	if order, found := s.cache.Get(ctx, id); found {
		s.log.Debugf(ctx, "cache hit for order=%d", id)
		return order, nil
	}
	s.log.Debugf(ctx, "cache miss for order=%d", id)

	start := time.Now()
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Errorf(ctx, "repo.GetByID failed order_id=%d err=%v", id, err)
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	if order == nil {
		return nil, domain.NewOrderNotFoundError(id)
	}

	if setErr := s.cache.Set(ctx, order); setErr != nil {
		s.log.Warnf(ctx, "cache.Set failed order_id=%d err=%v", id, setErr)
	}

	s.log.Debugf(ctx, "db fetch order_id=%d took=%s", id, time.Since(start))
	return order, nil
}

// ListOrders — проксирование в репозиторий (пагинация уже валидирована на верхнем уровне).
func (s *OrderService) ListOrders(ctx context.Context, limit, offset int) ([]*domain.Order, error) {
	return s.repo.List(ctx, limit, offset)
}

// CreateOrder — валидация, запись в БД и в кэш.
// Заполняет ID и временные метки переданного заказа.
func (s *OrderService) CreateOrder(ctx context.Context, order *domain.Order) error {
	if err := s.validator.Validate(ctx, order); err != nil {
		s.log.Warnf(ctx, "validation failed order=%s err=%v", order, err)
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := s.repo.Create(ctx, order); err != nil {
		s.log.Errorf(ctx, "repo.Create failed order=%s err=%v", order, err)
		return fmt.Errorf("failed to save order: %w", err)
	}

	if err := s.cache.Set(ctx, order); err != nil {
		s.log.Warnf(ctx, "cache.Set failed order_id=%d err=%v", order.ID, err)
	}
	return nil
}

// SaveFromMessage — сохранить заказ, пришедший из Kafka (raw JSON).
// Шаги:
//  1. строгий парсинг JSON (DisallowUnknownFields, без хвоста) —> validate.ErrInvalidJSON;
//  2. доменная валидация (вернёт validate.ErrInvalidOrder при проблемах);
//  3. вставка в БД, ID и временные метки назначает хранилище;
//  4. положить запись в кэш.
func (s *OrderService) SaveFromMessage(ctx context.Context, raw []byte) (*domain.Order, error) {
	order, err := validate.DecodeOrder(raw)
	if err != nil {
		s.log.Warnf(ctx, "decode failed err=%v", err)
		return nil, err
	}

	// поля хранилища из сообщения не принимаем
	order.ID = 0
	order.CreatedAt = time.Time{}
	order.UpdatedAt = time.Time{}

	if err := s.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.log.Infof(ctx, "order saved id=%d total=%s items=%d", order.ID, order.Total.StringFixed(2), order.ItemsCount)
	return order, nil
}

// WarmUpCache — прогрев кэша последними N заказами из БД.
// Если n <= 0, прогрев не выполняется (но это не ошибка).
func (s *OrderService) WarmUpCache(ctx context.Context, n int) error {
	if n <= 0 {
		s.log.Warnf(ctx, "cache warm-up skipped: n <= 0 (n=%d)", n)
		return nil
	}

	start := time.Now()
	list, err := s.repo.LastN(ctx, n)
	if err != nil {
		s.log.Errorf(ctx, "repo.LastN failed n=%d err=%v", n, err)
		return fmt.Errorf("warm up cache: %w", err)
	}
	if warmUpErr := s.cache.WarmUp(ctx, list); warmUpErr != nil {
		s.log.Warnf(ctx, "cache.WarmUp failed err=%v", warmUpErr)
	}
	s.log.Infof(ctx, "cache warmed with %d orders in %s", len(list), time.Since(start))
	return nil
}
