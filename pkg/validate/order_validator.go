package validate

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/order_rules/internal/domain"
	"github.com/Gunvolt24/order_rules/internal/ports"
	"github.com/shopspring/decimal"
)

// Проверка, что OrderValidator удовлетворяет интерфейсу OrderValidator.
var _ ports.OrderValidator = (*OrderValidator)(nil)

// ErrInvalidOrder — базовая (sentinel error) ошибка валидации.
var ErrInvalidOrder = errors.New("order validation failed")

// Ограничения колонки orders.total: numeric(10,2).
const (
	TotalScale = 2
	MinItems   = 1
)

// MaxTotal — наибольшая сумма, которую принимает хранилище.
var MaxTotal = decimal.RequireFromString("99999999.99")

// OrderValidator — проверка инвариантов заказа перед записью.
type OrderValidator struct{}

// NewOrderValidator — конструктор OrderValidator.
// Validate возвращает ErrInvalidOrder (с обёрнутой причиной) при любой проблеме.
func NewOrderValidator() *OrderValidator { return &OrderValidator{} }

// Validate — проверяет сумму и количество позиций заказа.
func (v *OrderValidator) Validate(_ context.Context, order *domain.Order) error {
	if order == nil {
		return fmt.Errorf("%w: заказ не может быть nil", ErrInvalidOrder)
	}
	if err := v.validateTotal(order.Total); err != nil {
		return err
	}
	if order.ItemsCount < MinItems {
		return fmt.Errorf("%w: items_count должен быть не меньше %d", ErrInvalidOrder, MinItems)
	}
	return nil
}

func (v *OrderValidator) validateTotal(total decimal.Decimal) error {
	if total.IsNegative() {
		return fmt.Errorf("%w: total должен быть неотрицательным", ErrInvalidOrder)
	}
	if !total.Equal(total.Truncate(TotalScale)) {
		return fmt.Errorf("%w: total допускает не больше %d знаков после запятой", ErrInvalidOrder, TotalScale)
	}
	if total.GreaterThan(MaxTotal) {
		return fmt.Errorf("%w: total не может превышать %s", ErrInvalidOrder, MaxTotal.StringFixed(TotalScale))
	}
	return nil
}
