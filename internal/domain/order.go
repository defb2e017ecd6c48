package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrOrderNotFound — заказ с указанным ID отсутствует в хранилище.
var ErrOrderNotFound = errors.New("order not found")

// Order — заказ покупателя.
// ID, CreatedAt и UpdatedAt назначает хранилище; движок правил заказ не изменяет.
type Order struct {
	ID         int64           `json:"id"`
	Total      decimal.Decimal `json:"total"`       // точная сумма, >= 0.00
	ItemsCount int             `json:"items_count"` // >= 1
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// String — короткое представление для логов.
func (o *Order) String() string {
	if o == nil {
		return "Order<nil>"
	}
	return fmt.Sprintf("Order #%d - Total: %s, Items: %d", o.ID, o.Total.StringFixed(2), o.ItemsCount)
}

// NewOrderNotFoundError — ErrOrderNotFound с указанием ID.
func NewOrderNotFoundError(id int64) error {
	return fmt.Errorf("%w: order with id %d does not exist", ErrOrderNotFound, id)
}
