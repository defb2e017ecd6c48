package ports

import (
	"context"

	"github.com/Gunvolt24/order_rules/internal/rules"
)

// RuleCheckService — проверка заказа набором правил и листинг правил.
type RuleCheckService interface {
	CheckRules(ctx context.Context, orderID int64, ruleNames []string) (*rules.Result, error)
	ListRules(ctx context.Context) []rules.Info
}
